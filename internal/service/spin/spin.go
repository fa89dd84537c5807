package spin

import (
	"context"
	"errors"
	"log"
	"time"

	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"
)

// Spin разыгрывает приз для привязанного участника.
// Привязка снимается при любом исходе.
//
// Весь переход Selected -> Spent выполняется одной транзакцией:
// перепроверка участника, взвешенный розыгрыш, списание приза,
// пометка участника и запись победителя применяются целиком или никак
func (s *serv) Spin(ctx context.Context, sessionID string) (*model.SpinResult, error) {
	session, err := s.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	defer func() {
		if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
			log.Println("delete spin session:", err)
		}
	}()

	// Инициализируем структуру для хранения результата спина
	var res *model.SpinResult

	// Начало транзакции, где выполняется процесс спина
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Перепроверяем участника под блокировкой строки.
		// Защита от двойного спина из двух сессий
		user, err := s.userRepo.GetUserForUpdate(txCtx, session.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrIneligible
			}
			return err
		}
		if user.Used {
			return ErrAlreadySpun
		}

		// 2. Собираем пул под блокировкой строк призов.
		// Две параллельные транзакции не спишут одну последнюю единицу
		tiers, err := s.prizeRepo.AvailableTiersForUpdate(txCtx)
		if err != nil {
			return err
		}
		if len(tiers) == 0 {
			return ErrNoPrizesLeft
		}

		// 3. Взвешенный розыгрыш: шанс позиции пропорционален её остатку
		won := s.drawTier(tiers)

		// 4. Списываем ровно одну единицу разыгранного номинала
		ok, err := s.prizeRepo.Decrement(txCtx, won.Amount)
		if err != nil {
			return err
		}
		if !ok {
			// Строки призов заблокированы, сюда попадать не должны
			return ErrConflict
		}

		// 5. Помечаем участника использовавшим попытку
		if err := s.userRepo.MarkUsed(txCtx, user.ID); err != nil {
			return err
		}

		// 6. Записываем победителя
		_, err = s.winnerRepo.CreateWinner(txCtx, &model.WinnerRecord{
			Name:  user.Name,
			Prize: won.Amount,
			Date:  time.Now().UTC(),
		})
		if err != nil {
			return err
		}

		res = &model.SpinResult{WonAmount: won.Amount}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// drawTier выбирает позицию пропорционально остатку quantity.
// Эквивалентно равномерному выбору из мультимножества, где номинал
// повторён quantity раз
func (s *serv) drawTier(tiers []model.PrizeTier) model.PrizeTier {
	total := 0
	for _, t := range tiers {
		total += t.Quantity
	}

	n := s.rnd.IntN(total)
	for _, t := range tiers {
		if n < t.Quantity {
			return t
		}
		n -= t.Quantity
	}

	return tiers[len(tiers)-1]
}
