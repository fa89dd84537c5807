package admin

import (
	"context"
	"errors"
	"strings"

	"wheel_backend/internal/model"
)

// ManageData собирает сводку админской панели
func (s *serv) ManageData(ctx context.Context) (*model.ManageData, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	prizes, err := s.prizeRepo.ListTiers(ctx)
	if err != nil {
		return nil, err
	}

	winners, err := s.winnerRepo.ListRecent(ctx, manageWinnersLimit)
	if err != nil {
		return nil, err
	}

	data := &model.ManageData{
		Users:   users,
		Prizes:  prizes,
		Winners: winners,
	}
	for _, p := range prizes {
		data.TotalRemaining += p.Quantity
		data.TotalPrizePool += p.Amount * p.Quantity
	}

	return data, nil
}

// AddPrize добавляет позицию инвентаря
func (s *serv) AddPrize(ctx context.Context, amount, quantity int) (int, error) {
	if amount <= 0 {
		return 0, errors.New("amount must be positive")
	}
	if quantity < 0 {
		return 0, errors.New("quantity must not be negative")
	}

	return s.prizeRepo.CreateTier(ctx, amount, quantity)
}

// DeletePrize удаляет позицию инвентаря.
// Идущий в этот момент розыгрыш не пострадает: он читает и блокирует
// позиции внутри собственной транзакции
func (s *serv) DeletePrize(ctx context.Context, id int) error {
	return s.prizeRepo.DeleteTier(ctx, id)
}

// AddUser добавляет участника от имени администратора.
// Дубликат имени возвращает repository.ErrAlreadyExists
func (s *serv) AddUser(ctx context.Context, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("name must not be empty")
	}

	return s.userRepo.CreateUser(ctx, name)
}

// DeleteUser удаляет участника
func (s *serv) DeleteUser(ctx context.Context, id int) error {
	return s.userRepo.DeleteUser(ctx, id)
}
