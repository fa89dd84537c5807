package spin

import (
	"context"
	"errors"
	"time"

	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"

	"github.com/google/uuid"
)

// SelectUser привязывает участника к предстоящему спину.
// Допускается только если участник ещё не крутил колесо и призы остались.
// При отказе возвращает ErrIneligible и не меняет состояние.
//
// Сам выбор ничего не резервирует: гонку двух параллельных выборов
// закрывает повторная проверка на коммите спина
func (s *serv) SelectUser(ctx context.Context, userID int) (*model.SpinSession, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIneligible
		}
		return nil, err
	}

	if user.Used {
		return nil, ErrIneligible
	}

	remaining, err := s.prizeRepo.RemainingTotal(ctx)
	if err != nil {
		return nil, err
	}
	if remaining <= 0 {
		return nil, ErrIneligible
	}

	session := &model.SpinSession{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}

	err = s.sessionRepo.CreateSession(ctx, session)
	if err != nil {
		return nil, err
	}

	return session, nil
}
