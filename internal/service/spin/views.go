package spin

import (
	"context"
	"errors"

	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"
)

// Board собирает сводку главной страницы
func (s *serv) Board(ctx context.Context) (*model.BoardData, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	winners, err := s.winnerRepo.ListRecent(ctx, recentWinnersLimit)
	if err != nil {
		return nil, err
	}

	tiers, err := s.prizeRepo.ListTiers(ctx)
	if err != nil {
		return nil, err
	}

	data := &model.BoardData{
		Users:     users,
		Winners:   winners,
		TierCount: len(tiers),
	}
	for _, t := range tiers {
		data.TotalRemaining += t.Quantity
		data.TotalPrizePool += t.Amount * t.Quantity
	}

	return data, nil
}

// Wheel собирает данные страницы колеса для привязанного участника
func (s *serv) Wheel(ctx context.Context, sessionID string) (*model.WheelData, error) {
	session, err := s.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	user, err := s.userRepo.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	tiers, err := s.prizeRepo.AvailableTiers(ctx)
	if err != nil {
		return nil, err
	}

	winners, err := s.winnerRepo.ListRecent(ctx, recentWinnersLimit)
	if err != nil {
		return nil, err
	}

	return &model.WheelData{
		User:    *user,
		Tiers:   tiers,
		Winners: winners,
	}, nil
}
