package repository

import (
	"context"
	"errors"

	"wheel_backend/internal/model"
)

var (
	// ErrNotFound - запись не найдена
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists - нарушение уникальности имени участника
	ErrAlreadyExists = errors.New("already exists")
)

type PrizeRepository interface {
	ListTiers(ctx context.Context) ([]model.PrizeTier, error)
	AvailableTiers(ctx context.Context) ([]model.PrizeTier, error)
	AvailableTiersForUpdate(ctx context.Context) ([]model.PrizeTier, error)
	RemainingTotal(ctx context.Context) (int, error)
	Decrement(ctx context.Context, amount int) (bool, error)
	CreateTier(ctx context.Context, amount, quantity int) (int, error)
	DeleteTier(ctx context.Context, id int) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, name string) (int, error)
	GetUser(ctx context.Context, id int) (*model.User, error)
	GetUserForUpdate(ctx context.Context, id int) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	MarkUsed(ctx context.Context, id int) error
	ResetUsed(ctx context.Context) error
	DeleteUser(ctx context.Context, id int) error
}

type WinnerRepository interface {
	CreateWinner(ctx context.Context, record *model.WinnerRecord) (int, error)
	ListRecent(ctx context.Context, limit int) ([]model.WinnerRecord, error)
	ListAll(ctx context.Context) ([]model.WinnerRecord, error)
	DeleteAll(ctx context.Context) error
}

type AdminRepository interface {
	GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error)
	CreateAdmin(ctx context.Context, admin *model.Admin) (int, error)
	UpdatePassword(ctx context.Context, username, passwordHash, salt string) error
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.SpinSession) error
	GetSession(ctx context.Context, sessionID string) (*model.SpinSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
