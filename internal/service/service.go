package service

import (
	"context"
	"io"

	"wheel_backend/internal/model"
)

type SpinService interface {
	Register(ctx context.Context, name string) (int, error)
	SelectUser(ctx context.Context, userID int) (*model.SpinSession, error)
	Spin(ctx context.Context, sessionID string) (*model.SpinResult, error)
	Reset(ctx context.Context) error

	Board(ctx context.Context) (*model.BoardData, error)
	Wheel(ctx context.Context, sessionID string) (*model.WheelData, error)
}

type AdminService interface {
	Login(ctx context.Context, username, password string) (accessToken string, err error)
	ChangePassword(ctx context.Context, username, newPassword string) error

	ManageData(ctx context.Context) (*model.ManageData, error)
	AddPrize(ctx context.Context, amount, quantity int) (int, error)
	DeletePrize(ctx context.Context, id int) error
	AddUser(ctx context.Context, name string) (int, error)
	DeleteUser(ctx context.Context, id int) error
	ExportWinnersCSV(ctx context.Context, w io.Writer) error
}
