package admin

import (
	"errors"

	"wheel_backend/internal/config"
	"wheel_backend/internal/repository"
	"wheel_backend/internal/service"
)

// Количество последних победителей в админской сводке
const manageWinnersLimit = 10

var (
	// ErrInvalidCredentials - неверная пара логин/пароль
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type serv struct {
	adminRepo  repository.AdminRepository
	userRepo   repository.UserRepository
	prizeRepo  repository.PrizeRepository
	winnerRepo repository.WinnerRepository
	jwtConfig  config.JWTConfig
}

// NewAdminService Создать сервис администрирования колеса
func NewAdminService(
	adminRepo repository.AdminRepository,
	userRepo repository.UserRepository,
	prizeRepo repository.PrizeRepository,
	winnerRepo repository.WinnerRepository,
	jwtConfig config.JWTConfig,
) service.AdminService {
	return &serv{
		adminRepo:  adminRepo,
		userRepo:   userRepo,
		prizeRepo:  prizeRepo,
		winnerRepo: winnerRepo,
		jwtConfig:  jwtConfig,
	}
}
