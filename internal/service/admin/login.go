package admin

import (
	"context"
	"errors"

	"wheel_backend/internal/repository"
	"wheel_backend/pkg/pass"
	"wheel_backend/pkg/token"
)

// Login проверяет пароль администратора и выпускает access токен
func (s *serv) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.adminRepo.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	// Верификация пароля
	if !pass.VerifyPassword(admin.Salt, admin.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	// Создать access токен
	accessToken, err := token.GenerateAccessToken(
		admin.Username,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return "", err
	}

	return accessToken, nil
}

// ChangePassword перехэширует пароль администратора с новой солью
func (s *serv) ChangePassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return errors.New("password must not be empty")
	}

	salt, hash, err := pass.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.adminRepo.UpdatePassword(ctx, username, hash, salt)
}
