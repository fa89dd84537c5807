package spin

import (
	"context"
	"errors"
	"strings"
)

// Register регистрирует нового участника.
// Дубликат имени возвращается явной ошибкой repository.ErrAlreadyExists,
// а не глотается молча
func (s *serv) Register(ctx context.Context, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("name must not be empty")
	}

	id, err := s.userRepo.CreateUser(ctx, name)
	if err != nil {
		return 0, err
	}

	return id, nil
}
