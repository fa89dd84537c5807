package bootstrap

import (
	"context"
	"errors"
	"log"

	"wheel_backend/internal/config"
	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"
	"wheel_backend/pkg/pass"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Учётка администратора по умолчанию, создаётся при первом запуске.
// Пароль нужно сменить через /admin/password
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	name TEXT UNIQUE NOT NULL,
	used BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS prizes (
	id SERIAL PRIMARY KEY,
	amount INT NOT NULL,
	quantity INT NOT NULL CHECK (quantity >= 0)
);

CREATE TABLE IF NOT EXISTS winners (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	prize INT NOT NULL,
	date TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS admins (
	id SERIAL PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	salt TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS spin_sessions (
	session_id TEXT PRIMARY KEY,
	user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema создает таблицы, если их еще нет
func EnsureSchema(ctx context.Context, dbc *pgxpool.Pool) error {
	_, err := dbc.Exec(ctx, schema)
	return err
}

// SeedAdmin создает учётку администратора по умолчанию, если её нет
func SeedAdmin(ctx context.Context, adminRepo repository.AdminRepository) error {
	_, err := adminRepo.GetAdminByUsername(ctx, defaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	salt, hash, err := pass.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	_, err = adminRepo.CreateAdmin(ctx, &model.Admin{
		Username:     defaultAdminUsername,
		PasswordHash: hash,
		Salt:         salt,
	})
	if err != nil {
		return err
	}

	log.Printf("seeded default admin %q", defaultAdminUsername)
	return nil
}

// SeedPrizes загружает начальный инвентарь из конфигурации,
// только если таблица призов пустая
func SeedPrizes(ctx context.Context, prizeRepo repository.PrizeRepository, seed []config.SeedPrize) error {
	tiers, err := prizeRepo.ListTiers(ctx)
	if err != nil {
		return err
	}
	if len(tiers) > 0 {
		return nil
	}

	for _, p := range seed {
		if _, err := prizeRepo.CreateTier(ctx, p.Amount, p.Quantity); err != nil {
			return err
		}
	}

	log.Printf("seeded %d prize tiers", len(seed))
	return nil
}
