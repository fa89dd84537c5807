package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

// SeedPrize - начальная позиция инвентаря из config.yaml
type SeedPrize struct {
	Amount   int
	Quantity int
}

type WheelConfig interface {
	SeedPrizes() []SeedPrize
}
