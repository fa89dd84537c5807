package env

import (
	"fmt"
	"os"

	"wheel_backend/internal/config"

	"gopkg.in/yaml.v3"
)

type wheelFileConfig struct {
	Wheel struct {
		SeedPrizes []struct {
			Amount   int `yaml:"amount"`
			Quantity int `yaml:"quantity"`
		} `yaml:"seed_prizes"`
	} `yaml:"wheel"`
}

type wheelConfig struct {
	seedPrizes []config.SeedPrize
}

// NewWheelConfigFromYAML читает начальный инвентарь призов из YAML файла
func NewWheelConfigFromYAML(path string) (config.WheelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wheel config: %w", err)
	}

	var fileCfg wheelFileConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parse wheel config: %w", err)
	}

	seed := make([]config.SeedPrize, 0, len(fileCfg.Wheel.SeedPrizes))
	for _, p := range fileCfg.Wheel.SeedPrizes {
		if p.Amount <= 0 || p.Quantity < 0 {
			return nil, fmt.Errorf("invalid seed prize: amount=%d quantity=%d", p.Amount, p.Quantity)
		}
		seed = append(seed, config.SeedPrize{
			Amount:   p.Amount,
			Quantity: p.Quantity,
		})
	}

	return &wheelConfig{seedPrizes: seed}, nil
}

func (cfg *wheelConfig) SeedPrizes() []config.SeedPrize {
	return cfg.seedPrizes
}
