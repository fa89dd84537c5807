package app

import (
	"context"
	"log"
	"net/http"

	"wheel_backend/internal/bootstrap"
	"wheel_backend/internal/config"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) Run() error {
	err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	s.initServiceProvider()

	ctx := context.Background()

	// Схема и начальные данные
	dbc := s.ServiceProvider.DBClient(ctx)
	if err := bootstrap.EnsureSchema(ctx, dbc); err != nil {
		return err
	}
	if err := bootstrap.SeedAdmin(ctx, s.ServiceProvider.AdminRepo(ctx)); err != nil {
		return err
	}
	if err := bootstrap.SeedPrizes(ctx, s.ServiceProvider.PrizeRepo(ctx), s.ServiceProvider.WheelCfg().SeedPrizes()); err != nil {
		return err
	}

	r := s.ServiceProvider.Router(ctx)

	log.Printf("starting server at %s", s.ServiceProvider.HTTPCfg().Address())
	err = http.ListenAndServe(s.ServiceProvider.HTTPCfg().Address(), r)
	if err != nil {
		return err
	}
	return err
}
