package app

import (
	"context"

	adminAPI "wheel_backend/internal/api/admin"
	"wheel_backend/internal/api/middleware"
	spinAPI "wheel_backend/internal/api/spin"
	"wheel_backend/internal/config"
	"wheel_backend/internal/config/env"
	"wheel_backend/internal/repository"
	"wheel_backend/internal/repository/admin_repo"
	"wheel_backend/internal/repository/prize_repo"
	"wheel_backend/internal/repository/session_repo"
	"wheel_backend/internal/repository/user_repo"
	"wheel_backend/internal/repository/winner_repo"
	"wheel_backend/internal/service"
	"wheel_backend/internal/service/admin"
	"wheel_backend/internal/service/spin"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Wheel bits
	wheelCfg    config.WheelConfig
	userRepo    repository.UserRepository
	prizeRepo   repository.PrizeRepository
	winnerRepo  repository.WinnerRepository
	sessionRepo repository.SessionRepository
	spinServ    service.SpinService
	spinHand    *spinAPI.Handler

	// Admin bits
	jwtCfg    config.JWTConfig
	adminRepo repository.AdminRepository
	adminServ service.AdminService
	adminHand *adminAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) WheelCfg() config.WheelConfig {
	if sp.wheelCfg == nil {
		cfg, err := env.NewWheelConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get wheel config: " + err.Error())
		}
		sp.wheelCfg = cfg
	}
	return sp.wheelCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.userRepo
}

func (sp *ServiceProvider) PrizeRepo(ctx context.Context) repository.PrizeRepository {
	if sp.prizeRepo == nil {
		sp.prizeRepo = prize_repo.NewPrizeRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.prizeRepo
}

func (sp *ServiceProvider) WinnerRepo(ctx context.Context) repository.WinnerRepository {
	if sp.winnerRepo == nil {
		sp.winnerRepo = winner_repo.NewWinnerRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.winnerRepo
}

func (sp *ServiceProvider) SessionRepo(ctx context.Context) repository.SessionRepository {
	if sp.sessionRepo == nil {
		sp.sessionRepo = session_repo.NewSessionRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.sessionRepo
}

func (sp *ServiceProvider) AdminRepo(ctx context.Context) repository.AdminRepository {
	if sp.adminRepo == nil {
		sp.adminRepo = admin_repo.NewAdminRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.adminRepo
}

func (sp *ServiceProvider) SpinService(ctx context.Context) service.SpinService {
	if sp.spinServ == nil {
		sp.spinServ = spin.NewSpinService(
			sp.UserRepo(ctx),
			sp.PrizeRepo(ctx),
			sp.WinnerRepo(ctx),
			sp.SessionRepo(ctx),
			sp.TXManager(ctx),
			spin.NewCryptoRand(),
		)
	}
	return sp.spinServ
}

func (sp *ServiceProvider) AdminService(ctx context.Context) service.AdminService {
	if sp.adminServ == nil {
		sp.adminServ = admin.NewAdminService(
			sp.AdminRepo(ctx),
			sp.UserRepo(ctx),
			sp.PrizeRepo(ctx),
			sp.WinnerRepo(ctx),
			sp.JWTCfg(),
		)
	}
	return sp.adminServ
}

func (sp *ServiceProvider) SpinHandler(ctx context.Context) *spinAPI.Handler {
	if sp.spinHand == nil {
		sp.spinHand = spinAPI.NewHandler(spinAPI.HandlerDeps{
			Serv: sp.SpinService(ctx),
		})
	}
	return sp.spinHand
}

func (sp *ServiceProvider) AdminHandler(ctx context.Context) *adminAPI.Handler {
	if sp.adminHand == nil {
		sp.adminHand = adminAPI.NewHandler(adminAPI.HandlerDeps{
			Serv:     sp.AdminService(ctx),
			SpinServ: sp.SpinService(ctx),
		})
	}
	return sp.adminHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}

		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Wheel endpoints
		spinHandler := sp.SpinHandler(ctx)
		r.Get("/board", spinHandler.Board)
		r.Post("/register", spinHandler.Register)
		r.Post("/select/{userID}", spinHandler.Select)
		r.Get("/wheel", spinHandler.Wheel)
		r.Post("/spin", spinHandler.Spin)

		// Admin endpoints
		adminHandler := sp.AdminHandler(ctx)
		r.Route("/admin", func(rr chi.Router) {
			rr.Post("/login", adminHandler.Login)

			rr.Group(func(ar chi.Router) {
				ar.Use(middleware.AdminAuth(sp.JWTCfg().AccessTokenSecretKey()))
				ar.Post("/logout", adminHandler.Logout)
				ar.Get("/manage", adminHandler.Manage)
				ar.Post("/prizes", adminHandler.AddPrize)
				ar.Delete("/prizes/{id}", adminHandler.DeletePrize)
				ar.Post("/users", adminHandler.AddUser)
				ar.Delete("/users/{id}", adminHandler.DeleteUser)
				ar.Post("/reset", adminHandler.Reset)
				ar.Post("/password", adminHandler.ChangePassword)
				ar.Get("/winners/export", adminHandler.ExportCSV)
			})
		})

		sp.router = r
	}

	return sp.router
}
