package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/adoption-client/internal/api/http/handlers"
	"github.com/spec-kit/adoption-client/internal/auth"
	"github.com/spec-kit/adoption-client/internal/config"
	"github.com/spec-kit/adoption-client/internal/observability"
	"github.com/spec-kit/adoption-client/internal/repository"
	"github.com/spec-kit/adoption-client/internal/service"
)

const requestTimeout = 15 * time.Second

// Server is the assembled mock adoption API.
type Server struct {
	App     *fiber.App
	Auth    *service.AuthService
	Metrics *observability.Metrics
}

// NewServer wires repositories, services and routes. Fixtures are loaded
// when cfg.Mock.Seed is set.
func NewServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := observability.NewMetrics()

	users := repository.NewUserRepository()
	catalog := repository.NewCatalog()
	authService := service.NewAuthService(cfg.Mock, service.AuthDependencies{
		UserRepo:          users,
		PasswordResetRepo: repository.NewPasswordResetRepository(),
		RefreshTokenRepo:  repository.NewRefreshTokenRepository(),
	}, logger)
	animalService := service.NewAnimalService(catalog)
	shelterService := service.NewShelterService(catalog)
	adoptionService := service.NewAdoptionService(catalog, animalService, users, logger)
	contactService := service.NewContactService(catalog)

	if cfg.Mock.Seed {
		if err := service.Seed(ctx, authService, shelterService, animalService, logger); err != nil {
			return nil, fmt.Errorf("seed fixtures: %w", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		Immutable:             true,
	})
	RegisterMiddlewares(app, logger, metrics, requestTimeout)

	RegisterRoutes(app, RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Checker{
			"catalog": func(context.Context) error {
				if cfg.Mock.Seed && catalog.Shelters.Len() == 0 {
					return fmt.Errorf("fixtures missing")
				}
				return nil
			},
		}),
		Auth:           handlers.NewAuthHandler(authService),
		Animals:        handlers.NewAnimalsHandler(animalService),
		Shelters:       handlers.NewSheltersHandler(shelterService),
		Adoptions:      handlers.NewAdoptionsHandler(adoptionService),
		Contact:        handlers.NewContactHandler(contactService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager()),
	})

	return &Server{App: app, Auth: authService, Metrics: metrics}, nil
}
