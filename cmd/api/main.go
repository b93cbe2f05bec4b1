package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/team-directory/internal/api/http"
	"github.com/spec-kit/team-directory/internal/api/http/handlers"
	"github.com/spec-kit/team-directory/internal/auth"
	"github.com/spec-kit/team-directory/internal/config"
	"github.com/spec-kit/team-directory/internal/observability"
	"github.com/spec-kit/team-directory/internal/persistence"
	"github.com/spec-kit/team-directory/internal/repository"
	"github.com/spec-kit/team-directory/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var memberRepo repository.MemberRepository
	if pool := pg.PoolHandle(); pool != nil {
		memberRepo = repository.NewMemberRepository(pool)
	} else {
		memberRepo = repository.NewMemoryMemberRepository()
	}

	denylist := auth.NewTokenDenylist(redis.Client)
	memberService := service.NewMemberService(*cfg, memberRepo)
	authService := service.NewAuthService(*cfg, memberRepo, denylist)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), memberRepo, denylist)

	superuser, err := memberService.BootstrapSuperuser(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
	if err != nil {
		logger.Fatal("failed to bootstrap superuser", zap.Error(err))
	}
	logger.Info("superuser ready", zap.String("id", superuser.ID))

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	membersHandler := handlers.NewMembersHandler(memberService)
	sessionHandler := handlers.NewSessionHandler(authService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Members:        membersHandler,
		Session:        sessionHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
