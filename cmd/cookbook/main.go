package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"cookbook/config"
	"cookbook/internal/delivery"
	"cookbook/internal/delivery/http"
	httpmiddleware "cookbook/internal/delivery/http/middleware"
	"cookbook/internal/delivery/http/router/handler"
	deliverymiddleware "cookbook/internal/delivery/middleware"
	"cookbook/internal/domain/repository"
	"cookbook/internal/domain/service"
	"cookbook/internal/infra/auth"
	logs "cookbook/internal/infra/log"
	"cookbook/internal/infra/persistence/postgres"
	"cookbook/internal/infra/pubsub"
	"cookbook/internal/infra/qrcode"
	"cookbook/internal/infra/storage"
	"cookbook/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
			startSessionCleanup,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
		),
		storage.Module,
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewSessionRepository,
			postgres.NewRecipeRepository,
			postgres.NewCommentRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
			auth.NewSessionTokenService,
			newQRCodeService,
		),
	)
}

// newPasswordHasher creates the bcrypt hasher with the configured cost and
// strength policy.
func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	cost := 0
	if cfg.Auth != nil {
		cost = cfg.Auth.BcryptCost
	}

	if cfg.PasswordStrength == nil {
		if cost == 0 {
			return auth.NewBcryptHasher()
		}

		return auth.NewBcryptHasherWithCost(cost)
	}

	return auth.NewBcryptHasherWithPolicy(cost, auth.StrengthPolicy{
		MinLength:        cfg.PasswordStrength.MinLength,
		MaxLength:        cfg.PasswordStrength.MaxLength,
		RequireUppercase: cfg.PasswordStrength.RequireUppercase,
		RequireLowercase: cfg.PasswordStrength.RequireLowercase,
		RequireNumbers:   cfg.PasswordStrength.RequireNumbers,
		RequireSpecial:   cfg.PasswordStrength.RequireSpecial,
	})
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthorizationService,
			impl.NewAuthService,
			impl.NewProfileService,
			impl.NewRecipeService,
			impl.NewCommentService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			httpmiddleware.NewAuthMiddleware,
			httpmiddleware.NewErrorMiddleware,
			deliverymiddleware.NewRequestIDMiddleware,
			deliverymiddleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewRecipeHandler,
			handler.NewCommentHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

type sessionCleanupParams struct {
	fx.In
	fx.Lifecycle

	SessionRepo repository.SessionRepository
	Logger      *slog.Logger
}

// startSessionCleanup prunes expired sessions in the background so the
// sessions table does not grow without bound. Expired tokens are already
// rejected at resolution time; this only reclaims storage.
func startSessionCleanup(params sessionCleanupParams) {
	ctx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(time.Hour)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if err := params.SessionRepo.DeleteExpiredSessions(ctx); err != nil {
							params.Logger.Warn("expired session cleanup failed", slog.Any("error", err))
						}
					}
				}
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()

			return nil
		},
	})
}
