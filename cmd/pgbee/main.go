package main

import (
	"context"
	"log/slog"
	"os"

	"pgbee/config"
	"pgbee/internal/delivery"
	"pgbee/internal/delivery/http"
	"pgbee/internal/delivery/http/middleware"
	"pgbee/internal/delivery/http/router/handler"
	"pgbee/internal/infra/auth"
	"pgbee/internal/infra/auth/google"
	"pgbee/internal/infra/cache"
	logs "pgbee/internal/infra/log"
	"pgbee/internal/infra/persistence/postgres"
	"pgbee/internal/infra/pubsub"
	"pgbee/internal/infra/qrcode"
	"pgbee/internal/infra/storage"
	"pgbee/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

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
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		cache.NewRedisClient,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
			postgres.NewUserRepository,
			postgres.NewRefreshSessionRepository,
			postgres.NewHostelRepository,
			postgres.NewOwnerRepository,
			postgres.NewStudentRepository,
			postgres.NewReviewRepository,
			postgres.NewAmenityRepository,
			postgres.NewRentRepository,
			postgres.NewEnquiryRepository,
			postgres.NewFileRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			google.NewOAuthService,
			cache.NewStateStore,
			cache.NewRateLimiter,
			qrcode.NewQRCodeService,
			storage.New,
			pubsub.NewEventPublisher,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				impl.NewLocalProvider,
				fx.ResultTags(`group:"auth_providers"`),
			),
			fx.Annotate(
				impl.NewGoogleProvider,
				fx.ResultTags(`group:"auth_providers"`),
			),
			impl.NewAuthService,
			impl.NewHostelService,
			impl.NewOwnerService,
			impl.NewStudentService,
			impl.NewReviewService,
			impl.NewAmenityService,
			impl.NewRentService,
			impl.NewEnquiryService,
			impl.NewFileService,
			impl.NewSessionPurger,
		),
		fx.Invoke(func(*impl.SessionPurger) {}),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRateLimitMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewHostelHandler,
			handler.NewProfileHandler,
			handler.NewReviewHandler,
			handler.NewListingHandler,
			handler.NewEnquiryHandler,
			handler.NewFileHandler,
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

				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
