package main

import (
	"context"
	"log/slog"
	"os"

	"saasadmin/config"
	"saasadmin/internal/delivery"
	"saasadmin/internal/delivery/api"
	apimiddleware "saasadmin/internal/delivery/api/middleware"
	"saasadmin/internal/delivery/api/router/handler"
	"saasadmin/internal/delivery/worker"
	"saasadmin/internal/domain/service"
	"saasadmin/internal/infra/auth"
	logs "saasadmin/internal/infra/log"
	"saasadmin/internal/infra/metrics"
	"saasadmin/internal/infra/persistence/postgres"
	"saasadmin/internal/usecase/impl"

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
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		service.SystemClock,
		metrics.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewIdentityRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewDirectoryRepository,
			postgres.NewAccountRepository,
			postgres.NewTenantRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			metrics.NewAuthMetrics,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewIdentityResolver,
			impl.NewAuthenticatorService,
			impl.NewSessionService,
			impl.NewDirectoryService,
			impl.NewAccountService,
			impl.NewTenantService,
			impl.NewTokenCleanupService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewDirectoryHandler,
			handler.NewUserHandler,
			handler.NewTenantHandler,
			handler.NewStatusHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewServer,
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
