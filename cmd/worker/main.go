package main

import (
	"context"
	"log/slog"
	"os"

	"slotledger/cmd/bootstrap"
	"slotledger/internal/infra/readstore"
	"slotledger/internal/pkg/clock"
	"slotledger/internal/pkg/config"
	"slotledger/internal/usecase/queries"
	"slotledger/internal/worker"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
)

func newAsynqServer(cfg config.Config) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				cfg.Reminder.Queue: 1,
			},
		},
	)
}

func runWorker(lc fx.Lifecycle, srv *asynq.Server, handler *worker.ReminderHandler, logger *slog.Logger) {
	mux := asynq.NewServeMux()
	worker.Register(mux, handler)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting reminder worker")
			go func() {
				if err := srv.Run(mux); err != nil {
					logger.Error("worker stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("stopping reminder worker")
			srv.Shutdown()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.ConfigModule,
		bootstrap.DBModule,
		bootstrap.LoggerModule,
		fx.Provide(
			clock.NewRealClock,
			fx.Annotate(
				readstore.NewBookingReadStore,
				fx.As(new(queries.BookingReadStore)),
			),
			queries.NewBookingQueries,
			worker.NewReminderHandler,
			newAsynqServer,
		),
		fx.Invoke(
			runWorker,
		),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("worker failed to start", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("worker failed to stop cleanly", "error", err)
	}
}
