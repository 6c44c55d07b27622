package components

import (
	"log/slog"

	"slotledger/internal/infra/cache"
	"slotledger/internal/infra/notify"
	"slotledger/internal/infra/readstore"
	"slotledger/internal/infra/repository"
	"slotledger/internal/pkg/clock"
	"slotledger/internal/pkg/config"
	"slotledger/internal/usecase/commands"
	"slotledger/internal/usecase/queries"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
			fx.As(new(commands.ActiveBookingReader)),
		),
		fx.Annotate(
			readstore.NewServiceReadStore,
			fx.As(new(queries.ServiceReadStore)),
			fx.As(new(commands.ServiceReadStore)),
		),
		fx.Annotate(
			NewAvailabilityCache,
			fx.As(new(queries.AvailabilityCache)),
			fx.As(new(commands.AvailabilityInvalidator)),
		),
		fx.Annotate(
			NewReminderScheduler,
			fx.As(new(commands.ReminderScheduler)),
		),
	),
)

func NewAvailabilityCache(client *redis.Client, cfg config.Config) *cache.AvailabilityCache {
	return cache.NewAvailabilityCache(client, cfg.Schedule.AvailabilityTTL)
}

func NewReminderScheduler(client *asynq.Client, cfg config.Config, clk clock.Clock, logger *slog.Logger) *notify.ReminderScheduler {
	return notify.NewReminderScheduler(client, cfg.Reminder, clk, logger)
}
