package components

import (
	"slotledger/internal/domain/schedule"
	"slotledger/internal/pkg/clock"
	"slotledger/internal/pkg/config"
	"slotledger/internal/usecase/commands"
	"slotledger/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewWindow,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
	),
)

func NewWindow(cfg config.Config) (schedule.Window, error) {
	return schedule.NewWindow(cfg.Schedule.OpenHour, cfg.Schedule.CloseHour, cfg.Schedule.StepMinutes)
}
