package components

import (
	"context"
	"log/slog"

	"parking-booking-gateway/internal/handler/api"
	"parking-booking-gateway/internal/pkg/clock"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/pkg/sealer"
	"parking-booking-gateway/internal/usecase/bookingcache"
	"parking-booking-gateway/internal/usecase/commands"
	"parking-booking-gateway/internal/usecase/projection"
	"parking-booking-gateway/internal/usecase/queries"
	"parking-booking-gateway/internal/usecase/reconciler"
	"parking-booking-gateway/internal/usecase/session"
	"parking-booking-gateway/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseSessionModule,
	usecaseQueriesModule,
	usecaseCommandsModule,
	usecaseReconcileModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) *sealer.Sealer {
		return sealer.New(cfg.Session.Secret)
	},
	func(store shared.SessionStore, clk clock.Clock, cfg config.Config, logger *slog.Logger) *bookingcache.Cache {
		return bookingcache.New(store, clk, cfg.Booking, logger)
	},
	projection.NewProjector,
)

var usecaseSessionModule = fx.Module("usecase/session",
	fx.Provide(
		fx.Annotate(
			session.NewManager,
			fx.As(new(session.Service)),
			fx.As(new(shared.Credentials)),
		),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewCatalogQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(upstream shared.ParkingAPI, creds shared.Credentials, store shared.SessionStore, clk clock.Clock, cfg config.Config, logger *slog.Logger) commands.DraftCommands {
			return commands.NewDraftCommands(upstream, creds, store, clk, cfg.Booking, logger)
		},
		func(
			upstream shared.ParkingAPI,
			creds shared.Credentials,
			store shared.SessionStore,
			cache *bookingcache.Cache,
			projector *projection.Projector,
			notifier commands.Notifier,
			clk clock.Clock,
			cfg config.Config,
			logger *slog.Logger,
		) commands.BookingCommands {
			return commands.NewBookingCommands(upstream, creds, store, cache, projector, notifier, clk, cfg.Booking, logger)
		},
	),
)

var usecaseReconcileModule = fx.Module("usecase/reconciler",
	fx.Provide(
		func(
			upstream shared.ParkingAPI,
			creds shared.Credentials,
			cache *bookingcache.Cache,
			projector *projection.Projector,
			clk clock.Clock,
			cfg config.Config,
			logger *slog.Logger,
		) *reconciler.Reconciler {
			return reconciler.New(upstream, creds, cache, projector, clk, cfg.Reconcile, logger)
		},
		fx.Annotate(
			NewScheduler,
			fx.As(new(commands.Notifier)),
			fx.As(new(api.Watcher)),
		),
	),
)

// NewScheduler ties the reconcile timers to the application lifecycle.
func NewScheduler(
	lc fx.Lifecycle,
	rec *reconciler.Reconciler,
	store shared.SessionStore,
	cache *bookingcache.Cache,
	cfg config.Config,
	logger *slog.Logger,
) *reconciler.Scheduler {
	sched := reconciler.NewScheduler(rec, store, cache, cfg.Reconcile, logger)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sched.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sched.Stop(ctx)
			return nil
		},
	})
	return sched
}
