package bootstrap

import (
	"context"
	"log/slog"

	"parking-booking-gateway/internal/infra/storage"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/usecase/shared"

	"go.uber.org/fx"
)

var StorageModule = fx.Module("storage",
	fx.Provide(
		NewSessionStore,
	),
)

func NewSessionStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.SessionStore, error) {
	store, cleanup, err := storage.Open(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return store, nil
}
