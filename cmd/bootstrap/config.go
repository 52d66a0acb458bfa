package bootstrap

import (
	"log/slog"

	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/pkg/errs"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		NewConfig,
	),
)

// NewConfig loads the environment and refuses to start on a bad setting.
func NewConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, errs.Wrap(err, "invalid configuration")
	}

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"upstream", cfg.Upstream.BaseURL,
		"storage_driver", cfg.Storage.Driver)
	return cfg, nil
}
