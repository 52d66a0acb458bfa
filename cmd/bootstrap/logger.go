package bootstrap

import (
	"log/slog"

	"parking-booking-gateway/internal/handler/middleware"
	"parking-booking-gateway/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		func(cfg config.Config) *slog.Logger {
			return middleware.NewLogger(cfg.Log)
		},
	),
)
