package bootstrap

import (
	"log/slog"

	"parking-booking-gateway/internal/infra/parkingapi"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/usecase/shared"

	"go.uber.org/fx"
)

var UpstreamModule = fx.Module("upstream",
	fx.Provide(
		fx.Annotate(
			NewParkingAPI,
			fx.As(new(shared.ParkingAPI)),
		),
	),
)

func NewParkingAPI(cfg config.Config, logger *slog.Logger) *parkingapi.Client {
	return parkingapi.NewClient(cfg.Upstream, logger)
}
