package bootstrap

import (
	"parking-booking-gateway/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	StorageModule,
	UpstreamModule,
	components.UseCaseModule,
	components.HandlerModule,
)
