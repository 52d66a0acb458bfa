package components

import (
	"parking-booking-gateway/internal/handler"
	"parking-booking-gateway/internal/handler/api"
	"parking-booking-gateway/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewCatalogHandler,
		api.NewDraftHandler,
		api.NewWatchHandler,
		middleware.NewSessionMiddleware,
		NewRouterHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

type RouterHandlers struct {
	fx.In

	Auth    *api.AuthHandler
	Booking *api.BookingHandler
	Catalog *api.CatalogHandler
	Draft   *api.DraftHandler
	Watch   *api.WatchHandler
	Session *middleware.SessionMiddleware
}

func NewRouterHandlers(in RouterHandlers) handler.Handlers {
	return handler.Handlers{
		Auth:    in.Auth,
		Booking: in.Booking,
		Catalog: in.Catalog,
		Draft:   in.Draft,
		Watch:   in.Watch,
		Session: in.Session,
	}
}
