package middleware

import (
	"log/slog"
	"slices"

	"parking-booking-gateway/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware lets the SPA call the gateway with its session cookie.
// The return-to header is always allowed so a configured header list
// cannot break post-login navigation.
func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	headers := slices.Clone(cfg.AllowHeaders)
	if !slices.Contains(headers, ReturnToHeader) {
		headers = append(headers, ReturnToHeader)
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     headers,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		AllowWebSockets:  true,
		MaxAge:           cfg.MaxAge,
	}
	if slices.Contains(cfg.AllowOrigins, "*") {
		// gin-contrib/cors rejects "*" next to explicit origins and credentials.
		corsCfg.AllowOrigins = nil
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	}

	logger.Info("cors configured",
		"allow_origins", cfg.AllowOrigins,
		"allow_credentials", cfg.AllowCredentials)
	return cors.New(corsCfg)
}

// OriginAllowed applies the CORS origin list to requests cors.New never
// sees, such as WebSocket upgrades. An absent Origin is a same-site client.
func OriginAllowed(cfg config.CORSConfig, origin string) bool {
	return origin == "" || slices.Contains(cfg.AllowOrigins, "*") || slices.Contains(cfg.AllowOrigins, origin)
}
