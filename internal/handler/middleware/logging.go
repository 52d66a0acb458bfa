package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"time"

	"parking-booking-gateway/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	maxRequestIDLen = 64
)

// NewLogger builds the process logger: JSON in release mode, text otherwise,
// timestamps rendered in the configured zone. It also becomes slog's default.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	zone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.In(zone).Format(cfg.TimeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// RequestLogger tags each request with an id, reusing the caller's
// X-Request-ID when it sends a sane one, and logs the outcome.
func RequestLogger(logger *slog.Logger, cfg config.LogConfig) gin.HandlerFunc {
	zone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = newRequestID(start.In(zone))
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
		}
		// Health probes only show up at debug.
		quiet := c.Request.URL.Path == "/health"
		if !quiet {
			logger.LogAttrs(c.Request.Context(), slog.LevelDebug, "request started", attrs...)
		}

		c.Next()

		status := c.Writer.Status()
		// Session and user are only known once the session middleware ran.
		attrs = append(attrs, sessionAttrs(c)...)
		attrs = append(attrs,
			slog.Int("status_code", status),
			slog.Duration("duration", time.Since(start)),
		)
		if size := c.Writer.Size(); size > 0 {
			attrs = append(attrs, slog.Int("response_size", size))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		case quiet:
			level = slog.LevelDebug
		}
		logger.LogAttrs(c.Request.Context(), level, "request completed", attrs...)
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func newRequestID(now time.Time) string {
	stamp := now.Format("20060102150405")
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%s-%08d", stamp, now.UnixNano()%100000000)
	}
	return stamp + "-" + hex.EncodeToString(buf)
}

func sessionAttrs(c *gin.Context) []slog.Attr {
	var attrs []slog.Attr
	if ns, ok := GetNamespace(c); ok {
		attrs = append(attrs, slog.String("namespace", ns))
	}
	if userID, ok := GetUserID(c); ok && userID != "" {
		attrs = append(attrs, slog.String("user_id", userID))
	}
	if role, ok := GetUserRole(c); ok && role != "" {
		attrs = append(attrs, slog.String("role", role))
	}
	return attrs
}
