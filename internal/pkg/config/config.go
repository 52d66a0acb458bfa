package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, upstream URL, secrets)
// - default: Values common across all environments (timeouts, intervals, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	Upstream  UpstreamConfig
	Storage   StorageConfig
	DB        DBConfig
	Session   SessionConfig
	Reconcile ReconcileConfig
	Booking   BookingConfig
	CORS      CORSConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type UpstreamConfig struct {
	BaseURL     string        `envconfig:"API_BASE_URL" required:"true"`
	Timeout     time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	ListRetries int           `envconfig:"API_LIST_RETRIES" default:"1"`
}

// Driver is one of "memory", "sqlite" or "postgres".
type StorageConfig struct {
	Driver     string `envconfig:"STORAGE_DRIVER" default:"memory"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"parking-gateway.db"`
}

// Only read when STORAGE_DRIVER=postgres.
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type SessionConfig struct {
	Secret   string        `envconfig:"SESSION_SECRET" required:"true"`
	TTL      time.Duration `envconfig:"SESSION_TTL" default:"168h"`
	Domain   string        `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool          `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string        `envconfig:"COOKIE_SAMESITE" default:"Lax"`
}

type ReconcileConfig struct {
	DashboardInterval time.Duration `envconfig:"RECONCILE_DASHBOARD_INTERVAL" default:"30s"`
	BookingsInterval  time.Duration `envconfig:"RECONCILE_BOOKINGS_INTERVAL" default:"10s"`
	CompleteTimeout   time.Duration `envconfig:"RECONCILE_COMPLETE_TIMEOUT" default:"5s"`
}

type BookingConfig struct {
	RedirectDelay    time.Duration `envconfig:"BOOKING_REDIRECT_DELAY" default:"2s"`
	MinAdvanceWindow time.Duration `envconfig:"BOOKING_MIN_ADVANCE_WINDOW" default:"30m"`
	RecentLimit      int           `envconfig:"BOOKING_RECENT_LIMIT" default:"10"`
	TimeZone         string        `envconfig:"BOOKING_TIMEZONE" default:"Asia/Kolkata"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:4200"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kolkata"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5.5*60*60
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Location falls back to UTC when the configured zone is unknown.
func (c BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err.Error())
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

const minSessionSecret = 16

// Validate reports every setting envconfig cannot check on its own.
func (c Config) Validate() error {
	var problems []error

	if u, err := url.Parse(c.Upstream.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Errorf("API_BASE_URL must be an absolute http(s) URL, got %q", c.Upstream.BaseURL))
	}
	if len(c.Session.Secret) < minSessionSecret {
		problems = append(problems, fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecret))
	}
	switch strings.ToLower(c.Session.SameSite) {
	case "lax", "strict":
	case "none":
		if !c.Session.Secure {
			problems = append(problems, errors.New("COOKIE_SAMESITE=None requires COOKIE_SECURE=true"))
		}
	default:
		problems = append(problems, fmt.Errorf("COOKIE_SAMESITE must be Lax, Strict or None, got %q", c.Session.SameSite))
	}
	if c.Reconcile.DashboardInterval <= 0 || c.Reconcile.BookingsInterval <= 0 {
		problems = append(problems, errors.New("reconcile intervals must be positive"))
	}
	if c.Booking.MinAdvanceWindow <= 0 {
		problems = append(problems, errors.New("BOOKING_MIN_ADVANCE_WINDOW must be positive"))
	}
	if c.Storage.Driver == "postgres" && c.DB.DBName == "" {
		problems = append(problems, errors.New("DB_NAME is required for the postgres storage driver"))
	}

	return errors.Join(problems...)
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Upstream: UpstreamConfig{
			BaseURL:     "http://127.0.0.1:8000/api",
			Timeout:     2 * time.Second,
			ListRetries: 1,
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
		Session: SessionConfig{
			Secret:   "test-session-secret",
			TTL:      time.Hour,
			SameSite: "Lax",
		},
		Reconcile: ReconcileConfig{
			DashboardInterval: 30 * time.Second,
			BookingsInterval:  10 * time.Second,
			CompleteTimeout:   time.Second,
		},
		Booking: BookingConfig{
			RedirectDelay:    2 * time.Second,
			MinAdvanceWindow: 30 * time.Minute,
			RecentLimit:      10,
			TimeZone:         "UTC",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:4200"},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
	}
}
