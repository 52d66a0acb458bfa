//go:build unit

package config_test

import (
	"testing"

	"parking-booking-gateway/internal/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{
			name:   "test config is valid",
			mutate: func(*config.Config) {},
		},
		{
			name:    "relative upstream url",
			mutate:  func(c *config.Config) { c.Upstream.BaseURL = "/api" },
			wantErr: "API_BASE_URL",
		},
		{
			name:    "short session secret",
			mutate:  func(c *config.Config) { c.Session.Secret = "short" },
			wantErr: "SESSION_SECRET",
		},
		{
			name: "samesite none without secure",
			mutate: func(c *config.Config) {
				c.Session.SameSite = "None"
				c.Session.Secure = false
			},
			wantErr: "COOKIE_SECURE",
		},
		{
			name:    "unknown samesite",
			mutate:  func(c *config.Config) { c.Session.SameSite = "sometimes" },
			wantErr: "COOKIE_SAMESITE",
		},
		{
			name:    "postgres without database name",
			mutate:  func(c *config.Config) { c.Storage.Driver = "postgres" },
			wantErr: "DB_NAME",
		},
		{
			name:    "zero reconcile interval",
			mutate:  func(c *config.Config) { c.Reconcile.BookingsInterval = 0 },
			wantErr: "reconcile intervals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewTestConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBookingLocation(t *testing.T) {
	assert.Equal(t, "Asia/Kolkata", config.BookingConfig{TimeZone: "Asia/Kolkata"}.Location().String())
	assert.Equal(t, "UTC", config.BookingConfig{TimeZone: "Mars/Olympus"}.Location().String())
}
