package storage

import (
	"context"
	"fmt"
	"log/slog"

	"parking-booking-gateway/internal/infra/db"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/usecase/shared"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open builds the store selected by cfg.Storage.Driver. The returned cleanup
// releases everything Open acquired.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (shared.SessionStore, func(), error) {
	switch cfg.Storage.Driver {
	case "", DriverMemory:
		return NewMemoryStore(logger), func() {}, nil

	case DriverSQLite:
		conn, closeDB, err := db.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store, err := NewSQLiteStore(ctx, conn, logger)
		if err != nil {
			closeDB()
			return nil, nil, err
		}
		return store, closeDB, nil

	case DriverPostgres:
		pool, closePool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		store, err := NewPostgresStore(ctx, pool, logger)
		if err != nil {
			closePool()
			return nil, nil, err
		}
		return store, func() {
			store.Close()
			closePool()
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
