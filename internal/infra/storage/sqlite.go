package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"parking-booking-gateway/internal/infra"
	"parking-booking-gateway/internal/usecase/shared"

	"github.com/Masterminds/squirrel"
)

type SQLiteStore struct {
	*broadcaster
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates the schema on db if needed.
func NewSQLiteStore(ctx context.Context, db *sql.DB, logger *slog.Logger) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, infra.WrapStorageErr(logger, infra.KindSchemaFailure, "creating sqlite schema", err)
	}
	return &SQLiteStore{
		broadcaster: newBroadcaster(logger),
		db:          db,
		logger:      logger,
	}, nil
}

func (s *SQLiteStore) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

func (s *SQLiteStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	query, args, err := s.builder().Select("item_value").
		From(tableName).
		Where(squirrel.Eq{"namespace": namespace, "item_key": key}).
		ToSql()
	if err != nil {
		return "", false, infra.WrapStorageErr(s.logger, infra.KindQueryBuild, "building get query", err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, infra.WrapStorageErr(s.logger, infra.KindDBFailure, "reading item", err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, namespace, key, value string) error {
	query, args, err := s.builder().Insert(tableName).
		Columns("namespace", "item_key", "item_value", "updated_at").
		Values(namespace, key, value, time.Now().UnixMilli()).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return infra.WrapStorageErr(s.logger, infra.KindQueryBuild, "building set query", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return infra.WrapStorageErr(s.logger, infra.KindDBFailure, "writing item", err)
	}
	s.publish(shared.Change{Namespace: namespace, Key: key})
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, namespace, key string) error {
	query, args, err := s.builder().Delete(tableName).
		Where(squirrel.Eq{"namespace": namespace, "item_key": key}).
		ToSql()
	if err != nil {
		return infra.WrapStorageErr(s.logger, infra.KindQueryBuild, "building remove query", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return infra.WrapStorageErr(s.logger, infra.KindDBFailure, "removing item", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		s.publish(shared.Change{Namespace: namespace, Key: key, Removed: true})
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, namespace string) error {
	query, args, err := s.builder().Delete(tableName).
		Where(squirrel.Eq{"namespace": namespace}).
		ToSql()
	if err != nil {
		return infra.WrapStorageErr(s.logger, infra.KindQueryBuild, "building clear query", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return infra.WrapStorageErr(s.logger, infra.KindDBFailure, "clearing namespace", err)
	}
	s.publish(shared.Change{Namespace: namespace, Removed: true})
	return nil
}

var _ shared.SessionStore = (*SQLiteStore)(nil)
