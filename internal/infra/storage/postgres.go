package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"parking-booking-gateway/internal/infra"
	"parking-booking-gateway/internal/usecase/shared"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const notifyChannel = "session_storage_changes"

// PostgresStore shares session storage between gateway instances. Changes
// travel through LISTEN/NOTIFY so a watch on one instance sees writes made
// on another.
type PostgresStore struct {
	*broadcaster
	pool   *pgxpool.Pool
	logger *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, infra.WrapStorageErr(logger, infra.KindSchemaFailure, "creating postgres schema", err)
	}

	listenCtx, cancel := context.WithCancel(context.Background())
	s := &PostgresStore{
		broadcaster: newBroadcaster(logger),
		pool:        pool,
		logger:      logger,
		cancel:      cancel,
	}
	s.wg.Add(1)
	go s.listen(listenCtx)
	return s, nil
}

// Close stops the notification listener. The pool is owned by the caller.
func (s *PostgresStore) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *PostgresStore) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (s *PostgresStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	query, args, err := s.builder().Select("item_value").
		From(tableName).
		Where(squirrel.Eq{"namespace": namespace, "item_key": key}).
		ToSql()
	if err != nil {
		return "", false, infra.WrapStorageErr(s.logger, infra.KindQueryBuild, "building get query", err)
	}

	var value string
	err = s.pool.QueryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, infra.WrapStorageErr(s.logger, infra.KindDBFailure, "reading item", err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, namespace, key, value string) error {
	query, args, err := s.builder().Insert(tableName).
		Columns("namespace", "item_key", "item_value", "updated_at").
		Values(namespace, key, value, time.Now()).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return infra.WrapStorageErr(s.logger, infra.KindQueryBuild, "building set query", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return infra.WrapStorageErr(s.logger, infra.KindDBFailure, "writing item", err)
	}
	s.notify(ctx, shared.Change{Namespace: namespace, Key: key})
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, namespace, key string) error {
	query, args, err := s.builder().Delete(tableName).
		Where(squirrel.Eq{"namespace": namespace, "item_key": key}).
		ToSql()
	if err != nil {
		return infra.WrapStorageErr(s.logger, infra.KindQueryBuild, "building remove query", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapStorageErr(s.logger, infra.KindDBFailure, "removing item", err)
	}
	if tag.RowsAffected() > 0 {
		s.notify(ctx, shared.Change{Namespace: namespace, Key: key, Removed: true})
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context, namespace string) error {
	query, args, err := s.builder().Delete(tableName).
		Where(squirrel.Eq{"namespace": namespace}).
		ToSql()
	if err != nil {
		return infra.WrapStorageErr(s.logger, infra.KindQueryBuild, "building clear query", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return infra.WrapStorageErr(s.logger, infra.KindDBFailure, "clearing namespace", err)
	}
	s.notify(ctx, shared.Change{Namespace: namespace, Removed: true})
	return nil
}

// notify failures are logged only; the write itself already succeeded.
func (s *PostgresStore) notify(ctx context.Context, change shared.Change) {
	payload, err := json.Marshal(change)
	if err != nil {
		s.logger.Warn("encoding storage change", "error", err)
		return
	}
	if _, err := s.pool.Exec(ctx, "SELECT pg_notify($1, $2)", notifyChannel, string(payload)); err != nil {
		_ = infra.WrapStorageErr(s.logger, infra.KindNotifyFailure, "publishing storage change", err)
	}
}

func (s *PostgresStore) listen(ctx context.Context) {
	defer s.wg.Done()

	for ctx.Err() == nil {
		if err := s.listenOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn("storage listener stopped, reconnecting", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
	}
}

func (s *PostgresStore) listenOnce(ctx context.Context) error {
	pooled, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	// A LISTENing session must never go back to the pool.
	conn := pooled.Hijack()
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return err
	}

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		var change shared.Change
		if err := json.Unmarshal([]byte(n.Payload), &change); err != nil {
			s.logger.Warn("decoding storage change", "error", err)
			continue
		}
		s.publish(change)
	}
}

var _ shared.SessionStore = (*PostgresStore)(nil)
