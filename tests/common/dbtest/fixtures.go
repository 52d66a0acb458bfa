//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ResetDB drops every stored session item.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE session_storage")
	return err
}

// StoredKeys lists the item keys persisted for one browser session.
func StoredKeys(t *testing.T, db DBLike, namespace string) []string {
	t.Helper()

	ctx := context.Background()
	var keys []string
	err := db.QueryRow(ctx,
		"SELECT COALESCE(array_agg(item_key ORDER BY item_key), '{}') FROM session_storage WHERE namespace = $1",
		namespace).Scan(&keys)
	require.NoError(t, err)
	return keys
}

func StoredValue(t *testing.T, db DBLike, namespace, key string) string {
	t.Helper()

	ctx := context.Background()
	var value string
	err := db.QueryRow(ctx,
		"SELECT item_value FROM session_storage WHERE namespace = $1 AND item_key = $2",
		namespace, key).Scan(&value)
	require.NoError(t, err)
	return value
}
