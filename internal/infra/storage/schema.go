package storage

const tableName = "session_storage"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS session_storage (
    namespace   TEXT    NOT NULL,
    item_key    TEXT    NOT NULL,
    item_value  TEXT    NOT NULL,
    updated_at  INTEGER NOT NULL,
    PRIMARY KEY (namespace, item_key)
);`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS session_storage (
    namespace   TEXT        NOT NULL,
    item_key    TEXT        NOT NULL,
    item_value  TEXT        NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (namespace, item_key)
);`

// last writer wins
const upsertSuffix = "ON CONFLICT (namespace, item_key) DO UPDATE SET item_value = excluded.item_value, updated_at = excluded.updated_at"
