package savedwords

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Dialect selects the upsert statement for SQLBackend.
type Dialect string

const (
	DialectMySQL  Dialect = "mysql"
	DialectSQLite Dialect = "sqlite"
)

// SQLBackend stores keys in the kv_store table.
type SQLBackend struct {
	db      *sqlx.DB
	dialect Dialect
}

func NewSQLBackend(db *sqlx.DB, dialect Dialect) *SQLBackend {
	return &SQLBackend{db: db, dialect: dialect}
}

func (b *SQLBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := b.db.GetContext(ctx, &value, "SELECT value FROM kv_store WHERE storage_key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("db.GetContext(kv_store) > %w", err)
	}
	return []byte(value), true, nil
}

func (b *SQLBackend) Set(ctx context.Context, key string, value []byte) error {
	var query string
	switch b.dialect {
	case DialectMySQL:
		query = `INSERT INTO kv_store (storage_key, value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)`
	case DialectSQLite:
		query = `INSERT INTO kv_store (storage_key, value) VALUES (?, ?)
		ON CONFLICT(storage_key) DO UPDATE SET value = excluded.value`
	default:
		return fmt.Errorf("unsupported dialect: %s", b.dialect)
	}
	if _, err := b.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("db.ExecContext(upsert kv_store) > %w", err)
	}
	return nil
}
