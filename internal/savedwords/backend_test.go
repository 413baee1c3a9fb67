package savedwords

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/smarttranslator/internal/database"
)

func TestBackends_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		newBackend func(t *testing.T) Backend
	}{
		{
			name: "memory",
			newBackend: func(t *testing.T) Backend {
				return NewMemoryBackend()
			},
		},
		{
			name: "file",
			newBackend: func(t *testing.T) Backend {
				return NewFileBackend(filepath.Join(t.TempDir(), "nested", "storage.json"))
			},
		},
		{
			name: "sqlite",
			newBackend: func(t *testing.T) Backend {
				db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "storage.db"))
				require.NoError(t, err)
				t.Cleanup(func() { _ = db.Close() })
				require.NoError(t, database.Migrate(context.Background(), db))
				return NewSQLBackend(db, DialectSQLite)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			backend := tt.newBackend(t)

			_, ok, err := backend.Get(ctx, StorageKey)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, backend.Set(ctx, StorageKey, []byte(`{"b":1,"a":2}`)))
			require.NoError(t, backend.Set(ctx, "other", []byte(`true`)))
			got, ok, err := backend.Get(ctx, StorageKey)
			require.NoError(t, err)
			require.True(t, ok)
			assert.JSONEq(t, `{"b":1,"a":2}`, string(got))

			require.NoError(t, backend.Set(ctx, StorageKey, []byte(`{}`)))
			got, ok, err = backend.Get(ctx, StorageKey)
			require.NoError(t, err)
			require.True(t, ok)
			assert.JSONEq(t, `{}`, string(got))

			// The store works on top of every backend
			store := NewStore(backend)
			_, err = store.Save(ctx, Entry{Original: "second"})
			require.NoError(t, err)
			_, err = store.Save(ctx, Entry{Original: "first"})
			require.NoError(t, err)
			entries, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, "second", entries[0].Original)
			assert.Equal(t, "first", entries[1].Original)
		})
	}
}

func TestFileBackend_Errors(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))
	backend := NewFileBackend(path)

	_, _, err := backend.Get(ctx, StorageKey)
	assert.Error(t, err)
	assert.Error(t, backend.Set(ctx, StorageKey, []byte(`{}`)))

	require.NoError(t, os.WriteFile(path, []byte(""), 0644))
	assert.Error(t, backend.Set(ctx, StorageKey, []byte(`not json`)))
	require.NoError(t, backend.Set(ctx, StorageKey, []byte(`{}`)))
}

func TestFileBackend_NullDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0644))
	store := NewStore(NewFileBackend(path))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	status, err := store.Save(ctx, Entry{Original: "hello", Translated: "xin chào"})
	require.NoError(t, err)
	assert.Equal(t, Saved, status)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLBackend_MySQL(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		run       func(backend *SQLBackend) error
		wantErr   bool
	}{
		{
			name: "get existing value",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM kv_store WHERE storage_key = \\?").
					WithArgs(StorageKey).
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{}`))
			},
			run: func(backend *SQLBackend) error {
				got, ok, err := backend.Get(context.Background(), StorageKey)
				if err != nil {
					return err
				}
				if !ok || string(got) != `{}` {
					return fmt.Errorf("unexpected value %q %v", got, ok)
				}
				return nil
			},
		},
		{
			name: "get missing value",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM kv_store").
					WillReturnRows(sqlmock.NewRows([]string{"value"}))
			},
			run: func(backend *SQLBackend) error {
				_, ok, err := backend.Get(context.Background(), StorageKey)
				if err != nil {
					return err
				}
				if ok {
					return fmt.Errorf("expected no value")
				}
				return nil
			},
		},
		{
			name: "get db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM kv_store").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			run: func(backend *SQLBackend) error {
				_, _, err := backend.Get(context.Background(), StorageKey)
				return err
			},
			wantErr: true,
		},
		{
			name: "set upserts",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO kv_store \\(storage_key, value\\) VALUES \\(\\?, \\?\\)\\s+ON DUPLICATE KEY UPDATE value = VALUES\\(value\\)").
					WithArgs(StorageKey, `{"hello":{}}`).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			run: func(backend *SQLBackend) error {
				return backend.Set(context.Background(), StorageKey, []byte(`{"hello":{}}`))
			},
		},
		{
			name: "set db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO kv_store").
					WillReturnError(fmt.Errorf("read-only"))
			},
			run: func(backend *SQLBackend) error {
				return backend.Set(context.Background(), StorageKey, []byte(`{}`))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			backend := NewSQLBackend(sqlx.NewDb(db, "mysql"), DialectMySQL)
			err = tt.run(backend)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLBackend_UnsupportedDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	backend := NewSQLBackend(sqlx.NewDb(db, "postgres"), Dialect("postgres"))
	assert.Error(t, backend.Set(context.Background(), StorageKey, []byte(`{}`)))
}
