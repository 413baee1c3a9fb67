package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/smarttranslator/internal/config"
	"github.com/at-ishikawa/smarttranslator/internal/database"
	"github.com/at-ishikawa/smarttranslator/internal/relay"
	"github.com/at-ishikawa/smarttranslator/internal/savedwords"
	"github.com/at-ishikawa/smarttranslator/internal/translation"
)

type StorageBackend string

const (
	StorageBackendFile   StorageBackend = "file"
	StorageBackendSQLite StorageBackend = "sqlite"
	StorageBackendMySQL  StorageBackend = "mysql"
	StorageBackendMemory StorageBackend = "memory"
)

var (
	_                  pflag.Value = (*StorageBackend)(nil)
	allStorageBackends             = []StorageBackend{StorageBackendFile, StorageBackendSQLite, StorageBackendMySQL, StorageBackendMemory}
)

func (b *StorageBackend) Set(val string) error {
	for _, backend := range allStorageBackends {
		if val == string(backend) {
			*b = backend
			return nil
		}
	}
	return fmt.Errorf("invalid storage backend: %s", val)
}

func (b StorageBackend) String() string {
	return string(b)
}

func (b *StorageBackend) Type() string {
	return "StorageBackend"
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("loader.Load() > %w", err)
	}
	if storageBackend != "" {
		cfg.Storage.Backend = string(storageBackend)
	}
	return cfg, nil
}

// openStore opens the configured storage backend. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (*savedwords.Store, func() error, error) {
	noop := func() error { return nil }

	switch StorageBackend(cfg.Storage.Backend) {
	case StorageBackendMemory:
		return savedwords.NewStore(savedwords.NewMemoryBackend()), noop, nil
	case StorageBackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.SQLitePath), 0755); err != nil {
			return nil, nil, fmt.Errorf("os.MkdirAll() > %w", err)
		}
		db, err := database.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("database.OpenSQLite() > %w", err)
		}
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("database.Migrate() > %w", err)
		}
		return savedwords.NewStore(savedwords.NewSQLBackend(db, savedwords.DialectSQLite)), db.Close, nil
	case StorageBackendMySQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open() > %w", err)
		}
		if err := database.Ping(ctx, db, cfg.Database.PingAttempts); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("database.Ping() > %w", err)
		}
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("database.Migrate() > %w", err)
		}
		return savedwords.NewStore(savedwords.NewSQLBackend(db, savedwords.DialectMySQL)), db.Close, nil
	default:
		return savedwords.NewStore(savedwords.NewFileBackend(cfg.Storage.FilePath)), noop, nil
	}
}

// newRelay returns an in-process relay forwarding to the configured API.
func newRelay(cfg *config.Config) (*relay.Relay, func() error) {
	client := translation.NewClient(cfg.Translation.BaseURL)
	return relay.New(client, cfg.Translation.TargetLanguage, cfg.Translation.SourceLanguage), client.Close
}

func confirm(question string) bool {
	prompt := promptui.Prompt{
		Label:     question,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}
