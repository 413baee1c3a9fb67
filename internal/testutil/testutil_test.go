package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/smarttranslator/internal/config"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := SetupTestConfig(t, tmpDir)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:7027/api", cfg.Translation.BaseURL)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, StorageFilePath(tmpDir), cfg.Storage.FilePath)
	assert.Equal(t, tmpDir, cfg.DevServer.Root)
}

func TestSetupTestConfigWithAPI(t *testing.T) {
	cfg, err := config.Load(SetupTestConfigWithAPI(t, t.TempDir(), "http://127.0.0.1:9999/api"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999/api", cfg.Translation.BaseURL)
}

func TestSetupBrokenConfig(t *testing.T) {
	_, err := config.Load(SetupBrokenConfig(t))
	assert.Error(t, err)
}
