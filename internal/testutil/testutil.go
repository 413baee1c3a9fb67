// Package testutil provides shared test helpers for creating config files.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a config file keeping the saved words under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()
	return SetupTestConfigWithAPI(t, tmpDir, "http://localhost:7027/api")
}

// SetupTestConfigWithAPI is SetupTestConfig pointing the translation API at baseURL.
func SetupTestConfigWithAPI(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()

	configContent := fmt.Sprintf(`translation:
  base_url: %s
  target_language: vi
storage:
  backend: file
  file_path: %s
  sqlite_path: %s
relay:
  port: 7027
  url: http://localhost:7027
devserver:
  port: 5000
  root: %s
`,
		baseURL,
		StorageFilePath(tmpDir),
		filepath.Join(tmpDir, "storage.db"),
		tmpDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// StorageFilePath is where SetupTestConfig keeps the file backend.
func StorageFilePath(tmpDir string) string {
	return filepath.Join(tmpDir, "storage.json")
}

// SetupBrokenConfig creates a config file that fails to parse.
func SetupBrokenConfig(t *testing.T) string {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("translation: [unclosed"), 0644))
	return cfgPath
}
