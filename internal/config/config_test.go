package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Translation: TranslationConfig{
			BaseURL:        "https://x142xfvk-7027.asse.devtunnels.ms/api",
			TargetLanguage: "vi",
		},
		Storage: StorageConfig{
			Backend:    "file",
			FilePath:   DefaultStorageFilePath(),
			SQLitePath: DefaultSQLitePath(),
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         3306,
			Database:     "local",
			Username:     "user",
			PingAttempts: 3,
		},
		Relay: RelayConfig{
			Port: 7027,
			URL:  "http://localhost:7027",
		},
		DevServer: DevServerConfig{
			Port: 5000,
			Root: ".",
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	instructions := filepath.Join(t.TempDir(), "instructions.md")
	require.NoError(t, os.WriteFile(instructions, []byte("# Hello"), 0644))
	templateDir := t.TempDir()

	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:          "no config file uses defaults",
			configContent: "",
			want:          defaultConfig,
		},
		{
			name: "custom values",
			configContent: `translation:
  base_url: http://localhost:7027/api
  target_language: ja
storage:
  backend: sqlite
  sqlite_path: custom/words.db
relay:
  port: 9000
devserver:
  port: 5050
  root: public
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Translation.BaseURL = "http://localhost:7027/api"
				cfg.Translation.TargetLanguage = "ja"
				cfg.Storage.Backend = "sqlite"
				cfg.Storage.SQLitePath = "custom/words.db"
				cfg.Relay.Port = 9000
				cfg.DevServer.Port = 5050
				cfg.DevServer.Root = "public"
				return cfg
			},
		},
		{
			name: "explicit config file path with existing files",
			configContent: `devserver:
  instructions_file: ` + instructions + `
popup:
  template_directory: ` + templateDir + `
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.DevServer.InstructionsFile = instructions
				cfg.Popup.TemplateDirectory = templateDir
				return cfg
			},
		},
		{
			name:          "environment variables override the file",
			configContent: "translation:\n  base_url: http://file.example.com\n",
			env: map[string]string{
				"TRANSLATOR_API_BASE_URL": "http://env.example.com/api",
				"DB_PASSWORD":             "secret",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Translation.BaseURL = "http://env.example.com/api"
				cfg.Database.Password = "secret"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `translation:
  base_url: http://localhost
  invalid yaml format here [[[
`,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name:              "unknown storage backend",
			configContent:     "storage:\n  backend: redis\n",
			wantErrorContains: []string{"invalid configuration", "backend"},
		},
		{
			name:              "invalid base url",
			configContent:     "translation:\n  base_url: not a url\n",
			wantErrorContains: []string{"invalid configuration", "base_url"},
		},
		{
			name:              "missing instructions file",
			configContent:     "devserver:\n  instructions_file: /nonexistent/instructions.md\n",
			wantErrorContains: []string{"devserver.instructions_file must be an existing and readable file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TRANSLATOR_API_BASE_URL", "")
			os.Unsetenv("TRANSLATOR_API_BASE_URL")
			t.Setenv("DB_PASSWORD", "")
			os.Unsetenv("DB_PASSWORD")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			tempDir := t.TempDir()
			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "custom.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if len(tt.wantErrorContains) > 0 {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
