package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const appName = "smarttranslator"

type Config struct {
	Translation TranslationConfig `mapstructure:"translation"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Relay       RelayConfig       `mapstructure:"relay"`
	DevServer   DevServerConfig   `mapstructure:"devserver"`
	Popup       PopupConfig       `mapstructure:"popup"`
}

type TranslationConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	TargetLanguage string `mapstructure:"target_language" validate:"required"`
	SourceLanguage string `mapstructure:"source_language"`
}

type StorageConfig struct {
	Backend    string `mapstructure:"backend" validate:"oneof=file sqlite mysql memory"`
	FilePath   string `mapstructure:"file_path"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	PingAttempts    uint              `mapstructure:"ping_attempts"`
}

type RelayConfig struct {
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`
	URL  string `mapstructure:"url" validate:"omitempty,url"`
}

type DevServerConfig struct {
	Port             int    `mapstructure:"port" validate:"min=1,max=65535"`
	Root             string `mapstructure:"root"`
	InstructionsFile string `mapstructure:"instructions_file" validate:"omitempty,file"`
}

type PopupConfig struct {
	TemplateDirectory string `mapstructure:"template_directory" validate:"omitempty,dir"`
}

// DefaultStorageFilePath is where the file backend keeps its JSON document.
func DefaultStorageFilePath() string {
	return filepath.Join(xdg.DataHome, appName, "storage.json")
}

// DefaultSQLitePath is where the sqlite backend keeps its database.
func DefaultSQLitePath() string {
	return filepath.Join(xdg.DataHome, appName, "storage.db")
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, appName))
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("translation.base_url", "https://x142xfvk-7027.asse.devtunnels.ms/api")
	v.SetDefault("translation.target_language", "vi")
	v.SetDefault("translation.source_language", "")
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.file_path", DefaultStorageFilePath())
	v.SetDefault("storage.sqlite_path", DefaultSQLitePath())
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.ping_attempts", 3)
	v.SetDefault("relay.port", 7027)
	v.SetDefault("relay.url", "http://localhost:7027")
	v.SetDefault("devserver.port", 5000)
	v.SetDefault("devserver.root", ".")
	v.SetDefault("devserver.instructions_file", "")
	// Templates are optional; the embedded copies are used when unset
	v.SetDefault("popup.template_directory", "")

	if err := v.BindEnv("translation.base_url", "TRANSLATOR_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind TRANSLATOR_API_BASE_URL environment variable: %w", err)
	}
	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// Load is a shorthand for NewConfigLoader(configFile).Load().
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}
