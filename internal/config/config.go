package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Storage  StorageConfig
	Vocab    VocabConfig
	Log      LogConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// StorageConfig selects where progress is persisted.
type StorageConfig struct {
	Backend  string `validate:"oneof=sqlite file memory"`
	FilePath string `mapstructure:"file_path"`
}

// VocabConfig locates the word list asset.
type VocabConfig struct {
	Source  string
	Timeout time.Duration `validate:"gte=0"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Path  string
	Level string `validate:"oneof=debug info warn error"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Language string `validate:"oneof=zh en"`
}

var validate = validator.New()

// Validate rejects values the application cannot run with.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Storage.Backend == "sqlite" && strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("invalid config: database.path is required for the sqlite backend")
	}
	if c.Storage.Backend == "file" && strings.TrimSpace(c.Storage.FilePath) == "" {
		return fmt.Errorf("invalid config: storage.file_path is required for the file backend")
	}
	return nil
}

// Load reads configuration from file and env. Env var overrides use prefix CCLVOCAB_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	// default values
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "cclvocab", "cclvocab.db"))
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.file_path", filepath.Join(home, ".local", "share", "cclvocab", "progress.json"))
	v.SetDefault("vocab.source", "")
	v.SetDefault("vocab.timeout", "10s")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "cclvocab", "cclvocab.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.language", "zh")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CCLVOCAB_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "cclvocab"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CCLVOCAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Path returns where Save writes the config file.
func Path() string {
	if path := os.Getenv("CCLVOCAB_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "cclvocab", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if needed.
// The TUI uses it to remember the label language.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.file_path", cfg.Storage.FilePath)
	v.Set("vocab.source", cfg.Vocab.Source)
	v.Set("vocab.timeout", cfg.Vocab.Timeout.String())
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.language", cfg.UI.Language)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
