package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment variable the CLI reads.
const EnvPrefix = "STELLARFORGE"

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name" validate:"required"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`

	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int64         `mapstructure:"timeout_seconds" validate:"gt=0"`
	Timeout        time.Duration `mapstructure:"-"`

	MockIDMode           string `mapstructure:"mock_id_mode" validate:"oneof=fixed uuid"`
	MockCheckDeclination bool   `mapstructure:"mock_check_declination"`

	PublishersFile string `mapstructure:"publishers_file"`

	StorageType            string        `mapstructure:"storage_type" validate:"oneof=none disabled bbolt sqlite"`
	BBoltPath              string        `mapstructure:"bbolt_path" validate:"required_if=StorageType bbolt"`
	SQLitePath             string        `mapstructure:"sqlite_path" validate:"required_if=StorageType sqlite"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds" validate:"gt=0"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds" validate:"gt=0"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

// load applies defaults, environment overrides and validation to v.
func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "stellarforge")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", "https://api.stellarforge.io")
	v.SetDefault("timeout_seconds", 10)
	v.SetDefault("mock_id_mode", "uuid")
	v.SetDefault("mock_check_declination", false)
	v.SetDefault("publishers_file", "")
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/stars.db")
	v.SetDefault("sqlite_path", "./data/stars.sqlite")
	v.SetDefault("storage_ttl_seconds", int64((365*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((24*time.Hour)/time.Second))

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.MockIDMode = strings.ToLower(strings.TrimSpace(cfg.MockIDMode))
	cfg.StorageType = strings.ToLower(strings.TrimSpace(cfg.StorageType))

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}

// StoragePath returns the file backing the configured storage type.
func (c *Config) StoragePath() string {
	switch c.StorageType {
	case "bbolt":
		return c.BBoltPath
	case "sqlite":
		return c.SQLitePath
	default:
		return ""
	}
}
