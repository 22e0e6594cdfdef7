// Package config loads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingJWTSecret is returned when JWT_SECRET is unset.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Config holds the server settings.
type Config struct {
	Port          int           `mapstructure:"port"`
	DBPath        string        `mapstructure:"db_path"`
	DatabaseURL   string        `mapstructure:"database_url"`
	RedisURL      string        `mapstructure:"redis_url"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenDuration time.Duration `mapstructure:"token_duration"`
	LockTimeout   time.Duration `mapstructure:"lock_timeout"`
	LockTTL       time.Duration `mapstructure:"lock_ttl"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFormat     string        `mapstructure:"log_format"`
}

// Load reads envFile into the process environment when it exists, then
// resolves every setting from the environment with defaults. Variables
// already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key, which also lets AutomaticEnv pick them up
// during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "./data/friendsmeet.db")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_duration", 24*time.Hour)
	v.SetDefault("lock_timeout", 10*time.Second)
	v.SetDefault("lock_ttl", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

func validate(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.TokenDuration <= 0 || cfg.LockTimeout <= 0 || cfg.LockTTL <= 0 {
		return errors.New("durations must be positive")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.LogFormat)
	}

	return nil
}

// UsePostgres reports whether DATABASE_URL selects the PostgreSQL store.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// UseRedis reports whether REDIS_URL selects the Redis lock.
func (c *Config) UseRedis() bool {
	return c.RedisURL != ""
}
