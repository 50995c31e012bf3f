package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const minJWTSecretLen = 32

var (
	ErrWeakJWTSecret   = errors.New("JWT_SECRET is required and must be at least 32 chars")
	ErrMissingAdmin    = errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	ErrBadLoginLimit   = errors.New("LOGIN_LIMIT_PER_MIN must be positive")
	ErrBadTokenTTL     = errors.New("TOKEN_TTL must be positive")
	ErrMetricsNoSecret = errors.New("METRICS_TOKEN is required when METRICS_ENABLED is set")
)

type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Auth    AuthConfig
	Metrics MetricsConfig
	Catalog CatalogConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level string
}

type AuthConfig struct {
	JWTSecret        string
	TokenTTL         time.Duration
	AdminEmail       string
	AdminPassword    string
	LoginLimitPerMin int
}

type MetricsConfig struct {
	Enabled bool
	Token   string
}

type CatalogConfig struct {
	Seed bool
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	v.SetDefault("PORT", "8082")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "15m")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("LOGIN_LIMIT_PER_MIN", 5)
	v.SetDefault("METRICS_ENABLED", false)
	v.SetDefault("METRICS_TOKEN", "")
	v.SetDefault("CATALOG_SEED", true)

	shutdownTimeout, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing SHUTDOWN_TIMEOUT: %w", err)
	}
	tokenTTL, err := time.ParseDuration(v.GetString("TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("parsing TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			ShutdownTimeout: shutdownTimeout,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Auth: AuthConfig{
			JWTSecret:        v.GetString("JWT_SECRET"),
			TokenTTL:         tokenTTL,
			AdminEmail:       v.GetString("ADMIN_EMAIL"),
			AdminPassword:    v.GetString("ADMIN_PASSWORD"),
			LoginLimitPerMin: v.GetInt("LOGIN_LIMIT_PER_MIN"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Token:   v.GetString("METRICS_TOKEN"),
		},
		Catalog: CatalogConfig{
			Seed: v.GetBool("CATALOG_SEED"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case len(c.Auth.JWTSecret) < minJWTSecretLen:
		return ErrWeakJWTSecret
	case c.Auth.AdminEmail == "" || c.Auth.AdminPassword == "":
		return ErrMissingAdmin
	case c.Auth.LoginLimitPerMin <= 0:
		return ErrBadLoginLimit
	case c.Auth.TokenTTL <= 0:
		return ErrBadTokenTTL
	case c.Metrics.Enabled && c.Metrics.Token == "":
		return ErrMetricsNoSecret
	}
	return nil
}
