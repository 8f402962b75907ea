package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	DatabaseURL string `yaml:"database_url"` // empty selects the in-memory store
	TablePrefix string `yaml:"table_prefix"`
	CORSOrigins string `yaml:"cors_origins"`
	// Account service
	AccountServiceURL     string        `yaml:"account_service_url"`
	AccountServiceTimeout time.Duration `yaml:"account_service_timeout"`
	// Token verification. JWKSURL wins over JWTSecret when both are set.
	JWTSecret string `yaml:"jwt_secret"`
	JWKSURL   string `yaml:"jwks_url"`
	// Lifetime of the tokens this service mints for the account service
	ServiceTokenTTL time.Duration `yaml:"service_token_ttl"`
	// Logs also go to rotated files under LogDir when set
	LogDir      string `yaml:"log_dir"`
	LogMaxFiles int    `yaml:"log_max_files"`
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE, and environment variables, in increasing precedence.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.AccountServiceURL = getEnv("ACCOUNT_SERVICE_URL", cfg.AccountServiceURL)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWKSURL = getEnv("JWKS_URL", cfg.JWKSURL)
	cfg.LogDir = getEnv("LOG_DIR", cfg.LogDir)

	var err error
	if cfg.AccountServiceTimeout, err = getDuration("ACCOUNT_SERVICE_TIMEOUT", cfg.AccountServiceTimeout); err != nil {
		return nil, err
	}
	if cfg.ServiceTokenTTL, err = getDuration("SERVICE_TOKEN_TTL", cfg.ServiceTokenTTL); err != nil {
		return nil, err
	}

	if cfg.TablePrefix == "" || os.Getenv("TABLE_PREFIX") != "" {
		cfg.TablePrefix = getTablePrefix(cfg.Environment)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:                  "8080",
		Environment:           "dev",
		CORSOrigins:           "http://localhost:3000",
		AccountServiceURL:     "http://localhost:8081",
		AccountServiceTimeout: 30 * time.Second,
		ServiceTokenTTL:       5 * time.Minute,
		LogMaxFiles:           10,
	}
}

// mergeFile overlays non-zero values from a YAML file
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
