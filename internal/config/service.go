// Package config loads the YAML service configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"conduit/internal/common/pagination"
	envconfig "conduit/pkg/config"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultDSNEnv     = "DATABASE_URL"
	DefaultSQLitePath = "conduit.db"
)

// ServiceConfig represents the service configuration.
type ServiceConfig struct {
	Database struct {
		Driver         string `yaml:"driver"`
		DSNEnv         string `yaml:"dsn_env"`
		SQLitePath     string `yaml:"sqlite_path"`
		CircuitBreaker *bool  `yaml:"circuit_breaker"`
	} `yaml:"database"`
	Pagination struct {
		DefaultPage  int `yaml:"default_page"`
		DefaultLimit int `yaml:"default_limit"`
		MaxLimit     int `yaml:"max_limit"`
	} `yaml:"pagination"`
}

// Default returns the configuration used when no file is given:
// postgres with the DSN in DATABASE_URL and the circuit breaker enabled.
func Default() *ServiceConfig {
	var c ServiceConfig
	c.applyDefaults()
	return &c
}

// LoadServiceConfig loads the service configuration from a YAML file.
// An empty path yields Default().
func LoadServiceConfig(path string) (*ServiceConfig, error) {
	if path == "" {
		return Default(), nil
	}

	// #nosec G304 -- path is provided by trusted source (CLI arg), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ServiceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.applyDefaults()

	if err := validateServiceConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

func (c *ServiceConfig) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.DSNEnv == "" {
		c.Database.DSNEnv = DefaultDSNEnv
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = DefaultSQLitePath
	}
}

func validateServiceConfig(config *ServiceConfig) error {
	switch config.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	p := config.Pagination
	if p.DefaultPage < 0 || p.DefaultLimit < 0 || p.MaxLimit < 0 {
		return fmt.Errorf("pagination values must not be negative")
	}
	if p.MaxLimit > 0 && p.DefaultLimit > p.MaxLimit {
		return fmt.Errorf("pagination default_limit %d exceeds max_limit %d", p.DefaultLimit, p.MaxLimit)
	}
	return nil
}

// DSN returns the postgres DSN from the configured environment variable.
func (c *ServiceConfig) DSN() string {
	return envconfig.GetEnvString(c.Database.DSNEnv, "")
}

// CircuitBreakerEnabled reports whether the database connection should be
// wrapped in a circuit breaker. DB_CIRCUIT_BREAKER_ENABLED overrides the file.
func (c *ServiceConfig) CircuitBreakerEnabled() bool {
	enabled := true
	if c.Database.CircuitBreaker != nil {
		enabled = *c.Database.CircuitBreaker
	}
	return envconfig.GetEnvBool("DB_CIRCUIT_BREAKER_ENABLED", enabled)
}

// PaginationConfig returns the pagination defaults. Values left unset in the
// file fall back to pagination.LoadFromEnv.
func (c *ServiceConfig) PaginationConfig() pagination.Config {
	cfg := pagination.LoadFromEnv()
	if c.Pagination.DefaultPage > 0 {
		cfg.DefaultPage = c.Pagination.DefaultPage
	}
	if c.Pagination.DefaultLimit > 0 {
		cfg.DefaultLimit = c.Pagination.DefaultLimit
	}
	if c.Pagination.MaxLimit > 0 {
		cfg.MaxLimit = c.Pagination.MaxLimit
	}
	return cfg
}
