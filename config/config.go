package config

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/David-Van-Dyne/pickup-scheduler/errors"
)

// DefaultAdminPassword is the fallback shared secret; deployments must override it.
const DefaultAdminPassword = "changeme"

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Admin     AdminConfig     `split_words:"true"`
	Storage   StorageConfig   `split_words:"true"`
	Session   SessionConfig   `split_words:"true"`
	Scheduler SchedulerConfig `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// AdminConfig contains the shared admin credential
type AdminConfig struct {
	Password string `envconfig:"ADMIN_PASSWORD" default:"changeme"`
}

// StorageConfig contains settings for the JSON file store
type StorageConfig struct {
	DataDir string `envconfig:"DATA_DIR" default:"data"`
}

// SessionConfig contains admin session settings
type SessionConfig struct {
	TTLHours int `envconfig:"SESSION_TTL_HOURS" default:"24"`
}

// SchedulerConfig contains settings for the background task scheduler
type SchedulerConfig struct {
	SweepInterval int `envconfig:"SESSION_SWEEP_INTERVAL" default:"60"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Admin.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Session.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	return nil
}

// IsDefaultPassword reports whether the deployment still runs on the shipped password
func (a *AdminConfig) IsDefaultPassword() bool {
	return a.Password == DefaultAdminPassword
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks admin configuration
func (a *AdminConfig) Validate() error {
	if a.Password == "" {
		return errors.NewConfigurationError("ADMIN_PASSWORD cannot be empty", nil)
	}
	return nil
}

// Validate checks storage configuration
func (s *StorageConfig) Validate() error {
	if s.DataDir == "" {
		return errors.NewConfigurationError("DATA_DIR cannot be empty", nil)
	}
	return nil
}

// Validate checks session configuration
func (s *SessionConfig) Validate() error {
	if s.TTLHours < 1 {
		return errors.NewConfigurationError("SESSION_TTL_HOURS must be at least 1 hour", nil)
	}
	if s.TTLHours > 168 {
		return errors.NewConfigurationError("SESSION_TTL_HOURS cannot exceed 168 hours (7 days)", nil)
	}
	return nil
}

// Validate checks scheduler configuration
func (s *SchedulerConfig) Validate() error {
	if s.SweepInterval < 1 {
		return errors.NewConfigurationError("SESSION_SWEEP_INTERVAL must be at least 1 minute", nil)
	}
	if s.SweepInterval > 1440 {
		return errors.NewConfigurationError("SESSION_SWEEP_INTERVAL cannot exceed 1440 minutes (24 hours)", nil)
	}
	return nil
}
