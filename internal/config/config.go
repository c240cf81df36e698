package config

import "time"

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	Cache       CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Backend     BackendConfig     `mapstructure:"backend" yaml:"backend"`
	Postprocess PostprocessConfig `mapstructure:"postprocess" yaml:"postprocess"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// CacheConfig contains document store settings
type CacheConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// BackendConfig contains generative backend settings
type BackendConfig struct {
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url"`
	APIKey      string        `mapstructure:"api_key" yaml:"api_key"`
	Model       string        `mapstructure:"model" yaml:"model"`
	MaxTokens   int           `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature float64       `mapstructure:"temperature" yaml:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Retry       RetryConfig   `mapstructure:"retry" yaml:"retry"`
}

// RetryConfig contains transport-level retry settings for backend calls
type RetryConfig struct {
	Enabled         bool          `mapstructure:"enabled" yaml:"enabled"`
	MaxRetries      int           `mapstructure:"max_retries" yaml:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval" yaml:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval" yaml:"max_interval"`
	Multiplier      float64       `mapstructure:"multiplier" yaml:"multiplier"`
}

// PostprocessConfig contains document post-processing settings
type PostprocessConfig struct {
	GuardAssets bool `mapstructure:"guard_assets" yaml:"guard_assets"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and fills invalid values with defaults
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Backend.Model == "" {
		c.Backend.Model = DefaultModel
	}
	if c.Backend.Timeout < time.Second {
		c.Backend.Timeout = DefaultBackendTimeout
	}
	if c.Backend.MaxTokens < 0 {
		c.Backend.MaxTokens = DefaultMaxTokens
	}
	return nil
}
