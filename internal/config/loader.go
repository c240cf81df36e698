package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file, environment, and defaults.
// Uses the global viper instance to access CLI flag bindings.
func Load() (*Config, error) {
	v := viper.GetViper()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Environment variables (MIRAGE_*)
	v.SetEnvPrefix("MIRAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)

	// Cache defaults
	v.SetDefault("cache.directory", CacheDir())

	// Backend defaults
	v.SetDefault("backend.base_url", DefaultBackendBaseURL)
	v.SetDefault("backend.model", DefaultModel)
	v.SetDefault("backend.max_tokens", DefaultMaxTokens)
	v.SetDefault("backend.temperature", DefaultTemperature)
	v.SetDefault("backend.timeout", DefaultBackendTimeout)
	v.SetDefault("backend.retry.enabled", false)
	v.SetDefault("backend.retry.max_retries", 3)

	// Postprocess defaults
	v.SetDefault("postprocess.guard_assets", true)

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
