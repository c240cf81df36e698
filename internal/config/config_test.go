package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfig_Validate tests configuration validation
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		check  func(*testing.T, *Config)
	}{
		{
			name: "valid config untouched",
			modify: func(c *Config) {
				c.Server.Addr = ":9090"
				c.Server.ShutdownTimeout = 5 * time.Second
				c.Backend.Model = "mistral"
				c.Backend.Timeout = 60 * time.Second
				c.Backend.MaxTokens = 2048
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, ":9090", c.Server.Addr)
				assert.Equal(t, 5*time.Second, c.Server.ShutdownTimeout)
				assert.Equal(t, "mistral", c.Backend.Model)
				assert.Equal(t, 60*time.Second, c.Backend.Timeout)
				assert.Equal(t, 2048, c.Backend.MaxTokens)
			},
		},
		{
			name:   "empty addr defaults",
			modify: func(c *Config) {},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultAddr, c.Server.Addr)
			},
		},
		{
			name: "shutdown timeout below minimum defaults",
			modify: func(c *Config) {
				c.Server.ShutdownTimeout = -1 * time.Second
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultShutdownTimeout, c.Server.ShutdownTimeout)
			},
		},
		{
			name:   "empty model defaults",
			modify: func(c *Config) {},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultModel, c.Backend.Model)
			},
		},
		{
			name: "backend timeout below minimum defaults",
			modify: func(c *Config) {
				c.Backend.Timeout = 100 * time.Millisecond
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultBackendTimeout, c.Backend.Timeout)
			},
		},
		{
			name: "negative max tokens defaults",
			modify: func(c *Config) {
				c.Backend.MaxTokens = -5
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultMaxTokens, c.Backend.MaxTokens)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			tt.modify(cfg)
			require.NoError(t, cfg.Validate())
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

// TestDirectories tests the derived filesystem locations
func TestDirectories(t *testing.T) {
	cfgDir := ConfigDir()
	assert.NotEmpty(t, cfgDir)
	assert.Contains(t, CacheDir(), cfgDir)
}
