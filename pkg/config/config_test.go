package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:  AppConfig{Name: "mcflow-solver", Environment: "development"},
		HTTP: HTTPConfig{Port: 8080},
		Log:  LogConfig{Level: "info"},
		Solver: SolverConfig{
			DefaultPivotRule: "block_search",
		},
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing_app_name", func(c *Config) { c.App.Name = "" }},
		{"bad_http_port", func(c *Config) { c.HTTP.Port = 0 }},
		{"http_port_too_large", func(c *Config) { c.HTTP.Port = 70000 }},
		{"bad_log_level", func(c *Config) { c.Log.Level = "verbose" }},
		{"bad_cache_driver", func(c *Config) { c.Cache.Driver = "memcached" }},
		{"bad_pivot_rule", func(c *Config) { c.Solver.DefaultPivotRule = "steepest_edge" }},
		{"negative_max_nodes", func(c *Config) { c.Solver.MaxNodes = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigValidateDefaultsEmptyLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := validConfig()
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Environment = "production"
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}

func TestCacheAddress(t *testing.T) {
	c := CacheConfig{Host: "redis.internal", Port: 6380}
	assert.Equal(t, "redis.internal:6380", c.Address())
}
