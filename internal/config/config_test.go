package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:               "8082",
		SessionTTL:         time.Hour,
		MaxSessions:        100,
		CleanupInterval:    time.Minute,
		CacheSize:          500,
		CacheTTL:           5 * time.Minute,
		RateLimitPerMinute: 60,
		MaxPayloadBytes:    32 << 20,
		LogLevel:           "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "session TTL too short",
			mutate:      func(c *Config) { c.SessionTTL = 30 * time.Second },
			wantErr:     true,
			errorString: "invalid session TTL 30s: must be at least 1 minute",
		},
		{
			name:        "max sessions too small",
			mutate:      func(c *Config) { c.MaxSessions = 0 },
			wantErr:     true,
			errorString: "invalid max sessions 0: must be at least 1",
		},
		{
			name:        "cleanup interval too short",
			mutate:      func(c *Config) { c.CleanupInterval = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid cleanup interval 100ms: must be at least 1 second",
		},
		{
			name:        "view cache size too small",
			mutate:      func(c *Config) { c.CacheSize = 0 },
			wantErr:     true,
			errorString: "invalid view cache size 0: must be at least 1",
		},
		{
			name:        "rate limit too small",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr:     true,
			errorString: "invalid rate limit 0",
		},
		{
			name:        "payload limit too small",
			mutate:      func(c *Config) { c.MaxPayloadBytes = 100 },
			wantErr:     true,
			errorString: "invalid max payload size 100",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	keys := []string{
		"PORT", "SESSION_TTL", "MAX_SESSIONS", "CLEANUP_INTERVAL",
		"VIEW_CACHE_SIZE", "VIEW_CACHE_TTL", "RATE_LIMIT_PER_MINUTE",
		"MAX_PAYLOAD_BYTES", "LOG_LEVEL",
	}
	originalVars := make(map[string]string, len(keys))
	for _, key := range keys {
		originalVars[key] = os.Getenv(key)
		os.Unsetenv(key)
	}
	defer func() {
		for key, value := range originalVars {
			if value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8082" {
			t.Errorf("Load() Port = %v, want 8082", cfg.Port)
		}
		if cfg.SessionTTL != 2*time.Hour {
			t.Errorf("Load() SessionTTL = %v, want 2h", cfg.SessionTTL)
		}
		if cfg.MaxSessions != 100 {
			t.Errorf("Load() MaxSessions = %v, want 100", cfg.MaxSessions)
		}
		if cfg.RateLimitPerMinute != 60 {
			t.Errorf("Load() RateLimitPerMinute = %v, want 60", cfg.RateLimitPerMinute)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("Load() LogLevel = %v, want info", cfg.LogLevel)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("default config should validate, got %v", err)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		os.Setenv("PORT", "9090")
		os.Setenv("SESSION_TTL", "30m")
		os.Setenv("MAX_SESSIONS", "25")
		os.Setenv("VIEW_CACHE_TTL", "90s")
		os.Setenv("LOG_LEVEL", "debug")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.SessionTTL != 30*time.Minute {
			t.Errorf("Load() SessionTTL = %v, want 30m", cfg.SessionTTL)
		}
		if cfg.MaxSessions != 25 {
			t.Errorf("Load() MaxSessions = %v, want 25", cfg.MaxSessions)
		}
		if cfg.CacheTTL != 90*time.Second {
			t.Errorf("Load() CacheTTL = %v, want 90s", cfg.CacheTTL)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Load() LogLevel = %v, want debug", cfg.LogLevel)
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		os.Setenv("MAX_SESSIONS", "invalid")
		os.Setenv("SESSION_TTL", "invalid")

		cfg := Load()

		if cfg.MaxSessions != 100 {
			t.Errorf("Load() MaxSessions = %v, want 100 (default for invalid input)", cfg.MaxSessions)
		}
		if cfg.SessionTTL != 2*time.Hour {
			t.Errorf("Load() SessionTTL = %v, want 2h (default for invalid input)", cfg.SessionTTL)
		}
	})
}
