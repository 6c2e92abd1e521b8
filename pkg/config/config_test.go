package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Redis.Enabled {
		t.Error("Expected Redis to be disabled by default")
	}

	if cfg.Redis.Prefix != "yieldpilot" {
		t.Errorf("Expected Redis prefix yieldpilot, got %s", cfg.Redis.Prefix)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("STRATEGY_PATH", "/etc/yieldpilot/strategy.yaml")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected LogLevel warn, got %s", cfg.LogLevel)
	}
	if cfg.StrategyPath != "/etc/yieldpilot/strategy.yaml" {
		t.Errorf("Unexpected StrategyPath %s", cfg.StrategyPath)
	}
	if !cfg.Redis.Enabled || cfg.Redis.DB != 3 {
		t.Errorf("Unexpected redis config %+v", cfg.Redis)
	}
	if cfg.Redis.Addr() != "localhost:6380" {
		t.Errorf("Expected addr localhost:6380, got %s", cfg.Redis.Addr())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Env: "staging", LogFormat: "json"}, false},
		{"bad env", Config{Env: "test", LogFormat: "json"}, true},
		{"bad format", Config{Env: "development", LogFormat: "xml"}, true},
		{"redis without prefix", Config{Env: "development", LogFormat: "json", Redis: RedisConfig{Enabled: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetEnvAsInt_Invalid(t *testing.T) {
	os.Setenv("YP_TEST_INT", "abc")
	defer os.Unsetenv("YP_TEST_INT")

	if got := getEnvAsInt("YP_TEST_INT", 7); got != 7 {
		t.Errorf("Expected fallback 7, got %d", got)
	}
}
