package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %s; want 8080", cfg.Server.Port)
	}
	if !cfg.Shortener.Enabled {
		t.Error("shortener should be enabled by default")
	}
	if cfg.Shortener.CodeLength != 4 {
		t.Errorf("default code length = %d; want 4", cfg.Shortener.CodeLength)
	}
	if cfg.Shortener.Domain != "http://localhost:8080" {
		t.Errorf("default domain = %s; want http://localhost:8080", cfg.Shortener.Domain)
	}
	if cfg.Shortener.StorageFile != "url_mappings.json" {
		t.Errorf("default storage file = %s", cfg.Shortener.StorageFile)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SHORTENER_ENABLED", "false")
	t.Setenv("SHORTENER_DOMAIN", "https://s.example.com")
	t.Setenv("CODE_LENGTH", "6")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %s; want 9090", cfg.Server.Port)
	}
	if cfg.Shortener.Enabled {
		t.Error("shortener should be disabled")
	}
	if cfg.Shortener.Domain != "https://s.example.com" {
		t.Errorf("domain = %s; want https://s.example.com", cfg.Shortener.Domain)
	}
	if cfg.Shortener.CodeLength != 6 {
		t.Errorf("code length = %d; want 6", cfg.Shortener.CodeLength)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = "http" }, true},
		{"port out of range", func(c *Config) { c.Server.Port = "70000" }, true},
		{"empty storage file", func(c *Config) { c.Shortener.StorageFile = "" }, true},
		{"zero code length", func(c *Config) { c.Shortener.CodeLength = 0 }, true},
		{"oversized code length", func(c *Config) { c.Shortener.CodeLength = 32 }, true},
		{"zero max attempts", func(c *Config) { c.Shortener.MaxAttempts = 0 }, true},
		{"bad environment", func(c *Config) { c.App.Environment = "staging" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}
