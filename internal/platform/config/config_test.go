package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seoaudit.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "LOG_LEVEL", "LOG_FORMAT", "FETCH_TIMEOUT", "ANALYZE_TIMEOUT",
		"SHUTDOWN_TIMEOUT", "MAX_BODY_BYTES", "USER_AGENT", "ALLOW_PRIVATE_NETWORKS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, Default())
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %q, want :8080", cfg.Addr())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("MAX_BODY_BYTES", "1024")
	t.Setenv("ALLOW_PRIVATE_NETWORKS", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.LogLevel != "DEBUG" || cfg.LogFormat != "text" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("FetchTimeout = %v, want 3s", cfg.FetchTimeout)
	}
	if cfg.MaxBodyBytes != 1024 {
		t.Errorf("MaxBodyBytes = %d, want 1024", cfg.MaxBodyBytes)
	}
	if !cfg.AllowPrivateNetworks {
		t.Error("AllowPrivateNetworks = false, want true")
	}
}

func TestLoad_UnparsableEnvFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("FETCH_TIMEOUT", "soon")
	t.Setenv("MAX_BODY_BYTES", "lots")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FetchTimeout != Default().FetchTimeout || cfg.MaxBodyBytes != Default().MaxBodyBytes {
		t.Errorf("cfg = %+v, want defaults for unparsable values", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
port: "7000"
log_format: text
fetch_timeout: 2s
user_agent: TestBot/1.0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7000" || cfg.LogFormat != "text" || cfg.UserAgent != "TestBot/1.0" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.FetchTimeout != 2*time.Second {
		t.Errorf("FetchTimeout = %v, want 2s", cfg.FetchTimeout)
	}
	if cfg.AnalyzeTimeout != Default().AnalyzeTimeout {
		t.Errorf("AnalyzeTimeout = %v, want default", cfg.AnalyzeTimeout)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "port: \"7000\"\n")
	t.Setenv("PORT", "7001")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7001" {
		t.Errorf("Port = %q, want env value 7001", cfg.Port)
	}
}

func TestLoad_FileFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "log_level: WARN\n")
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "WARN" {
		t.Errorf("LogLevel = %q, want WARN", cfg.LogLevel)
	}
}

func TestLoad_FileErrors(t *testing.T) {
	clearEnv(t)
	t.Run("missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("err = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		if _, err := Load(writeFile(t, "prot: \"80\"\n")); err == nil {
			t.Error("expected error for unknown key")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		if _, err := Load(writeFile(t, "")); err != nil {
			t.Errorf("unexpected error for empty file: %v", err)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port not a number", mutate: func(c *Config) { c.Port = "http" }, wantErr: errInvalidPort},
		{name: "port out of range", mutate: func(c *Config) { c.Port = "70000" }, wantErr: errInvalidPort},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: errInvalidLogFormat},
		{name: "zero timeout", mutate: func(c *Config) { c.FetchTimeout = 0 }, wantErr: errInvalidDuration},
		{name: "zero body limit", mutate: func(c *Config) { c.MaxBodyBytes = 0 }, wantErr: errInvalidBodyLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
