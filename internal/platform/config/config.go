package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	errInvalidPort      = errors.New("config: invalid PORT number")
	errInvalidLogFormat = errors.New("config: LOG_FORMAT must be json or text")
	errInvalidDuration  = errors.New("config: timeouts must be positive")
	errInvalidBodyLimit = errors.New("config: MAX_BODY_BYTES must be positive")
)

// Config holds all application configuration. Values come from an optional
// YAML file, then environment variables, then defaults.
type Config struct {
	Port                 string        `yaml:"port"`
	LogLevel             string        `yaml:"log_level"`
	LogFormat            string        `yaml:"log_format"`
	FetchTimeout         time.Duration `yaml:"fetch_timeout"`
	AnalyzeTimeout       time.Duration `yaml:"analyze_timeout"`
	ShutdownTimeout      time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes         int64         `yaml:"max_body_bytes"`
	UserAgent            string        `yaml:"user_agent"`
	AllowPrivateNetworks bool          `yaml:"allow_private_networks"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:            "8080",
		LogLevel:        "ERROR",
		LogFormat:       "json",
		FetchTimeout:    10 * time.Second,
		AnalyzeTimeout:  60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxBodyBytes:    10 << 20,
		UserAgent:       "Mozilla/5.0 (compatible; SEOAuditBot/1.0)",
	}
}

// Load reads configuration from environment variables with sensible
// defaults. If path is empty, CONFIG_FILE is consulted for a YAML file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", cfg.LogFormat))
	cfg.FetchTimeout = getEnvAsDuration("FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.AnalyzeTimeout = getEnvAsDuration("ANALYZE_TIMEOUT", cfg.AnalyzeTimeout)
	cfg.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.MaxBodyBytes = getEnvAsInt64("MAX_BODY_BYTES", cfg.MaxBodyBytes)
	cfg.UserAgent = getEnv("USER_AGENT", cfg.UserAgent)
	cfg.AllowPrivateNetworks = getEnvAsBool("ALLOW_PRIVATE_NETWORKS", cfg.AllowPrivateNetworks)

	return cfg, cfg.validate()
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("%w: got %q", errInvalidLogFormat, c.LogFormat)
	}

	if c.FetchTimeout <= 0 || c.AnalyzeTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return errInvalidDuration
	}

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: got %d", errInvalidBodyLimit, c.MaxBodyBytes)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}
