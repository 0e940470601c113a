package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	StaticData StaticDataConfig `yaml:"static_data"`
	Notify     NotifyConfig     `yaml:"notify"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port"`
	// AdminToken, when set, gates every mutating endpoint except the public
	// contact form behind a bearer token. Empty keeps the API open.
	AdminToken  string   `yaml:"admin_token"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// DatabaseConfig configures SQLite storage.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// StaticDataConfig selects where the read-only site catalog comes from:
// "live" queries the store at startup, "snapshot" reads a frozen file.
// Refresh, when set in live mode, rebuilds the catalog on that interval.
type StaticDataConfig struct {
	Mode    string `yaml:"mode"`
	Path    string `yaml:"path"`
	Refresh string `yaml:"refresh"` // duration string, e.g. "15m"; empty disables
}

// ParseRefresh returns the refresh interval as time.Duration, zero when
// unset or invalid.
func (s StaticDataConfig) ParseRefresh() time.Duration {
	d, err := time.ParseDuration(s.Refresh)
	if err != nil {
		return 0
	}
	return d
}

// NotifyConfig configures contact form notification destinations. Any
// destination left empty is skipped.
type NotifyConfig struct {
	SlackWebhook   string `yaml:"slack_webhook"`
	DiscordWebhook string `yaml:"discord_webhook"`
	WebhookURL     string `yaml:"webhook_url"`
	WebhookSecret  string `yaml:"webhook_secret"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			CORSOrigins: []string{"*"},
		},
		Database:   DatabaseConfig{Path: "./bigback.db"},
		StaticData: StaticDataConfig{Mode: "live", Path: "./static-data.json"},
		Logging:    LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BIGBACK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BIGBACK_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("BIGBACK_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("BIGBACK_STATIC_MODE"); v != "" {
		cfg.StaticData.Mode = v
	}
	if v := os.Getenv("BIGBACK_STATIC_PATH"); v != "" {
		cfg.StaticData.Path = v
	}
	if v := os.Getenv("BIGBACK_STATIC_REFRESH"); v != "" {
		cfg.StaticData.Refresh = v
	}
	if v := os.Getenv("BIGBACK_SLACK_WEBHOOK"); v != "" {
		cfg.Notify.SlackWebhook = v
	}
	if v := os.Getenv("BIGBACK_DISCORD_WEBHOOK"); v != "" {
		cfg.Notify.DiscordWebhook = v
	}
	if v := os.Getenv("BIGBACK_WEBHOOK_URL"); v != "" {
		cfg.Notify.WebhookURL = v
	}
	if v := os.Getenv("BIGBACK_WEBHOOK_SECRET"); v != "" {
		cfg.Notify.WebhookSecret = v
	}
	if v := os.Getenv("BIGBACK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("BIGBACK_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
