package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Auth      AuthConfig      `yaml:"auth"`
	Timing    TimingConfig    `yaml:"timing"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	MCP       MCPConfig       `yaml:"mcp"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type AuthConfig struct {
	// APIKey guards mutating routes when set. Empty leaves them open,
	// e.g. behind tsnet.
	APIKey string `yaml:"api_key"`
}

// TimingConfig holds tick periods. Zero values mean the built-in defaults.
type TimingConfig struct {
	CountdownInterval time.Duration `yaml:"countdown_interval"`
	PositionPeriod    time.Duration `yaml:"position_period"`
	SizePeriod        time.Duration `yaml:"size_period"`
	AnglePeriod       time.Duration `yaml:"angle_period"`
}

type CatalogConfig struct {
	Path string `yaml:"path"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Addr returns the plain HTTP listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SlogLevel maps the configured level name to a slog level. Unknown or
// empty names mean info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix EYEREST_ and underscore-separated paths:
//
//	EYEREST_SERVER_HOST, EYEREST_SERVER_PORT, EYEREST_SERVER_STATIC_DIR,
//	EYEREST_TAILSCALE_ENABLED, EYEREST_TAILSCALE_HOSTNAME,
//	EYEREST_TAILSCALE_STATE_DIR, EYEREST_AUTH_API_KEY,
//	EYEREST_COUNTDOWN_INTERVAL, EYEREST_POSITION_PERIOD,
//	EYEREST_SIZE_PERIOD, EYEREST_ANGLE_PERIOD,
//	EYEREST_CATALOG_PATH, EYEREST_MCP_ENABLED, EYEREST_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("EYEREST_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("EYEREST_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("EYEREST_SERVER_STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := os.Getenv("EYEREST_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	if v := os.Getenv("EYEREST_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("EYEREST_TAILSCALE_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("EYEREST_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("EYEREST_COUNTDOWN_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timing.CountdownInterval = d
		}
	}
	for key, dst := range map[string]*time.Duration{
		"EYEREST_POSITION_PERIOD": &cfg.Timing.PositionPeriod,
		"EYEREST_SIZE_PERIOD":     &cfg.Timing.SizePeriod,
		"EYEREST_ANGLE_PERIOD":    &cfg.Timing.AnglePeriod,
	} {
		if v := os.Getenv(key); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}
	if v := os.Getenv("EYEREST_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("EYEREST_MCP_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MCP.Enabled = b
		}
	}
	if v := os.Getenv("EYEREST_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	t := c.Timing
	for name, d := range map[string]time.Duration{
		"timing.countdown_interval": t.CountdownInterval,
		"timing.position_period":    t.PositionPeriod,
		"timing.size_period":        t.SizePeriod,
		"timing.angle_period":       t.AnglePeriod,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}
