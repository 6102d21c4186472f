package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Fallback FallbackConfig `koanf:"fallback"`
	Stats    StatsConfig    `koanf:"stats"`
}

type ServerConfig struct {
	Port            int    `koanf:"port"`
	LogLevel        string `koanf:"log_level"`
	ReadTimeout     string `koanf:"read_timeout"`
	WriteTimeout    string `koanf:"write_timeout"`
	IdleTimeout     string `koanf:"idle_timeout"`
	ShutdownTimeout string `koanf:"shutdown_timeout"`
}

// FallbackConfig configures the optional external text-generation
// fallback. An empty API key (after env injection) disables it; the
// service runs fully without it.
type FallbackConfig struct {
	Provider    string  `koanf:"provider"`
	APIKey      string  `koanf:"api_key"`
	BaseURL     string  `koanf:"base_url"`
	Model       string  `koanf:"model"`
	Timeout     string  `koanf:"timeout"`
	MaxTokens   int     `koanf:"max_tokens"`
	Temperature float64 `koanf:"temperature"`
}

type StatsConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Interval string `koanf:"interval"`
}

const (
	DefaultServerPort            = 8080
	DefaultServerLogLevel        = "info"
	DefaultServerReadTimeout     = "10s"
	DefaultServerWriteTimeout    = "10s"
	DefaultServerIdleTimeout     = "60s"
	DefaultServerShutdownTimeout = "5s"
	DefaultFallbackProvider      = "openai"
	DefaultFallbackTimeout       = "10s"
	DefaultFallbackMaxTokens     = 150
	DefaultFallbackTemperature   = 0.2
	DefaultStatsEnabled          = true
	DefaultStatsInterval         = "@every 1m"
)

func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	// Hardcoded Defaults
	defaults := map[string]interface{}{
		"server.port":             DefaultServerPort,
		"server.log_level":        DefaultServerLogLevel,
		"server.read_timeout":     DefaultServerReadTimeout,
		"server.write_timeout":    DefaultServerWriteTimeout,
		"server.idle_timeout":     DefaultServerIdleTimeout,
		"server.shutdown_timeout": DefaultServerShutdownTimeout,
		"fallback.provider":       DefaultFallbackProvider,
		"fallback.timeout":        DefaultFallbackTimeout,
		"fallback.max_tokens":     DefaultFallbackMaxTokens,
		"fallback.temperature":    DefaultFallbackTemperature,
		"stats.enabled":           DefaultStatsEnabled,
		"stats.interval":          DefaultStatsInterval,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	// Config file loading
	configPath := ""
	if cmd != nil {
		if flag := cmd.Flags().Lookup("config"); flag != nil {
			configPath = strings.TrimSpace(flag.Value.String())
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			globalPath := filepath.Join(home, ".railvoice", "config.yaml")
			if err := k.Load(file.Provider(globalPath), yaml.Parser()); err != nil {
				slog.Debug("Global config not found or invalid", "path", globalPath, "error", err)
			}
		}
	}

	// Environment Variables
	k.Load(env.Provider("RAILVOICE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "RAILVOICE_")), "_", ".", -1)
	}), nil)

	// CLI Flags
	if cmd != nil {
		k.Load(posflag.Provider(cmd.Flags(), ".", k), nil)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if cfg.Fallback.Provider == "" {
		cfg.Fallback.Provider = DefaultFallbackProvider
	}

	// Post-Process: Inject standard Env Vars if missing
	if cfg.Fallback.APIKey == "" {
		switch cfg.Fallback.Provider {
		case "openai":
			cfg.Fallback.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			cfg.Fallback.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}

	return &cfg, nil
}
