package infra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every application setting. Sensitive values can be overridden
// through environment variables after the file is loaded.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Daemon struct {
		RestURL   string `yaml:"rest_url"`
		WSURL     string `yaml:"ws_url"`
		AuthToken string `yaml:"auth_token"`
		Symbol    string `yaml:"symbol"`
	} `yaml:"daemon"`

	Gateway struct {
		BindAddr       string   `yaml:"bind_addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"gateway"`

	// Markets listed in the navigation shell. The traded market
	// (daemon.symbol) should be among them.
	Markets []string `yaml:"markets"`

	UI struct {
		DefaultTheme string `yaml:"default_theme"`
	} `yaml:"ui"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file, applies environment
// overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Daemon.RestURL == "" || (!hasPrefix(c.Daemon.RestURL, "http://") && !hasPrefix(c.Daemon.RestURL, "https://")) {
		return fmt.Errorf("invalid daemon REST URL: %s", c.Daemon.RestURL)
	}
	if c.Daemon.WSURL == "" || (!hasPrefix(c.Daemon.WSURL, "ws://") && !hasPrefix(c.Daemon.WSURL, "wss://")) {
		return fmt.Errorf("invalid daemon WS URL: %s", c.Daemon.WSURL)
	}
	if c.Daemon.Symbol == "" {
		return fmt.Errorf("a market symbol is required")
	}
	if len(c.Markets) == 0 {
		return fmt.Errorf("at least one market is required")
	}
	if c.Gateway.BindAddr == "" {
		return fmt.Errorf("gateway bind address is required")
	}
	return nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}

// overrideWithEnv replaces settings with environment values when present.
func overrideWithEnv(cfg *Config) {
	if url := os.Getenv("TAKER_DAEMON_REST_URL"); url != "" {
		cfg.Daemon.RestURL = url
	}
	if url := os.Getenv("TAKER_DAEMON_WS_URL"); url != "" {
		cfg.Daemon.WSURL = url
	}
	if token := os.Getenv("TAKER_DAEMON_AUTH_TOKEN"); token != "" {
		cfg.Daemon.AuthToken = token
	}
	if addr := os.Getenv("TAKER_GATEWAY_BIND_ADDR"); addr != "" {
		cfg.Gateway.BindAddr = addr
	}
}
