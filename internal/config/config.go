package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Exchange ExchangeConfig `mapstructure:"exchange"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	UI       UIConfig       `mapstructure:"ui"`
}

// ExchangeConfig points at the external matching engine.
type ExchangeConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig locates the JSON logging configuration and bounds the
// in-memory capture buffer (0 keeps every line for the whole session).
type LoggingConfig struct {
	ConfigPath string `mapstructure:"config_path"`
	MaxLines   int    `mapstructure:"max_lines"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	LogPaneHeight int `mapstructure:"log_pane_height"`
}

// Load reads configuration from file and env. Env var overrides use prefix ORDERDESK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("exchange.base_url", "http://localhost:8080")
	v.SetDefault("exchange.timeout", 15*time.Second)
	v.SetDefault("logging.config_path", filepath.Join("logging", "config.json"))
	v.SetDefault("logging.max_lines", 0)
	v.SetDefault("ui.log_pane_height", 12)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ORDERDESK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "orderdesk"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ORDERDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Exchange.BaseURL == "" {
		return Config{}, fmt.Errorf("exchange.base_url must not be empty")
	}
	return c, nil
}
