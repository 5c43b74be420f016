package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	General GeneralConfig `mapstructure:"general"`
	UI      UIConfig      `mapstructure:"ui"`
}

type APIConfig struct {
	// BaseURL is the data-library API root. Without it every fetch fails,
	// so the app refuses to start when it is unset.
	BaseURL string `mapstructure:"base_url"`
	// TokenFromKeyring enables reading a bearer token from the OS keyring.
	TokenFromKeyring bool `mapstructure:"token_from_keyring"`
}

type GeneralConfig struct {
	DefaultLimit int    `mapstructure:"default_limit"`
	ExportDir    string `mapstructure:"export_dir"`
	// DefaultCollection opens the named collection on startup instead of the
	// first one in the sidebar.
	DefaultCollection string `mapstructure:"default_collection"`
}

type UIConfig struct {
	Theme         string `mapstructure:"theme"`
	MouseEnabled  bool   `mapstructure:"mouse_enabled"`
	TickerSeconds int    `mapstructure:"ticker_seconds"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:          "",
			TokenFromKeyring: false,
		},
		General: GeneralConfig{
			DefaultLimit:      25,
			ExportDir:         ".",
			DefaultCollection: "",
		},
		UI: UIConfig{
			Theme:         "default",
			MouseEnabled:  true,
			TickerSeconds: 5,
		},
	}
}

// Load loads configuration from files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths in priority order
	// 1. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "datadeck"))
	}

	// 2. Current directory
	v.AddConfigPath(".")

	v.SetDefault("api.base_url", "")
	v.SetDefault("api.token_from_keyring", false)
	v.SetDefault("general.default_limit", 25)
	v.SetDefault("general.export_dir", ".")
	v.SetDefault("general.default_collection", "")
	v.SetDefault("ui.theme", "default")
	v.SetDefault("ui.mouse_enabled", true)
	v.SetDefault("ui.ticker_seconds", 5)

	// The base URL can also come from the environment, which is how CI and
	// one-off runs point at a different library.
	v.SetEnvPrefix("DATADECK")
	v.BindEnv("api.base_url", "DATADECK_API_URL")

	// Read config (it's okay if file doesn't exist, we have defaults)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "datadeck"), nil
}
