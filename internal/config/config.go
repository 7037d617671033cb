package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Node     NodeConfig
	Database DatabaseConfig
	UI       UIConfig
	Log      LogConfig
}

// NodeConfig holds connection settings for the node's REST endpoint. The
// mapstructure tags match the underscore keys used in the TOML file and env
// overrides.
type NodeConfig struct {
	RESTURL       string `mapstructure:"rest_url"`
	MacaroonPath  string `mapstructure:"macaroon_path"`
	TLSCertPath   string `mapstructure:"tls_cert_path"`
	TLSSkipVerify bool   `mapstructure:"tls_skip_verify"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat  string `mapstructure:"date_format"`
	Unit        string `mapstructure:"unit"`         // sat | btc
	AddressType string `mapstructure:"address_type"` // default type for new deposit addresses
}

// LogConfig holds logging settings. An empty file disables logging.
type LogConfig struct {
	File string `mapstructure:"file"`
}

// Load reads configuration from file and env. Env var overrides use prefix LNDASH_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("node.rest_url", "https://localhost:8080")
	v.SetDefault("node.macaroon_path", filepath.Join(os.Getenv("HOME"), ".lnd", "data", "chain", "bitcoin", "mainnet", "admin.macaroon"))
	v.SetDefault("node.tls_cert_path", filepath.Join(os.Getenv("HOME"), ".lnd", "tls.cert"))
	v.SetDefault("node.tls_skip_verify", false)
	v.SetDefault("node.timeout_secs", 15)
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "lndash", "lndash.db"))
	v.SetDefault("ui.date_format", "02/01 15:04")
	v.SetDefault("ui.unit", "sat")
	v.SetDefault("ui.address_type", "p2wkh")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("LNDASH_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "lndash"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LNDASH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// This is primarily used by the TUI settings view for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("LNDASH_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "lndash", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("node.rest_url", cfg.Node.RESTURL)
	v.Set("node.macaroon_path", cfg.Node.MacaroonPath)
	v.Set("node.tls_cert_path", cfg.Node.TLSCertPath)
	v.Set("node.tls_skip_verify", cfg.Node.TLSSkipVerify)
	v.Set("node.timeout_secs", cfg.Node.TimeoutSecs)
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.unit", cfg.UI.Unit)
	v.Set("ui.address_type", cfg.UI.AddressType)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
