// Package config loads runtime settings from flags, environment variables,
// an optional .env file and an optional config file, in that precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. DEIDENT_WORKERS.
const EnvPrefix = "DEIDENT"

type Config struct {
	Workers     int    `mapstructure:"workers"`
	Extension   string `mapstructure:"extension"`
	StationName string `mapstructure:"station_name"`
	LogLevel    string `mapstructure:"log_level"`
	LogFile     string `mapstructure:"log_file"`
	Recursive   bool   `mapstructure:"recursive"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"workers":      "workers",
	"extension":    "extension",
	"station-name": "station_name",
	"log-level":    "log_level",
	"log-file":     "log_file",
	"recursive":    "recursive",
}

// RegisterFlags adds the configuration flags to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.Int("workers", 0, "Concurrent files in a batch (0 = number of CPUs)")
	flags.String("extension", "dcm", "File extension of naming-convention outputs")
	flags.String("station-name", "", "StationName written to every file (default: host name)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Append skipped files to this rotating JSON log")
	flags.Bool("recursive", true, "Search input directories recursively")
	flags.String("config", "", "Config file (yaml, toml or json)")
	flags.String("env-file", ".env", "dotenv file loaded before reading the environment")
}

// Load resolves the configuration. Flags that were set explicitly win over
// environment variables, which win over the config file and the defaults.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if envFile, _ := flags.GetString("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("workers", 0)
	v.SetDefault("extension", "dcm")
	v.SetDefault("station_name", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("recursive", true)

	if configFile, _ := flags.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and normalizes the extension.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}

	c.Extension = strings.TrimPrefix(strings.TrimSpace(c.Extension), ".")
	if c.Extension == "" {
		return fmt.Errorf("extension must not be empty")
	}
	if strings.ContainsAny(c.Extension, `/\`) {
		return fmt.Errorf("extension %q must not contain path separators", c.Extension)
	}

	return nil
}
