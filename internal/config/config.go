// Package config loads the optional shipshape.toml. Everything in it is a
// default; command-line flags always win.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the file-supplied run defaults.
type Config struct {
	Exclude       ExcludeConfig `mapstructure:"exclude"`
	OlderThanDays int           `mapstructure:"older_than_days"`
	Quiet         bool          `mapstructure:"quiet"`
}

// ExcludeConfig carries standing per-kind exclusion lists, for resources the
// user never wants cleaned regardless of how the tool is invoked.
type ExcludeConfig struct {
	Containers []string `mapstructure:"containers"`
	Images     []string `mapstructure:"images"`
	Volumes    []string `mapstructure:"volumes"`
	Builders   []string `mapstructure:"builders"`
	Minikube   []string `mapstructure:"minikube"`
	Kind       []string `mapstructure:"kind"`
}

// Load reads the config file at cfgFile, or searches the standard locations
// when cfgFile is empty. A missing file is not an error; a malformed one is.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("shipshape")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if userConfigDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(userConfigDir + "/shipshape")
		}
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(homeDir + "/.shipshape")
		}
	}

	v.SetEnvPrefix("SHIPSHAPE")
	v.AutomaticEnv()

	// -1 is the "no age filtering" sentinel.
	v.SetDefault("older_than_days", -1)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// No config file anywhere is the common case, not an error.
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
