package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SWAGVAL"

// Defaults applied before any file, environment or override.
var defaults = map[string]any{
	"server.addr":              ":8080",
	"server.upstream":          "",
	"server.log_level":         "info",
	"server.log_format":        "json",
	"server.read_timeout":      "30s",
	"server.shutdown_timeout":  "10s",
	"contract.path":            "",
	"validation.skip_query":    false,
	"validation.skip_params":   false,
	"validation.skip_body":     false,
	"validation.max_body_size": 10 * 1024 * 1024,
}

// Load builds the configuration. configPath names an optional YAML file;
// overrides are dotted keys (e.g. "server.addr") set by explicit flags and
// take precedence over everything else.
func Load(configPath string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configPath, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: configuration validation failed: %w", err)
	}
	return &cfg, nil
}
