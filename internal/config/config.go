// Package config loads the settings of the swagval validating gateway.
//
// Values come from defaults, an optional YAML file, SWAGVAL_* environment
// variables and explicit command-line overrides, in increasing precedence.
package config

import "time"

// Config holds all gateway configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Contract   ContractConfig   `mapstructure:"contract" validate:"required"`
	Validation ValidationConfig `mapstructure:"validation"`
}

// ServerConfig contains the HTTP listener and logging settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required,hostname_port"`
	Upstream        string        `mapstructure:"upstream" validate:"omitempty,http_url"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"log_format" validate:"required,oneof=json text"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// ContractConfig locates the API contract.
type ContractConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ValidationConfig tunes request validation.
type ValidationConfig struct {
	SkipQuery   bool  `mapstructure:"skip_query"`
	SkipParams  bool  `mapstructure:"skip_params"`
	SkipBody    bool  `mapstructure:"skip_body"`
	MaxBodySize int64 `mapstructure:"max_body_size" validate:"gte=0"`
}
