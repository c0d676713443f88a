// Package config provides configuration loading and management.
package config

import (
	"github.com/studiokit/composer/internal/core"
)

// ValidationConfig contains validation policy settings.
type ValidationConfig struct {
	// Mode is "strict" or "best-effort".
	// Env: COMPOSER_VALIDATION_MODE, Default: best-effort
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty" mapstructure:"mode"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the composer configuration file.
// Loaded from ~/.composer/config.yaml, validated against an embedded CUE schema.
type Config struct {
	// Catalog is the path of the template catalog file or directory.
	// Env: COMPOSER_CATALOG
	Catalog string `json:"catalog,omitempty" yaml:"catalog,omitempty" mapstructure:"catalog"`

	// Validation contains validation policy settings.
	Validation ValidationConfig `json:"validation,omitempty" yaml:"validation,omitempty" mapstructure:"validation"`

	// User is the acting user name written into project parameters.
	// Env: COMPOSER_USER, Default: the OS user
	User string `json:"user,omitempty" yaml:"user,omitempty" mapstructure:"user"`

	// Namespace is the active root namespace. Empty falls back to Project.
	// Env: COMPOSER_NAMESPACE
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty" mapstructure:"namespace"`

	// Project is the name of the project being generated.
	// Env: COMPOSER_PROJECT
	Project string `json:"project,omitempty" yaml:"project,omitempty" mapstructure:"project"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty" mapstructure:"log"`
}

// Default values.
const (
	DefaultCatalog = "~/.composer/catalog"
	DefaultProject = "App"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `composer config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Catalog:    DefaultCatalog,
		Validation: ValidationConfig{Mode: string(core.ModeBestEffort)},
		Project:    DefaultProject,
	}
}
