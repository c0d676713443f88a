package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/studiokit/composer/internal/core"
	"github.com/studiokit/composer/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue tracks a configuration value and where it came from.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// resolveString picks the first non-empty value in flag > env > config >
// default order and records every lower-precedence value it shadows.
func resolveString(key, flag, env, cfg, def string) ResolvedValue {
	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flag},
		{SourceEnv, env},
		{SourceConfig, cfg},
		{SourceDefault, def},
	}

	rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if rv.Source == "" {
			rv.Value = c.value
			rv.Source = c.source
			continue
		}
		rv.Shadowed[c.source] = c.value
	}
	return rv
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) COMPOSER_CONFIG env, (3) ~/.composer/config.yaml.
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolveConfigPathResult{Shadowed: make(map[ConfigSource]string)}, err
	}

	rv := resolveString("config", opts.FlagValue, os.Getenv(EnvConfig), "", paths.ConfigFile)
	return ResolveConfigPathResult{
		ConfigPath: rv.Value,
		Source:     rv.Source,
		Shadowed:   rv.Shadowed,
	}, nil
}

// ResolveOptions holds the flag values that take part in resolution. Empty
// strings and nil pointers mean the flag was not given.
type ResolveOptions struct {
	ConfigFlag    string
	CatalogFlag   string
	Strict        bool
	NamespaceFlag string
	ProjectFlag   string
	UserFlag      string
	Timestamps    *bool
}

// Resolved is the effective configuration after applying precedence.
type Resolved struct {
	// ConfigPath is the config file that was consulted.
	ConfigPath string
	// ConfigExists reports whether ConfigPath was present on disk.
	ConfigExists bool

	Catalog        string
	ValidationMode core.ValidationMode
	User           string
	Namespace      string
	Project        string
	Timestamps     *bool

	// Values records the source of every resolved key.
	Values []ResolvedValue
}

// RunContext returns the run-wide context derived from the resolved
// configuration.
func (r *Resolved) RunContext(wizardVersion string) core.RunContext {
	return core.RunContext{
		ProjectName:     r.Project,
		ActiveNamespace: r.Namespace,
		UserName:        r.User,
		WizardVersion:   wizardVersion,
	}
}

// Resolve loads the config file and applies flag > env > config > default
// precedence to every key.
func Resolve(opts ResolveOptions) (*Resolved, error) {
	pathResult, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: opts.ConfigFlag})
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	cfg, exists, err := NewLoader().Load(pathResult.ConfigPath)
	if err != nil {
		return nil, err
	}

	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	env := newEnvReader()
	res := &Resolved{
		ConfigPath:   pathResult.ConfigPath,
		ConfigExists: exists,
	}
	res.Values = append(res.Values, ResolvedValue{
		Key:      "config",
		Value:    pathResult.ConfigPath,
		Source:   pathResult.Source,
		Shadowed: pathResult.Shadowed,
	})

	catalog := resolveString("catalog", opts.CatalogFlag, env.Lookup("catalog"), cfg.Catalog, paths.CatalogDir)
	res.Catalog, err = ExpandPath(catalog.Value)
	if err != nil {
		return nil, fmt.Errorf("expanding catalog path: %w", err)
	}

	strictFlag := ""
	if opts.Strict {
		strictFlag = string(core.ModeStrict)
	}
	mode := resolveString("validation.mode", strictFlag, env.Lookup("validation.mode"), cfg.Validation.Mode, string(core.ModeBestEffort))
	res.ValidationMode, err = core.ParseValidationMode(mode.Value)
	if err != nil {
		return nil, fmt.Errorf("%s (from %s): %w", mode.Key, mode.Source, err)
	}

	user := resolveString("user", opts.UserFlag, env.Lookup("user"), cfg.User, currentUser())
	res.User = user.Value

	namespace := resolveString("namespace", opts.NamespaceFlag, env.Lookup("namespace"), cfg.Namespace, "")
	if err := ValidateNamespace(namespace.Value); err != nil {
		return nil, fmt.Errorf("%s (from %s): %w", namespace.Key, namespace.Source, err)
	}
	res.Namespace = namespace.Value

	project := resolveString("project", opts.ProjectFlag, env.Lookup("project"), cfg.Project, DefaultProject)
	res.Project = project.Value

	timestamps, err := resolveBool("log.timestamps", opts.Timestamps, env.Lookup("log.timestamps"), cfg.Log.Timestamps)
	if err != nil {
		return nil, err
	}
	if timestamps.Source != SourceDefault {
		v := timestamps.Value == "true"
		res.Timestamps = &v
	}

	res.Values = append(res.Values, catalog, mode, user, namespace, project, timestamps)
	return res, nil
}

// resolveBool resolves an optional boolean. The default source means no
// layer set it.
func resolveBool(key string, flag *bool, env string, cfg *bool) (ResolvedValue, error) {
	envValue := ""
	if env != "" {
		b, err := strconv.ParseBool(env)
		if err != nil {
			return ResolvedValue{}, fmt.Errorf("%s: invalid boolean %q", EnvName(key), env)
		}
		envValue = strconv.FormatBool(b)
	}
	format := func(b *bool) string {
		if b == nil {
			return ""
		}
		return strconv.FormatBool(*b)
	}

	rv := resolveString(key, format(flag), envValue, format(cfg), "")
	if rv.Source == "" {
		rv.Source = SourceDefault
	}
	return rv, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
