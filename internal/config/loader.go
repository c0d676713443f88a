package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/studiokit/composer/internal/output"
)

// Environment variable prefix for composer configuration.
const envPrefix = "COMPOSER"

// configKeys lists every configuration key with an environment binding.
var configKeys = []string{
	"catalog",
	"validation.mode",
	"user",
	"namespace",
	"project",
	"log.timestamps",
}

// Loader reads the configuration file. Environment and flag values are
// layered on top by Resolve.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	return &Loader{v: v}
}

// Load reads the configuration file at path. A missing file yields an
// empty Config and exists=false.
func (l *Loader) Load(path string) (cfg *Config, exists bool, err error) {
	expandedPath, err := ExpandPath(path)
	if err != nil {
		return nil, false, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			output.Debug("config file not found, using defaults", "path", expandedPath)
			return &Config{}, false, nil
		}
		return nil, false, fmt.Errorf("reading config file %s: %w", expandedPath, err)
	}

	cfg = &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, true, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, true, nil
}

// envReader looks up configuration keys in the environment.
type envReader struct {
	v *viper.Viper
}

func newEnvReader() *envReader {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}
	return &envReader{v: v}
}

// Lookup returns the environment value for key, e.g. validation.mode reads
// COMPOSER_VALIDATION_MODE.
func (e *envReader) Lookup(key string) string {
	return e.v.GetString(key)
}

// EnvName returns the environment variable bound to key.
func EnvName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// currentUser returns the OS user name from the environment.
func currentUser() string {
	for _, name := range []string{"USER", "USERNAME"} {
		if u := os.Getenv(name); u != "" {
			return u
		}
	}
	return ""
}
