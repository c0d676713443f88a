package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "~/.composer/catalog", cfg.Catalog)
	assert.Equal(t, "best-effort", cfg.Validation.Mode)
	assert.Equal(t, "App", cfg.Project)
	assert.Empty(t, cfg.Namespace)
	assert.Nil(t, cfg.Log.Timestamps)
}

func TestDefaultConfig_MarshalsCleanly(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, ".composer/catalog")
	assert.Contains(t, out, "mode: best-effort")
	assert.NotContains(t, out, "namespace")
	assert.NotContains(t, out, "timestamps")
}

func TestDefaultConfig_PassesSchema(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)

	raw := map[string]any{}
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.NoError(t, v.Validate(raw))
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "COMPOSER_CATALOG", EnvName("catalog"))
	assert.Equal(t, "COMPOSER_VALIDATION_MODE", EnvName("validation.mode"))
	assert.Equal(t, "COMPOSER_LOG_TIMESTAMPS", EnvName("log.timestamps"))

	for _, key := range configKeys {
		assert.True(t, strings.HasPrefix(EnvName(key), "COMPOSER_"), key)
	}
}
