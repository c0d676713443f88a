package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		content := `
catalog: /srv/catalog
validation:
  mode: strict
user: dev
namespace: Contoso.App
project: Shop
log:
  timestamps: false
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, exists, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, "/srv/catalog", cfg.Catalog)
		assert.Equal(t, "strict", cfg.Validation.Mode)
		assert.Equal(t, "dev", cfg.User)
		assert.Equal(t, "Contoso.App", cfg.Namespace)
		assert.Equal(t, "Shop", cfg.Project)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
	})

	t.Run("returns empty config for missing file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "nonexistent.yaml")

		cfg, exists, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.False(t, exists)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("ignores environment variables", func(t *testing.T) {
		t.Setenv("COMPOSER_CATALOG", "/env/catalog")

		configFile := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte(""), 0o644))

		cfg, exists, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.True(t, exists)
		assert.Empty(t, cfg.Catalog)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("catalog: [unclosed"), 0o644))

		_, _, err := NewLoader().Load(configFile)
		assert.Error(t, err)
	})
}

func TestEnvReader(t *testing.T) {
	t.Setenv("COMPOSER_VALIDATION_MODE", "strict")
	t.Setenv("COMPOSER_PROJECT", "")

	env := newEnvReader()
	assert.Equal(t, "strict", env.Lookup("validation.mode"))
	assert.Empty(t, env.Lookup("project"))
}

func TestCurrentUser(t *testing.T) {
	t.Setenv("USER", "")
	t.Setenv("USERNAME", "winuser")
	assert.Equal(t, "winuser", currentUser())

	t.Setenv("USER", "posix")
	assert.Equal(t, "posix", currentUser())
}
