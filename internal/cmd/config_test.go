package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokit/composer/internal/config"
	oerrors "github.com/studiokit/composer/internal/errors"
)

func TestNewConfigInitCmd(t *testing.T) {
	cmd := NewConfigInitCmd()

	assert.Equal(t, "init", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}

func TestConfigInit(t *testing.T) {
	home := isolate(t)
	configFile := filepath.Join(home, "config.yaml")

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, configFile)

	info, err := os.Stat(configFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	v, err := config.NewValidator()
	require.NoError(t, err)
	assert.NoError(t, v.ValidateFile(configFile))

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, err := execute(t, "config", "init")
		require.Error(t, err)
		assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
	})

	t.Run("force overwrites", func(t *testing.T) {
		_, err := execute(t, "config", "init", "--force")
		assert.NoError(t, err)
	})
}

func TestConfigInit_CustomPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "composer.yaml")

	_, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	assert.FileExists(t, path)
}

func TestConfigVet(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    int
	}{
		{
			name:    "valid",
			content: "catalog: /srv/catalog\nvalidation:\n  mode: strict\nnamespace: Contoso.App\n",
		},
		{
			name:    "unknown key",
			content: "registry: example.com\n",
			code:    oerrors.ExitValidationError,
		},
		{
			name:    "bad mode",
			content: "validation:\n  mode: sloppy\n",
			code:    oerrors.ExitValidationError,
		},
		{
			name: "missing file",
			code: oerrors.ExitNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolate(t)
			if tt.content != "" {
				require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(tt.content), 0o600))
			}

			out, err := execute(t, "config", "vet")
			if tt.code == 0 {
				require.NoError(t, err)
				assert.Contains(t, out, "Configuration is valid")
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.code, exitCode(t, err))
		})
	}
}
