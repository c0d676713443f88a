package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/studiokit/composer/internal/config"
	oerrors "github.com/studiokit/composer/internal/errors"
	"github.com/studiokit/composer/internal/output"
)

const configHeader = `# composer configuration
#
# Every key can be overridden by a COMPOSER_* environment variable or a
# command-line flag, e.g. COMPOSER_VALIDATION_MODE=strict or --strict.
`

var configInitForce bool

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the composer configuration.

Writes a config file with default values to the resolved config path
(--config, COMPOSER_CONFIG, or ~/.composer/config.yaml).

Examples:
  # Initialize configuration
  composer config init

  # Overwrite existing configuration
  composer config init --force`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path, err := configPath()
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("resolving config path: %w", err)}
	}
	if path, err = config.ExpandPath(path); err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}

	exists, err := config.FileExists(path)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}
	if exists && !configInitForce {
		return &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err: oerrors.NewValidationError("configuration already exists", path, "",
				"Use --force to overwrite existing configuration."),
		}
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("encoding config: %w", err)}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("creating config directory: %w", err)}
	}
	if err := os.WriteFile(path, append([]byte(configHeader+"\n"), data...), 0o600); err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("writing config file: %w", err)}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Configuration initialized at "+path)
	fmt.Fprintln(cmd.OutOrStdout(), "Validate with: composer config vet")
	output.Debug("config written", "path", path, "force", configInitForce)
	return nil
}
