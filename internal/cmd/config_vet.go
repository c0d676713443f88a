package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studiokit/composer/internal/config"
	oerrors "github.com/studiokit/composer/internal/errors"
	"github.com/studiokit/composer/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the composer configuration file.

Checks performed:
  1. Config file exists at the resolved path
  2. Config file is valid YAML
  3. Config matches the configuration schema
  4. Environment overrides resolve

The config path is resolved using precedence:
  --config flag > COMPOSER_CONFIG env > ~/.composer/config.yaml

Examples:
  # Validate default configuration
  composer config vet

  # Validate custom config path
  composer config vet --config /path/to/config.yaml`,
		Args: cobra.NoArgs,
		RunE: runConfigVet,
	}
}

func runConfigVet(cmd *cobra.Command, _ []string) error {
	path, err := configPath()
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("resolving config path: %w", err)}
	}

	output.Debug("validating config", "path", path)

	exists, err := config.FileExists(path)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}
	if !exists {
		return &oerrors.ExitError{
			Code: oerrors.ExitNotFound,
			Err: oerrors.NewNotFoundError("configuration file not found", path,
				"Run 'composer config init' to create default configuration"),
		}
	}

	validator, err := config.NewValidator()
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}
	if err := validator.ValidateFile(path); err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err}
	}

	// Env overrides are validated while resolving.
	if _, err := requireConfig(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+path))
	return nil
}
