package cmd

import (
	"github.com/spf13/cobra"

	"github.com/studiokit/composer/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the composer CLI.`,
	}

	cmd.AddCommand(NewConfigInitCmd())
	cmd.AddCommand(NewConfigVetCmd())

	return cmd
}

// configPath returns the config file the config commands operate on.
func configPath() (string, error) {
	if p := GetConfigPath(); p != "" {
		return p, nil
	}
	return config.GetConfigFile()
}
