// Package cmd provides CLI command implementations.
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studiokit/composer/internal/config"
	oerrors "github.com/studiokit/composer/internal/errors"
	"github.com/studiokit/composer/internal/output"
	"github.com/studiokit/composer/internal/version"
)

var (
	// Global flags
	configFlag     string
	catalogFlag    string
	strictFlag     bool
	namespaceFlag  string
	projectFlag    string
	userFlag       string
	verboseFlag    bool
	timestampsFlag bool

	// Resolved configuration (loaded during PersistentPreRunE)
	resolvedConfig *config.Resolved
	configErr      error
)

// NewRootCmd creates the root command for the composer CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "composer",
		Short: "Template composition planner",
		Long: `composer expands a project selection into an ordered generation plan.

It resolves the project template for the selected project type and
framework, queues the selected pages and features, and injects the
composition templates whose filters match the queued items.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: COMPOSER_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "", "Path to the template catalog (env: COMPOSER_CATALOG)")
	rootCmd.PersistentFlags().BoolVar(&strictFlag, "strict", false, "Fail on the first validation issue (env: COMPOSER_VALIDATION_MODE)")
	rootCmd.PersistentFlags().StringVar(&namespaceFlag, "namespace", "", "Root namespace of the project (env: COMPOSER_NAMESPACE)")
	rootCmd.PersistentFlags().StringVar(&projectFlag, "project", "", "Project name (env: COMPOSER_PROJECT)")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "User name recorded in the project (env: COMPOSER_USER)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	// Add subcommands
	rootCmd.AddCommand(NewPlanCmd())
	rootCmd.AddCommand(NewDepsCmd())
	rootCmd.AddCommand(NewLayoutCmd())
	rootCmd.AddCommand(NewCatalogCmd())
	rootCmd.AddCommand(NewSelectionCmd())
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals resolves configuration and sets up logging.
func initializeGlobals(cmd *cobra.Command) error {
	var timestamps *bool
	if cmd.Flags().Changed("timestamps") {
		timestamps = output.BoolPtr(timestampsFlag)
	}

	resolved, err := config.Resolve(config.ResolveOptions{
		ConfigFlag:    configFlag,
		CatalogFlag:   catalogFlag,
		Strict:        strictFlag,
		NamespaceFlag: namespaceFlag,
		ProjectFlag:   projectFlag,
		UserFlag:      userFlag,
		Timestamps:    timestamps,
	})
	resolvedConfig, configErr = resolved, err

	logCfg := output.LogConfig{Verbose: verboseFlag, Timestamps: timestamps}
	if resolved != nil {
		logCfg.Timestamps = resolved.Timestamps
	}
	output.SetupLogging(logCfg)

	info := version.GetInfo()
	output.Debug("composer started", "version", info.Version, "cue_sdk", info.CUESDKVersion)

	if err != nil {
		// Commands that do not need config (config init/vet, version) still work.
		output.Debug("config resolution failed", "error", err)
		return nil
	}
	if verboseFlag {
		config.LogResolvedValues(resolved.Values)
	}
	return nil
}

// requireConfig returns the resolved configuration or the error that
// prevented resolving it.
func requireConfig() (*config.Resolved, error) {
	if configErr != nil {
		return nil, &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err:  fmt.Errorf("resolving configuration: %w", configErr),
		}
	}
	if resolvedConfig == nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: errors.New("configuration not loaded")}
	}
	return resolvedConfig, nil
}

// GetConfigPath returns the resolved config path value.
func GetConfigPath() string {
	if resolvedConfig != nil {
		return resolvedConfig.ConfigPath
	}
	return configFlag
}
