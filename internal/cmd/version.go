package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studiokit/composer/internal/version"
)

var versionJSONFlag bool

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show composer version information.

Displays:
  - composer version, commit, and build date
  - CUE SDK version used to validate catalogs`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}

	cmd.Flags().BoolVar(&versionJSONFlag, "json", false, "Print version information as JSON")

	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := version.GetInfo()

	if versionJSONFlag {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
	return err
}
