// Package cmdutil provides shared command utilities for composer
// subcommands. It centralizes flag group management, the catalog and
// composition preamble, and output formatting helpers.
package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studiokit/composer/internal/output"
)

// SelectionFlags holds flags for commands that compose a selection file
// (plan).
type SelectionFlags struct {
	Selection     string
	IncludeLayout bool
}

// AddTo registers the selection flags on the given cobra command.
func (f *SelectionFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Selection, "selection", "s", "",
		"Selection file (YAML)")
	cmd.Flags().BoolVar(&f.IncludeLayout, "include-layout", false,
		"Add the project's default layout to the selection")
}

// Validate checks that a selection file was given.
func (f *SelectionFlags) Validate() error {
	if f.Selection == "" {
		return fmt.Errorf("--selection is required")
	}
	return nil
}

// TargetFlags holds the project type and framework a command resolves
// against (deps, layout).
type TargetFlags struct {
	ProjectType string
	Framework   string
}

// AddTo registers the target flags on the given cobra command.
func (f *TargetFlags) AddTo(cmd *cobra.Command, withProjectType bool) {
	if withProjectType {
		cmd.Flags().StringVar(&f.ProjectType, "project-type", "",
			"Project type, e.g. SplitView")
	}
	cmd.Flags().StringVar(&f.Framework, "framework", "",
		"Framework, e.g. MVVMBasic")
}

// Validate checks that the required target flags were given.
func (f *TargetFlags) Validate(withProjectType bool) error {
	if withProjectType && f.ProjectType == "" {
		return fmt.Errorf("--project-type is required")
	}
	if f.Framework == "" {
		return fmt.Errorf("--framework is required")
	}
	return nil
}

// OutputFlags holds the output format flag.
type OutputFlags struct {
	Format string
}

// AddTo registers the output flag with def as its default.
func (f *OutputFlags) AddTo(cmd *cobra.Command, def output.OutputFormat) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", string(def),
		fmt.Sprintf("Output format: %v", output.ValidFormats()))
}

// Parse returns the selected output format.
func (f *OutputFlags) Parse() (output.OutputFormat, error) {
	format, ok := output.ParseOutputFormat(f.Format)
	if !ok {
		return "", fmt.Errorf("invalid output format %q (valid: %v)", f.Format, output.ValidFormats())
	}
	return format, nil
}
