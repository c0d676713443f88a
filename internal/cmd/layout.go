package cmd

import (
	"github.com/spf13/cobra"

	"github.com/studiokit/composer/internal/cmdutil"
	oerrors "github.com/studiokit/composer/internal/errors"
	"github.com/studiokit/composer/internal/output"
	"github.com/studiokit/composer/internal/version"
)

var (
	layoutTargetFlags cmdutil.TargetFlags
	layoutOutputFlags cmdutil.OutputFlags
)

// NewLayoutCmd creates the layout command.
func NewLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the default layout of a project type",
		Long: `Show the pages and features a project type declares as its default
layout, each bound to the template of its group that supports the
framework.

Examples:
  composer layout --project-type SplitView --framework MVVMBasic`,
		Args: cobra.NoArgs,
		RunE: runLayout,
	}

	layoutTargetFlags.AddTo(cmd, true)
	layoutOutputFlags.AddTo(cmd, output.FormatTable)

	return cmd
}

func runLayout(cmd *cobra.Command, _ []string) error {
	if err := layoutTargetFlags.Validate(true); err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitInvalidInput, Err: err}
	}
	format, err := layoutOutputFlags.Parse()
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitInvalidInput, Err: err}
	}
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	idx, err := cmdutil.LoadCatalog(cmd.Context(), cfg.Catalog)
	if err != nil {
		return err
	}

	comp := cmdutil.NewComposer(idx, cfg, version.WizardVersion(), nil)
	entries, err := comp.ResolveLayout(layoutTargetFlags.ProjectType, layoutTargetFlags.Framework)
	if err != nil {
		return cmdutil.ExitFor(err)
	}

	rows := make([]output.LayoutRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, output.LayoutRow{
			Name:     e.Item.Name,
			Template: e.Template.Identity,
			Kind:     e.Template.Kind.String(),
			Readonly: e.Item.Readonly,
		})
	}
	return output.WriteLayout(cmd.OutOrStdout(), rows, format)
}
