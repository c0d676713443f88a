package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studiokit/composer/internal/cmdutil"
	oerrors "github.com/studiokit/composer/internal/errors"
	"github.com/studiokit/composer/internal/output"
	"github.com/studiokit/composer/internal/version"
)

var (
	planSelectionFlags cmdutil.SelectionFlags
	planOutputFlags    cmdutil.OutputFlags
	planExplainFlag    bool
	planSplitFlag      string
)

// NewPlanCmd creates the plan command.
func NewPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compose a selection into a generation plan",
		Long: `Compose a selection file into an ordered generation plan.

The plan lists the project item first, then the selected pages and
features in selection order, then the items injected by composition
templates whose filters match the queued items.

In best-effort mode (the default) invalid items are reported and
skipped. With --strict the first validation issue aborts the plan.

Examples:
  # Compose a selection and print the plan as YAML
  composer plan -s selection.yaml

  # Include the project's default layout and print a table
  composer plan -s selection.yaml --include-layout -o table

  # Show where every parameter came from
  composer plan -s selection.yaml --explain

  # Write one file per queued item
  composer plan -s selection.yaml --split ./plan`,
		Args: cobra.NoArgs,
		RunE: runPlan,
	}

	planSelectionFlags.AddTo(cmd)
	planOutputFlags.AddTo(cmd, output.FormatYAML)
	cmd.Flags().BoolVar(&planExplainFlag, "explain", false,
		"Explain the plan: parameter sources and reported issues")
	cmd.Flags().StringVar(&planSplitFlag, "split", "",
		"Write each queued item to its own file in this directory")

	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	if err := planSelectionFlags.Validate(); err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitInvalidInput, Err: err}
	}
	format, err := planOutputFlags.Parse()
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitInvalidInput, Err: err}
	}
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	res, err := cmdutil.Compose(cmd.Context(), cmdutil.ComposeOpts{
		SelectionPath: planSelectionFlags.Selection,
		IncludeLayout: planSelectionFlags.IncludeLayout,
		Config:        cfg,
		WizardVersion: version.WizardVersion(),
	})
	if err != nil {
		return err
	}

	cmdutil.WriteQueueLog(res.Queue)

	out := cmd.OutOrStdout()
	switch {
	case planSplitFlag != "":
		var paths []string
		paths, err = output.WriteSplitPlan(res.Plan, output.SplitOptions{OutDir: planSplitFlag, Format: format})
		for _, p := range paths {
			fmt.Fprintln(out, p)
		}
	case planExplainFlag:
		issues := make([]string, 0, len(res.Issues))
		for _, issue := range res.Issues {
			issues = append(issues, issue.String())
		}
		err = output.WriteExplanation(&output.ExplainInfo{
			ProjectType:      res.Selection.ProjectType,
			Framework:        res.Selection.Framework,
			TemplatesVersion: res.Catalog.Version(),
			Queue:            res.Queue,
			Issues:           issues,
			Dropped:          res.Dropped,
		}, output.ExplainOptions{JSON: format == output.FormatJSON, Writer: out})
	default:
		err = output.WritePlan(out, res.Plan, format)
	}
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("writing plan: %w", err)}
	}

	cmdutil.PrintIssues(res.Issues, res.Dropped)

	if !res.Queue.HasProject() {
		return &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err: oerrors.NewValidationError(
				fmt.Sprintf("no project template for project type %q and framework %q", res.Selection.ProjectType, res.Selection.Framework),
				planSelectionFlags.Selection, "projectType",
				"run 'composer catalog list --kind Project' to see available project types"),
		}
	}
	return nil
}
