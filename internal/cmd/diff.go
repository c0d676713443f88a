package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	oerrors "github.com/studiokit/composer/internal/errors"
	"github.com/studiokit/composer/internal/output"
	"github.com/studiokit/composer/internal/version"
)

var diffExitCodeFlag bool

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <old-plan> <new-plan>",
		Short: "Compare two generation plans",
		Long: `Compare two plans written by 'composer plan'.

Items are matched by kind, name and template. Added and removed items
are listed; parameter changes of shared items are shown as a structural
diff. A change in queue order is reported separately.

Examples:
  composer plan -s selection.yaml > old.yaml
  # edit selection.yaml
  composer plan -s selection.yaml > new.yaml
  composer diff old.yaml new.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}

	cmd.Flags().BoolVar(&diffExitCodeFlag, "exit-code", false,
		"Exit with a validation error code when the plans differ")

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	from, err := readPlanFile(args[0])
	if err != nil {
		return err
	}
	to, err := readPlanFile(args[1])
	if err != nil {
		return err
	}

	if a, b := version.MajorMinor(from.TemplatesVersion), version.MajorMinor(to.TemplatesVersion); a != b {
		output.Warn("plans were composed from different catalog versions",
			"old", from.TemplatesVersion, "new", to.TemplatesVersion)
	}

	useColor := output.IsTTY()
	d, err := output.DiffPlans(from, to, useColor)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("comparing plans: %w", err)}
	}

	styles := output.NoColorStyles()
	if useColor {
		styles = output.GetStyles()
	}
	fmt.Fprint(cmd.OutOrStdout(), output.RenderPlanDiff(d, styles))

	if diffExitCodeFlag && d.HasChanges() {
		return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: fmt.Errorf("plans differ"), Printed: true}
	}
	return nil
}

func readPlanFile(path string) (*output.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &oerrors.ExitError{
				Code: oerrors.ExitNotFound,
				Err:  oerrors.NewNotFoundError("plan file not found", path, "write one with 'composer plan -s <selection> > plan.yaml'"),
			}
		}
		return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}
	p, err := output.ReadPlan(data)
	if err != nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitInvalidInput, Err: fmt.Errorf("%s: %w", path, err)}
	}
	return p, nil
}
