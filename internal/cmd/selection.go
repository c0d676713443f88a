package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studiokit/composer/internal/catalog"
	"github.com/studiokit/composer/internal/cmdutil"
	oerrors "github.com/studiokit/composer/internal/errors"
	"github.com/studiokit/composer/internal/scaffold"
	"github.com/studiokit/composer/internal/version"
)

var (
	selectionInitTargetFlags cmdutil.TargetFlags
	selectionInitFile        string
	selectionInitTemplate    string
	selectionInitForce       bool
)

// NewSelectionCmd creates the selection command group.
func NewSelectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selection",
		Short: "Work with selection files",
		Long:  `Commands for creating selection files.`,
	}

	cmd.AddCommand(newSelectionInitCmd())

	return cmd
}

func newSelectionInitCmd() *cobra.Command {
	var descriptions []string
	for _, t := range scaffold.List() {
		descriptions = append(descriptions, fmt.Sprintf("  %-10s %s", t.Name, t.Description))
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter selection file",
		Long: `Create a selection file for a project type and framework.

Templates:
` + strings.Join(descriptions, "\n") + `

Examples:
  composer selection init --project-type SplitView --framework MVVMBasic
  composer selection init --project-type Blank --framework Prism --template minimal -f app.yaml`,
		Args: cobra.NoArgs,
		RunE: runSelectionInit,
	}

	selectionInitTargetFlags.AddTo(cmd, true)
	cmd.Flags().StringVarP(&selectionInitFile, "file", "f", "selection.yaml", "Selection file to write")
	cmd.Flags().StringVar(&selectionInitTemplate, "template", scaffold.DefaultTemplateName, "Scaffold template")
	cmd.Flags().BoolVar(&selectionInitForce, "force", false, "Overwrite an existing file")

	return cmd
}

func runSelectionInit(cmd *cobra.Command, _ []string) error {
	if err := selectionInitTargetFlags.Validate(true); err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitInvalidInput, Err: err}
	}
	if _, err := scaffold.Get(selectionInitTemplate); err != nil {
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

	pt, fw := selectionInitTargetFlags.ProjectType, selectionInitTargetFlags.Framework
	project := catalog.ProjectTemplate(idx, pt, fw)
	if project == nil {
		return &oerrors.ExitError{
			Code: oerrors.ExitNotFound,
			Err: oerrors.NewNotFoundError(
				fmt.Sprintf("no project template for project type %q and framework %q", pt, fw), cfg.Catalog,
				"run 'composer catalog list --kind Project' to see available project types"),
		}
	}

	comp := cmdutil.NewComposer(idx, cfg, version.WizardVersion(), nil)
	entries, err := comp.ResolveLayout(pt, fw)
	if err != nil {
		return cmdutil.ExitFor(err)
	}

	gen := scaffold.NewGenerator(scaffold.GenerateOptions{
		Path:         selectionInitFile,
		TemplateName: selectionInitTemplate,
		Force:        selectionInitForce,
	})
	if err := gen.Generate(scaffold.NewSelectionData(project, pt, fw, idx.Version(), entries)); err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Selection written to "+selectionInitFile)
	fmt.Fprintln(cmd.OutOrStdout(), "Compose it with: composer plan -s "+selectionInitFile)
	return nil
}
