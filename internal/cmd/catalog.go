package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/studiokit/composer/internal/catalog"
	"github.com/studiokit/composer/internal/cmdutil"
	"github.com/studiokit/composer/internal/composer"
	"github.com/studiokit/composer/internal/core"
	"github.com/studiokit/composer/internal/diagnostics"
	oerrors "github.com/studiokit/composer/internal/errors"
	"github.com/studiokit/composer/internal/output"
	"github.com/studiokit/composer/internal/query"
	"github.com/studiokit/composer/internal/version"
)

var (
	catalogListKindFlag    string
	catalogListOutputFlags cmdutil.OutputFlags
)

// NewCatalogCmd creates the catalog command group.
func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the template catalog",
		Long:  `Commands for listing and validating the template catalog.`,
	}

	cmd.AddCommand(newCatalogListCmd())
	cmd.AddCommand(newCatalogVetCmd())

	return cmd
}

func newCatalogListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog templates",
		Long: `List the templates of the catalog in catalog order.

Examples:
  composer catalog list
  composer catalog list --kind Page -o json`,
		Args: cobra.NoArgs,
		RunE: runCatalogList,
	}

	cmd.Flags().StringVar(&catalogListKindFlag, "kind", "",
		"Only list templates of this kind: Project, Page, Feature or Composition")
	catalogListOutputFlags.AddTo(cmd, output.FormatTable)

	return cmd
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	format, err := catalogListOutputFlags.Parse()
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitInvalidInput, Err: err}
	}

	pred := func(*core.TemplateInfo) bool { return true }
	if catalogListKindFlag != "" {
		kind, ok := core.ParseKind(catalogListKindFlag)
		if !ok {
			return &oerrors.ExitError{
				Code: oerrors.ExitInvalidInput,
				Err:  fmt.Errorf("invalid kind %q (valid: %v)", catalogListKindFlag, core.ValidKinds()),
			}
		}
		pred = catalog.ByKind(kind)
	}

	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	idx, err := cmdutil.LoadCatalog(cmd.Context(), cfg.Catalog)
	if err != nil {
		return err
	}

	return output.WriteTemplates(cmd.OutOrStdout(), idx.FindAll(pred), format)
}

func newCatalogVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the catalog",
		Long: `Validate the catalog against its schema and check the references
between templates:

  - composition filters must parse
  - dependencies must resolve for every framework a template supports
  - project layouts must resolve for every framework a project supports

Every problem found is reported.`,
		Args: cobra.NoArgs,
		RunE: runCatalogVet,
	}
}

func runCatalogVet(cmd *cobra.Command, _ []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	idx, err := cmdutil.LoadCatalog(cmd.Context(), cfg.Catalog)
	if err != nil {
		return err
	}

	errs := vetCatalog(idx, cfg.RunContext(version.WizardVersion()), core.ModeBestEffort)
	if len(errs) > 0 {
		for _, e := range errs {
			output.Error(e.Error())
		}
		return &oerrors.ExitError{
			Code:    oerrors.ExitValidationError,
			Err:     fmt.Errorf("catalog has %d problem(s): %w", len(errs), utilerrors.NewAggregate(errs)),
			Printed: true,
		}
	}

	output.Println(output.FormatCheckmark(fmt.Sprintf("Catalog valid: %d templates, version %s", idx.Len(), idx.Version())))
	return nil
}

// vetCatalog checks the cross-template references of idx and returns every
// problem found. In strict mode each check stops at its first problem.
func vetCatalog(idx *catalog.Index, rc core.RunContext, mode core.ValidationMode) []error {
	rec := &diagnostics.Recorder{}
	comp := composer.New(idx, rc, composer.WithValidator(composer.NewValidator(mode, rec)))

	var errs []error
	for _, t := range idx.All() {
		switch t.Kind {
		case core.KindComposition:
			if _, err := query.Compile(t.CompositionFilter); err != nil {
				errs = append(errs, &core.ValidationError{
					Kind:     core.InvalidCompositionFilter,
					Template: t.Identity,
					Cause:    err,
				})
			}
		case core.KindProject:
			for _, pt := range strings.Split(t.ProjectType, "|") {
				for _, fw := range t.Frameworks {
					if catalog.ProjectTemplate(idx, strings.TrimSpace(pt), fw) != t {
						continue
					}
					if _, err := comp.ResolveLayout(strings.TrimSpace(pt), fw); err != nil {
						errs = append(errs, err)
					}
				}
			}
		}
		if len(t.Dependencies) == 0 {
			continue
		}
		for _, fw := range t.Frameworks {
			if _, err := comp.GetAllDependencies(t, fw); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, issue := range rec.Issues() {
		errs = append(errs, issue.Err)
	}
	return errs
}
