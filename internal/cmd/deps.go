package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studiokit/composer/internal/catalog"
	"github.com/studiokit/composer/internal/cmdutil"
	"github.com/studiokit/composer/internal/core"
	oerrors "github.com/studiokit/composer/internal/errors"
	"github.com/studiokit/composer/internal/output"
	"github.com/studiokit/composer/internal/version"
)

var (
	depsTargetFlags cmdutil.TargetFlags
	depsOutputFlags cmdutil.OutputFlags
	depsTreeFlag    bool
)

// NewDepsCmd creates the deps command.
func NewDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps <template-identity>",
		Short: "List the transitive dependencies of a template",
		Long: `List the transitive dependencies of a template for a framework.

Dependencies are listed in order of first discovery, each once, without
the template itself. Dependency cycles are reported as warnings.

Examples:
  # List dependencies as a table
  composer deps wts.Page.Grid --framework MVVMBasic -o table

  # Show the dependency tree
  composer deps wts.Page.Grid --framework MVVMBasic --tree`,
		Args: cobra.ExactArgs(1),
		RunE: runDeps,
	}

	depsTargetFlags.AddTo(cmd, false)
	depsOutputFlags.AddTo(cmd, output.FormatTable)
	cmd.Flags().BoolVar(&depsTreeFlag, "tree", false, "Render dependencies as a tree")

	return cmd
}

func runDeps(cmd *cobra.Command, args []string) error {
	if err := depsTargetFlags.Validate(false); err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitInvalidInput, Err: err}
	}
	format, err := depsOutputFlags.Parse()
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

	framework := depsTargetFlags.Framework
	root := idx.FindOne(catalog.And(catalog.ByIdentity(args[0]), catalog.ByFramework(framework)))
	if root == nil {
		return cmdutil.ExitFor(oerrors.NewTemplateNotFoundError(args[0], framework, cfg.Catalog))
	}

	comp := cmdutil.NewComposer(idx, cfg, version.WizardVersion(), nil)
	deps, err := comp.GetAllDependencies(root, framework)
	if err != nil {
		return cmdutil.ExitFor(err)
	}

	out := cmd.OutOrStdout()
	if depsTreeFlag {
		styles := output.NoColorStyles()
		if output.IsTTY() {
			styles = output.GetStyles()
		}
		_, err = fmt.Fprint(out, output.RenderTree(dependencyTree(root, deps), styles))
		return err
	}
	return output.WriteTemplates(out, deps, format)
}

// dependencyTree arranges resolved dependencies under the templates that
// declare them. A dependency reached a second time is shown once more,
// marked, without its subtree.
func dependencyTree(root *core.TemplateInfo, resolved []*core.TemplateInfo) *output.TreeNode {
	byID := make(map[string]*core.TemplateInfo, len(resolved))
	for _, t := range resolved {
		byID[t.Identity] = t
	}

	node := &output.TreeNode{Name: root.Identity, Description: root.Kind.String()}
	expanded := map[string]bool{root.Identity: true}

	var walk func(parent *output.TreeNode, t *core.TemplateInfo)
	walk = func(parent *output.TreeNode, t *core.TemplateInfo) {
		for _, id := range t.Dependencies {
			dep, ok := byID[id]
			if !ok {
				continue
			}
			if expanded[id] {
				parent.Add(id, "(listed above)")
				continue
			}
			expanded[id] = true
			walk(parent.Add(id, dep.Kind.String()), dep)
		}
	}
	walk(node, root)
	return node
}
