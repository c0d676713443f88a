package core

// SelectedItem is a page or feature chosen by the user, under the display
// name it will be generated with.
type SelectedItem struct {
	Name     string
	Template *TemplateInfo
}

// UserSelection is the user's high-level choice of what to generate.
type UserSelection struct {
	// ProjectType is required; empty means nothing is selected.
	ProjectType string

	// Framework is the technology stack variant within the project type.
	Framework string

	// Pages are generated in the order given.
	Pages []SelectedItem

	// Features are generated in the order given, after all pages.
	Features []SelectedItem
}

// IsEmpty reports whether no project has been selected.
func (s *UserSelection) IsEmpty() bool {
	return s == nil || s.ProjectType == ""
}

// RunContext carries the ambient state of the current run. It is passed to
// the composer explicitly and never mutated during composition.
type RunContext struct {
	// ActiveNamespace is the namespace of the active project, if any.
	ActiveNamespace string

	// ProjectName is the name of the project being generated.
	ProjectName string

	// WizardVersion is the version of the tool driving generation.
	WizardVersion string

	// UserName identifies the acting user.
	UserName string
}

// RootNamespace returns the active namespace, falling back to the project
// name when no namespace is active.
func (rc RunContext) RootNamespace() string {
	if rc.ActiveNamespace != "" {
		return rc.ActiveNamespace
	}
	return rc.ProjectName
}
