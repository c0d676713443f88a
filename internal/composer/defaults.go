package composer

import "github.com/studiokit/composer/internal/core"

// SeedDefaults writes the default parameters every queued item carries.
// The item namespace always equals the root namespace. Calling it again
// with the same RunContext leaves the parameters unchanged.
func SeedDefaults(gen *core.GenInfo, rc core.RunContext) {
	ns := rc.RootNamespace()
	gen.SetParameter(core.ParamRootNamespace, ns, core.SourceDefault)
	gen.SetParameter(core.ParamItemNamespace, ns, core.SourceDefault)
}
