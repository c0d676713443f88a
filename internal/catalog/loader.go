package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/studiokit/composer/internal/core"
	"github.com/studiokit/composer/internal/output"
)

//go:embed schema/catalog.cue
var catalogSchemaCUE []byte

// catalogFile is the decoded form of one catalog file.
type catalogFile struct {
	Version   string               `json:"version,omitempty"`
	Templates []*core.TemplateInfo `json:"templates"`
}

// Loader reads catalog files and validates them against the embedded
// #Catalog schema. A Loader is not safe for concurrent use because the
// underlying CUE context is not.
type Loader struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewLoader compiles the embedded catalog schema.
func NewLoader() (*Loader, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(catalogSchemaCUE, cue.Filename("catalog.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling catalog schema: %w", schema.Err())
	}
	def := schema.LookupPath(cue.ParsePath("#Catalog"))
	if !def.Exists() {
		return nil, fmt.Errorf("catalog schema has no #Catalog definition")
	}
	return &Loader{ctx: ctx, schema: def}, nil
}

// Load reads a catalog from a file or a directory. A directory is scanned
// (non-recursively) for .cue, .yaml and .yml files in lexical order; the
// templates of each file are appended in file order.
func (l *Loader) Load(path string) (*Index, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = catalogFiles(path)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("catalog directory %s contains no .cue or .yaml files", path)
		}
	}

	var (
		version   string
		templates []*core.TemplateInfo
	)
	for _, f := range files {
		cf, err := l.loadFile(f)
		if err != nil {
			return nil, err
		}
		if cf.Version != "" {
			if version != "" && version != cf.Version {
				return nil, fmt.Errorf("catalog %s: version %q conflicts with %q", f, cf.Version, version)
			}
			version = cf.Version
		}
		output.Debug("catalog file loaded", "path", f, "templates", len(cf.Templates))
		templates = append(templates, cf.Templates...)
	}

	idx, err := NewIndex(version, templates)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return idx, nil
}

// loadFile reads and validates a single catalog file.
func (l *Loader) loadFile(path string) (*catalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
	}

	var value cue.Value
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		value = l.ctx.CompileBytes(data, cue.Filename(path))
	case ".yaml", ".yml":
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
		value = l.ctx.Encode(raw)
	default:
		return nil, fmt.Errorf("unsupported catalog file type %q", filepath.Ext(path))
	}
	if value.Err() != nil {
		return nil, fmt.Errorf("compiling catalog file %s: %w", path, value.Err())
	}

	unified := l.schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &SchemaError{Path: path, Details: cueerrors.Details(err, nil), Cause: err}
	}

	var cf catalogFile
	if err := unified.Decode(&cf); err != nil {
		return nil, fmt.Errorf("decoding catalog file %s: %w", path, err)
	}
	return &cf, nil
}

// SchemaError reports a catalog file that does not satisfy #Catalog.
type SchemaError struct {
	Path    string
	Details string
	Cause   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog file %s does not match schema: %v", e.Path, e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

func catalogFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".cue", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Load is a convenience wrapper that creates a Loader and loads path.
func Load(path string) (*Index, error) {
	l, err := NewLoader()
	if err != nil {
		return nil, err
	}
	return l.Load(path)
}
