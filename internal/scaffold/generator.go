package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/studiokit/composer/internal/output"
)

// GenerateOptions configures selection file generation.
type GenerateOptions struct {
	// Path is the file to write.
	Path string

	// TemplateName is the template to use.
	TemplateName string

	// Force allows overwriting an existing file.
	Force bool
}

// Generator writes selection scaffolds to disk.
type Generator struct {
	opts GenerateOptions
}

// NewGenerator creates a new generator with the given options.
func NewGenerator(opts GenerateOptions) *Generator {
	if opts.TemplateName == "" {
		opts.TemplateName = DefaultTemplateName
	}
	return &Generator{opts: opts}
}

// Generate renders the scaffold for data and writes it to the target path.
func (g *Generator) Generate(data SelectionData) error {
	content, err := Render(g.opts.TemplateName, data)
	if err != nil {
		return err
	}

	if !g.opts.Force {
		if _, err := os.Stat(g.opts.Path); err == nil {
			return fmt.Errorf("file %s already exists; use --force to overwrite", g.opts.Path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(g.opts.Path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", g.opts.Path, err)
	}
	if err := os.WriteFile(g.opts.Path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", g.opts.Path, err)
	}

	output.Debug("selection scaffold written",
		"template", g.opts.TemplateName,
		"path", g.opts.Path,
		"pages", len(data.Pages),
		"features", len(data.Features))
	return nil
}
