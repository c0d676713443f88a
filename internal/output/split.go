package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SplitOptions controls split plan output.
type SplitOptions struct {
	// OutDir is the directory for split output
	OutDir string
	// Format specifies output format: yaml or json
	Format OutputFormat
}

// WriteSplitPlan writes each plan item to its own file, named
// <position>-<kind>-<name>.<ext> so that a directory listing keeps queue
// order. It returns the written paths.
func WriteSplitPlan(p *Plan, opts SplitOptions) ([]string, error) {
	if !opts.Format.Structured() {
		return nil, fmt.Errorf("split output supports yaml and json, not %q", opts.Format)
	}
	if p == nil || len(p.Items) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	width := len(fmt.Sprint(len(p.Items)))
	paths := make([]string, 0, len(p.Items))
	for i, item := range p.Items {
		path := filepath.Join(opts.OutDir, splitFilename(i+1, width, item, opts.Format))
		if err := writeItemFile(item, path, opts.Format); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}

		Debug("wrote plan item file",
			"kind", item.Kind,
			"name", item.Name,
			"file", path,
		)
		paths = append(paths, path)
	}
	return paths, nil
}

// splitFilename creates the file name of the item at position pos.
func splitFilename(pos, width int, item PlanItem, format OutputFormat) string {
	return fmt.Sprintf("%0*d-%s-%s%s", width, pos,
		strings.ToLower(item.Kind), sanitizeName(item.Name), format.Extension())
}

// sanitizeName makes a name safe for use in filenames.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		" ", "-",
		"\"", "",
		"<", "",
		">", "",
		"|", "-",
	)
	return replacer.Replace(name)
}

func writeItemFile(item PlanItem, destPath string, format OutputFormat) error {
	f, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeStructured(f, "plan item", item, format, nil)
}
