package config

import (
	"embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema/config.cue
var schemaFS embed.FS

// namespaceRegex matches dotted namespace names such as Contoso.App.Views.
var namespaceRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// maxNamespaceLength bounds the root namespace.
const maxNamespaceLength = 255

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schemaData, err := schemaFS.ReadFile("schema/config.cue")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaData, cue.Filename("config.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema.LookupPath(cue.ParsePath("#Config")),
	}, nil
}

// Validate checks raw config data, as decoded from YAML, against the
// schema. Unknown keys are rejected since #Config is closed.
func (v *Validator) Validate(data map[string]any) error {
	value := v.ctx.Encode(data)
	if value.Err() != nil {
		return fmt.Errorf("encoding config: %w", value.Err())
	}

	unified := v.schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var errs ValidationErrors
		for _, e := range cueerrors.Errors(err) {
			field := strings.Join(e.Path(), ".")
			if field == "" {
				field = "config"
			}
			format, args := e.Msg()
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
		}
		return errs
	}
	return nil
}

// ValidateFile validates a configuration file at the given path.
func (v *Validator) ValidateFile(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	raw, err := os.ReadFile(expanded)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	data := map[string]any{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parsing config file %s: %w", expanded, err)
	}
	return v.Validate(data)
}

// ValidateNamespace checks if a namespace name is valid.
func ValidateNamespace(namespace string) error {
	if namespace == "" {
		return nil
	}

	if !namespaceRegex.MatchString(namespace) {
		return &ValidationError{
			Field:   "namespace",
			Message: "must be dot-separated identifiers (letters, digits, underscores)",
		}
	}

	if len(namespace) > maxNamespaceLength {
		return &ValidationError{
			Field:   "namespace",
			Message: fmt.Sprintf("must be at most %d characters", maxNamespaceLength),
		}
	}

	return nil
}
