package codegen

import "github.com/okra-platform/modelgen/internal/schema"

// Generator is the interface that all language-specific code generators must implement
type Generator interface {
	// Generate runs one emission pass and returns the generated declarations.
	// With pass.BestEffort set, a partial result may be returned together
	// with an error describing the models that were skipped.
	Generate(s *schema.Schema, pass Pass) ([]byte, error)

	// Language returns the name of the target language (e.g., "java", "go")
	Language() string

	// FileExtension returns the file extension for generated files (e.g., ".java", ".go")
	FileExtension() string

	// Layout reports how passes are split into files
	Layout() FileLayout
}

// Options contains common options for code generation
type Options struct {
	// PackageName is the package/module name for the generated code
	PackageName string

	// RegistryName is the name of the generated registry declaration
	RegistryName string

	// Scalars maps custom schema scalars to target types. Qualified targets
	// (e.g. "java.math.BigDecimal") are imported and shortened.
	Scalars map[string]string
}

// DefaultRegistryName is used when Options.RegistryName is empty
const DefaultRegistryName = "ModelRegistry"

// Registry returns the configured registry name or the default
func (o Options) Registry() string {
	if o.RegistryName == "" {
		return DefaultRegistryName
	}
	return o.RegistryName
}

// Scalar returns the custom mapping for a schema scalar
func (o Options) Scalar(name string) (string, bool) {
	typ, ok := o.Scalars[name]
	return typ, ok
}
