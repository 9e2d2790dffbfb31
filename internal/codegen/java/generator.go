// Package java generates immutable Java model classes with staged builders,
// their enums, and the model registry.
package java

import (
	"github.com/cockroachdb/errors"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
)

const (
	// RuntimePackage hosts Model, ModelProvider, the annotations and QueryField
	RuntimePackage = "dev.okra.model"

	// DefaultPackage is used when neither the options nor the schema name a package
	DefaultPackage = "com.example.models"

	indent = "    "
)

// Generator generates Java code from a model schema
type Generator struct {
	opts codegen.Options
}

// NewGenerator creates a new Java code generator
func NewGenerator(opts codegen.Options) *Generator {
	return &Generator{opts: opts}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "java"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".java"
}

// Layout returns LayoutPerDeclaration: Java wants one public type per file
func (g *Generator) Layout() codegen.FileLayout {
	return codegen.LayoutPerDeclaration
}

// Generate runs one pass over the schema
func (g *Generator) Generate(s *schema.Schema, pass codegen.Pass) ([]byte, error) {
	switch pass.Mode {
	case codegen.ModeClasses:
		return g.generateClasses(s, pass)
	case codegen.ModeEnums:
		return g.generateEnums(s, pass)
	case codegen.ModeRegistry:
		return g.generateRegistry(s, pass)
	default:
		return nil, errors.Newf("unknown generation mode: %q", pass.Mode)
	}
}

func (g *Generator) packageName(s *schema.Schema) string {
	switch {
	case g.opts.PackageName != "":
		return g.opts.PackageName
	case s.Meta.Package != "":
		return s.Meta.Package
	default:
		return DefaultPackage
	}
}

// writeHeader writes the package statement and the sorted import block
func (g *Generator) writeHeader(w *writer.Writer, s *schema.Schema, imports importSet) {
	w.WriteLinef("package %s;", g.packageName(s))
	w.BlankLine()

	if len(imports) == 0 {
		return
	}
	for _, imp := range imports.sorted() {
		w.WriteLinef("import %s;", imp)
	}
	w.BlankLine()
}

// generateClasses emits every selected model. Each class collects its
// qualified types in its own import set; the sets are merged into the
// header once all classes are rendered.
func (g *Generator) generateClasses(s *schema.Schema, pass codegen.Pass) ([]byte, error) {
	models, err := pass.SelectModels(s)
	if err != nil {
		return nil, err
	}

	imports := baseImports()
	var bodies []string
	emitErr := codegen.EachModel(models, pass.BestEffort, func(m schema.Model) error {
		body, classImports, err := g.emitClass(m)
		if err != nil {
			return err
		}
		imports.merge(classImports)
		bodies = append(bodies, body)
		return nil
	})
	if emitErr != nil && !pass.BestEffort {
		return nil, emitErr
	}

	w := writer.NewWriter(indent)
	g.writeHeader(w, s, imports)
	for i, body := range bodies {
		if i > 0 {
			w.BlankLine()
		}
		w.Write(body)
	}
	return w.Bytes(), emitErr
}

func (g *Generator) generateEnums(s *schema.Schema, pass codegen.Pass) ([]byte, error) {
	enums, err := pass.SelectEnums(s)
	if err != nil {
		return nil, err
	}

	w := writer.NewWriter(indent)
	g.writeHeader(w, s, nil)
	for i, enum := range enums {
		if i > 0 {
			w.BlankLine()
		}
		emitEnum(w, enum)
	}
	return w.Bytes(), nil
}

func (g *Generator) generateRegistry(s *schema.Schema, pass codegen.Pass) ([]byte, error) {
	models, err := pass.SelectModels(s)
	if err != nil {
		return nil, err
	}
	version, err := codegen.Version(s)
	if err != nil {
		return nil, errors.Wrap(err, "compute registry version")
	}

	w := writer.NewWriter(indent)
	g.writeHeader(w, s, registryImports())
	emitRegistry(w, g.opts.Registry(), models, version)
	return w.Bytes(), nil
}
