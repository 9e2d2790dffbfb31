// Package typescript generates immutable TypeScript model classes with
// staged builders, their enums, and the model registry.
package typescript

import (
	"github.com/cockroachdb/errors"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
)

const (
	// RuntimeModule exports Model, ModelProvider, the decorators and QueryField
	RuntimeModule = "@okra/model"

	header = "// Code generated by modelgen. DO NOT EDIT."
	indent = "  " // TypeScript typically uses 2 spaces
)

// Generator generates TypeScript code from a model schema
type Generator struct {
	opts codegen.Options
}

// NewGenerator creates a new TypeScript code generator
func NewGenerator(opts codegen.Options) *Generator {
	return &Generator{opts: opts}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "typescript"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".ts"
}

// Layout returns LayoutPerMode: models.ts, enums.ts and registry.ts
func (g *Generator) Layout() codegen.FileLayout {
	return codegen.LayoutPerMode
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

func (g *Generator) writeHeader(w *writer.Writer, imports importSet) {
	w.WriteLine(header)
	if g.opts.PackageName != "" {
		w.WriteLinef("/** @module %s */", g.opts.PackageName)
	}
	w.BlankLine()

	if len(imports) == 0 {
		return
	}
	for _, line := range imports.lines() {
		w.WriteLine(line)
	}
	w.BlankLine()
}

func (g *Generator) generateClasses(s *schema.Schema, pass codegen.Pass) ([]byte, error) {
	models, err := pass.SelectModels(s)
	if err != nil {
		return nil, err
	}

	imports := baseImports()
	var bodies []string
	emitErr := codegen.EachModel(models, pass.BestEffort, func(m schema.Model) error {
		body, classImports, err := g.emitClass(s, m)
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
	g.writeHeader(w, imports)
	w.WriteLinef("const CANONICAL_ID = %s;", canonicalID)
	w.BlankLine()
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
	g.writeHeader(w, nil)
	for i, enum := range enums {
		if i > 0 {
			w.BlankLine()
		}
		g.generateEnum(w, enum)
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

	imports := importSet{}
	imports.add(RuntimeModule, "ModelProvider")
	imports.add(RuntimeModule, "ModelType")
	for _, m := range models {
		imports.add(modelsModule, m.Name)
	}

	w := writer.NewWriter(indent)
	g.writeHeader(w, imports)
	g.generateRegistryClass(w, models, version)
	return w.Bytes(), nil
}
