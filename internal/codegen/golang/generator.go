// Package golang generates immutable Go model types with staged builders,
// their enums, and the model registry.
package golang

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/dave/jennifer/jen"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/schema"
)

const (
	// DefaultPackage is used when neither the options nor the schema name a package
	DefaultPackage = "models"

	modelidPkg = "github.com/okra-platform/modelgen/pkg/modelid"
	header     = "Code generated by modelgen. DO NOT EDIT."
)

// Generator generates Go code from a model schema
type Generator struct {
	opts codegen.Options
}

// NewGenerator creates a new Go code generator
func NewGenerator(opts codegen.Options) *Generator {
	return &Generator{opts: opts}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "go"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".go"
}

// Layout returns LayoutPerMode: models, enums and registry share a package
func (g *Generator) Layout() codegen.FileLayout {
	return codegen.LayoutPerMode
}

// Generate runs one pass over the schema and returns gofmt-ed source
func (g *Generator) Generate(s *schema.Schema, pass codegen.Pass) ([]byte, error) {
	f := jen.NewFile(g.packageName(s))
	f.HeaderComment(header)

	var decls []jen.Code
	var emitErr error
	var err error
	switch pass.Mode {
	case codegen.ModeClasses:
		decls, emitErr, err = g.generateModels(s, pass)
	case codegen.ModeEnums:
		decls, err = g.generateEnums(s, pass)
	case codegen.ModeRegistry:
		decls, err = g.generateRegistry(s, pass)
	default:
		err = errors.Newf("unknown generation mode: %q", pass.Mode)
	}
	if err != nil {
		return nil, err
	}
	if emitErr != nil && !pass.BestEffort {
		return nil, emitErr
	}

	for i, d := range decls {
		if i > 0 {
			f.Line()
		}
		f.Add(d)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, errors.Wrap(err, "render go source")
	}
	return buf.Bytes(), emitErr
}

// packageName derives a Go package name: the configured name, else the last
// segment of the schema package, else DefaultPackage
func (g *Generator) packageName(s *schema.Schema) string {
	name := g.opts.PackageName
	if name == "" && s.Meta.Package != "" {
		parts := strings.Split(s.Meta.Package, ".")
		name = parts[len(parts)-1]
	}

	name = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return -1
	}, name)
	if name == "" || unicode.IsDigit(rune(name[0])) {
		return DefaultPackage
	}
	return name
}

// generateModels returns the declarations of every model that could be
// emitted, the per-model emission failures, and any selection error
func (g *Generator) generateModels(s *schema.Schema, pass codegen.Pass) ([]jen.Code, error, error) {
	models, err := pass.SelectModels(s)
	if err != nil {
		return nil, nil, err
	}

	types := typeMapper{schema: s, opts: g.opts}
	var decls []jen.Code
	emitErr := codegen.EachModel(models, pass.BestEffort, func(m schema.Model) error {
		modelDecls, err := emitModel(types, m)
		if err != nil {
			return err
		}
		decls = append(decls, modelDecls...)
		return nil
	})
	return decls, emitErr, nil
}

func (g *Generator) generateEnums(s *schema.Schema, pass codegen.Pass) ([]jen.Code, error) {
	enums, err := pass.SelectEnums(s)
	if err != nil {
		return nil, err
	}

	var decls []jen.Code
	for _, enum := range enums {
		decls = append(decls, emitEnum(enum)...)
	}
	return decls, nil
}

func (g *Generator) generateRegistry(s *schema.Schema, pass codegen.Pass) ([]jen.Code, error) {
	models, err := pass.SelectModels(s)
	if err != nil {
		return nil, err
	}
	version, err := codegen.Version(s)
	if err != nil {
		return nil, errors.Wrap(err, "compute registry version")
	}
	return emitRegistry(g.opts.Registry(), models, version), nil
}

// decl attaches doc comment lines to a top-level declaration
func decl(code jen.Code, doc ...string) jen.Code {
	s := jen.Null()
	for _, line := range doc {
		s.Comment(line).Line()
	}
	return s.Add(code)
}
