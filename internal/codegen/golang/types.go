package golang

import (
	"go/token"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/naming"
	"github.com/okra-platform/modelgen/internal/schema"
)

// kind classifies how a field is stored and compared
type kind int

const (
	// kindValue is a required scalar or enum stored by value
	kindValue kind = iota
	// kindOptional is a nullable scalar or enum stored behind a pointer
	kindOptional
	// kindModel is a reference to another model, always a pointer
	kindModel
	// kindList is a slice of scalars or enums
	kindList
	// kindModelList is a slice of model pointers
	kindModelList
)

// builtins maps schema scalars to Go types. Entries containing a dot are
// "importpath.Name" references.
var builtins = map[string]string{
	"ID":           "string",
	"String":       "string",
	"Int":          "int",
	"Float":        "float64",
	"Boolean":      "bool",
	"AWSDate":      "time.Time",
	"AWSDateTime":  "time.Time",
	"AWSTime":      "time.Time",
	"AWSTimestamp": "int64",
	"AWSEmail":     "string",
	"AWSJSON":      "string",
	"AWSURL":       "string",
	"AWSPhone":     "string",
	"AWSIPAddress": "string",
}

// typeMapper resolves schema types against one schema and option set
type typeMapper struct {
	schema *schema.Schema
	opts   codegen.Options
}

// scalar returns the Go type of a non-list, non-model type reference
func (t typeMapper) scalar(typ string) *jen.Statement {
	if custom, ok := t.opts.Scalar(typ); ok {
		return qualified(custom)
	}
	if mapped, ok := builtins[typ]; ok {
		return qualified(mapped)
	}
	return jen.Id(typ)
}

func (t typeMapper) isModel(typ string) bool {
	_, ok := t.schema.Model(typ)
	return ok
}

// qualified turns "time.Time" or "github.com/shopspring/decimal.Decimal"
// into a jen qualified reference, and a bare name into an identifier
func qualified(ref string) *jen.Statement {
	i := strings.LastIndex(ref, ".")
	if i < 0 {
		return jen.Id(ref)
	}
	return jen.Qual(ref[:i], ref[i+1:])
}

// member is the per-field naming and typing used throughout a model
type member struct {
	field    schema.Field
	name     string // unexported struct field and parameter name
	exported string // getter and builder method name
	constant string // query-field constant
	kind     kind
	typ      func() *jen.Statement // stored type
	param    func() *jen.Statement // setter parameter type
}

func (t typeMapper) member(m schema.Model, f schema.Field) member {
	mem := member{
		field:    f,
		name:     unexported(f.Name),
		exported: exported(f.Name),
		constant: m.Name + "Field" + exported(f.Name),
	}

	if elem, ok := schema.ListElem(f.Type); ok {
		if t.isModel(elem) {
			mem.kind = kindModelList
			mem.typ = func() *jen.Statement { return jen.Index().Op("*").Id(elem) }
		} else {
			mem.kind = kindList
			mem.typ = func() *jen.Statement { return jen.Index().Add(t.scalar(elem)) }
		}
		mem.param = mem.typ
		return mem
	}

	switch {
	case f.IsIdentity():
		// identities are validated strings regardless of nullability
		mem.kind = kindValue
		mem.typ = func() *jen.Statement { return jen.String() }
		mem.param = mem.typ
	case t.isModel(f.Type):
		mem.kind = kindModel
		mem.typ = func() *jen.Statement { return jen.Op("*").Id(f.Type) }
		mem.param = mem.typ
	case f.Required:
		mem.kind = kindValue
		mem.typ = func() *jen.Statement { return t.scalar(f.Type) }
		mem.param = mem.typ
	default:
		mem.kind = kindOptional
		mem.typ = func() *jen.Statement { return jen.Op("*").Add(t.scalar(f.Type)) }
		mem.param = func() *jen.Statement { return t.scalar(f.Type) }
	}
	return mem
}

// exported converts a raw identifier to an exported Go name, upper-casing a
// trailing "Id" ("postId" -> "PostID", "id" -> "ID")
func exported(name string) string {
	s := naming.UpperCamel(name)
	if strings.HasSuffix(s, "Id") {
		s = strings.TrimSuffix(s, "Id") + "ID"
	}
	return s
}

// unexported converts a raw identifier to an unexported Go name that is
// never a keyword
func unexported(name string) string {
	s := naming.LowerCamel(name)
	if token.IsKeyword(s) {
		s += "_"
	}
	return s
}

// namer supplies Go names to the step-builder planner
type namer struct{}

func (namer) StepInterface(m schema.Model, f schema.Field) string {
	return m.Name + exported(f.Name) + "Step"
}

func (namer) TerminalInterface(m schema.Model) string { return m.Name + "BuildStep" }

func (namer) Setter(f schema.Field) string { return exported(f.Name) }

func (namer) BuildMethod() string { return "Build" }
