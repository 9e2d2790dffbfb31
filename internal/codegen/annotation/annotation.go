// Package annotation translates schema directives into typed annotations.
//
// Model-level and field-level directives are dispatched through fixed maps
// from directive name to translation function; names without an entry are
// dropped. The resulting annotations are language neutral: each target
// renders them in its own syntax, either through Render or by walking the
// typed arguments directly.
package annotation

import (
	"strconv"
	"strings"

	"github.com/okra-platform/modelgen/internal/naming"
	"github.com/okra-platform/modelgen/internal/schema"
)

// Annotation names produced by the mapper
const (
	ModelConfig = "ModelConfig"
	Index       = "Index"
	ModelField  = "ModelField"
	Connection  = "Connection"
)

// DefaultIndexName is used by a key directive that does not name its index
const DefaultIndexName = "undefined"

// Kind is the type of an annotation argument value
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindList
)

// Arg is one typed annotation argument
type Arg struct {
	Key  string
	Kind Kind
	Str  string
	Int  int
	Bool bool
	List []string
}

// Annotation is a named annotation with ordered arguments
type Annotation struct {
	Name string
	Args []Arg
}

// Arg returns the argument with the given key
func (a Annotation) Arg(key string) (Arg, bool) {
	for _, arg := range a.Args {
		if arg.Key == key {
			return arg, true
		}
	}
	return Arg{}, false
}

type modelTranslator func(m schema.Model, d schema.Directive) Annotation

type fieldTranslator func(f schema.Field, d schema.Directive) Annotation

var modelDirectives = map[string]modelTranslator{
	"model": modelConfig,
	"key":   index,
}

var fieldDirectives = map[string]fieldTranslator{
	"connection": connection,
}

// ForModel returns the annotations for a model's directives in declaration order
func ForModel(m schema.Model) []Annotation {
	var out []Annotation
	for _, d := range m.Directives {
		if translate, ok := modelDirectives[d.Name]; ok {
			out = append(out, translate(m, d))
		}
	}
	return out
}

// ForField returns the field-metadata annotation followed by the
// annotations for the field's directives
func ForField(f schema.Field) []Annotation {
	out := []Annotation{fieldMetadata(f)}
	for _, d := range f.Directives {
		if translate, ok := fieldDirectives[d.Name]; ok {
			out = append(out, translate(f, d))
		}
	}
	return out
}

func modelConfig(m schema.Model, _ schema.Directive) Annotation {
	return Annotation{
		Name: ModelConfig,
		Args: []Arg{
			{Key: "name", Kind: KindString, Str: m.Name},
			{Key: "pluralName", Kind: KindString, Str: naming.Plural(m.Name)},
		},
	}
}

func index(_ schema.Model, d schema.Directive) Annotation {
	name, ok := d.String("name")
	if !ok {
		name = DefaultIndexName
	}
	fields, _ := d.Strings("fields")
	return Annotation{
		Name: Index,
		Args: []Arg{
			{Key: "name", Kind: KindString, Str: name},
			{Key: "fields", Kind: KindList, List: fields},
		},
	}
}

func fieldMetadata(f schema.Field) Annotation {
	target := f.Type
	elem, isList := schema.ListElem(f.Type)
	if isList {
		target = elem
	}

	a := Annotation{
		Name: ModelField,
		Args: []Arg{
			{Key: "name", Kind: KindString, Str: f.Name},
			{Key: "targetType", Kind: KindString, Str: target},
		},
	}
	if f.Required {
		a.Args = append(a.Args, Arg{Key: "isRequired", Kind: KindBool, Bool: true})
	}
	if isList {
		a.Args = append(a.Args, Arg{Key: "isArrayOrList", Kind: KindBool, Bool: true})
	}
	return a
}

// connectionStrings are the string arguments a connection may carry, in render order
var connectionStrings = []string{"name", "keyField", "sortField", "keyName"}

func connection(_ schema.Field, d schema.Directive) Annotation {
	a := Annotation{Name: Connection}
	for _, key := range connectionStrings {
		if v, ok := d.String(key); ok {
			a.Args = append(a.Args, Arg{Key: key, Kind: KindString, Str: v})
		}
	}
	if limit, ok := d.Int("limit"); ok {
		a.Args = append(a.Args, Arg{Key: "limit", Kind: KindInt, Int: limit})
	}
	if fields, ok := d.Strings("fields"); ok {
		a.Args = append(a.Args, Arg{Key: "fields", Kind: KindList, List: fields})
	}
	return a
}

// Syntax describes how a target spells an annotation
type Syntax struct {
	Prefix    string // "@"
	Open      string // "(" for Java, "({ " for TypeScript
	Close     string
	NoArgs    string // rendered after the name when there are no arguments
	Assign    string // " = " for Java, ": " for TypeScript
	ListOpen  string
	ListClose string
}

// Render spells the annotation in the given syntax. Strings are double
// quoted; lists are rendered as one bracketed list.
func (a Annotation) Render(s Syntax) string {
	var sb strings.Builder
	sb.WriteString(s.Prefix)
	sb.WriteString(a.Name)
	if len(a.Args) == 0 {
		sb.WriteString(s.NoArgs)
		return sb.String()
	}

	sb.WriteString(s.Open)
	for i, arg := range a.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Key)
		sb.WriteString(s.Assign)
		sb.WriteString(arg.render(s))
	}
	sb.WriteString(s.Close)
	return sb.String()
}

func (arg Arg) render(s Syntax) string {
	switch arg.Kind {
	case KindInt:
		return strconv.Itoa(arg.Int)
	case KindBool:
		return strconv.FormatBool(arg.Bool)
	case KindList:
		quoted := make([]string, len(arg.List))
		for i, item := range arg.List {
			quoted[i] = strconv.Quote(item)
		}
		return s.ListOpen + strings.Join(quoted, ", ") + s.ListClose
	default:
		return strconv.Quote(arg.Str)
	}
}
