package java

import (
	"sort"
	"strings"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/naming"
	"github.com/okra-platform/modelgen/internal/schema"
)

// scalars maps schema scalars to Java types. Qualified names are imported
// and shortened by importSet.qualify.
var scalars = map[string]string{
	"ID":           "String",
	"String":       "String",
	"Int":          "Integer",
	"Float":        "Double",
	"Boolean":      "Boolean",
	"AWSDate":      "java.time.LocalDate",
	"AWSDateTime":  "java.time.OffsetDateTime",
	"AWSTime":      "java.time.LocalTime",
	"AWSTimestamp": "Long",
	"AWSEmail":     "String",
	"AWSJSON":      "String",
	"AWSURL":       "String",
	"AWSPhone":     "String",
	"AWSIPAddress": "String",
}

// importSet accumulates the imports a class needs. One set is created per
// class emission and merged into the pass header afterwards.
type importSet map[string]struct{}

func (s importSet) add(path string) {
	s[path] = struct{}{}
}

func (s importSet) merge(other importSet) {
	for path := range other {
		s.add(path)
	}
}

// sorted returns the imports in lexical order; static imports sort last
func (s importSet) sorted() []string {
	paths := make([]string, 0, len(s))
	for path := range s {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// qualify registers a qualified type name and returns its simple name
func (s importSet) qualify(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return name
	}
	s.add(name)
	return name[i+1:]
}

func baseImports() importSet {
	imports := importSet{}
	for _, name := range []string{
		RuntimePackage + ".MalformedIdentityException",
		RuntimePackage + ".Model",
		RuntimePackage + ".annotations.ModelConfig",
		RuntimePackage + ".annotations.ModelField",
		RuntimePackage + ".query.QueryField",
		"static " + RuntimePackage + ".query.QueryField.field",
		"java.util.Objects",
		"java.util.UUID",
	} {
		imports.add(name)
	}
	return imports
}

func registryImports() importSet {
	imports := importSet{}
	for _, name := range []string{
		RuntimePackage + ".Model",
		RuntimePackage + ".ModelProvider",
		"java.util.Arrays",
		"java.util.Collections",
		"java.util.LinkedHashSet",
		"java.util.Set",
	} {
		imports.add(name)
	}
	return imports
}

// typeMapper resolves schema type references to Java types for one class
type typeMapper struct {
	opts    codegen.Options
	imports importSet
}

// javaType maps a declared type. Enums and models live in the generated
// package and are referenced by their simple name.
func (t typeMapper) javaType(typ string) string {
	if elem, ok := schema.ListElem(typ); ok {
		return t.imports.qualify("java.util.List") + "<" + t.javaType(elem) + ">"
	}
	if custom, ok := t.opts.Scalar(typ); ok {
		return t.imports.qualify(custom)
	}
	if mapped, ok := scalars[typ]; ok {
		return t.imports.qualify(mapped)
	}
	return typ
}

// member is the per-field naming used throughout a class
type member struct {
	field    schema.Field
	name     string
	getter   string
	constant string
	typ      string
}

func (t typeMapper) member(f schema.Field) member {
	typ := "String"
	if !f.IsIdentity() {
		typ = t.javaType(f.Type)
	}
	return member{
		field:    f,
		name:     javaName(f.Name),
		getter:   naming.Getter(f.Name),
		constant: naming.Constant(f.Name),
		typ:      typ,
	}
}

// javaName returns the lowerCamel member name, suffixed with "_" when it is a
// keyword or literal
func javaName(raw string) string {
	name := naming.LowerCamel(raw)
	if keywords[name] {
		return name + "_"
	}
	return name
}

// reservedGetters are final or structural methods of java.lang.Object
var reservedGetters = map[string]bool{"getClass": true}

var keywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true, "case": true,
	"catch": true, "char": true, "class": true, "const": true, "continue": true, "default": true,
	"do": true, "double": true, "else": true, "enum": true, "extends": true, "final": true,
	"finally": true, "float": true, "for": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true, "return": true,
	"short": true, "static": true, "strictfp": true, "super": true, "switch": true,
	"synchronized": true, "this": true, "throw": true, "throws": true, "transient": true,
	"try": true, "void": true, "volatile": true, "while": true, "true": true, "false": true,
	"null": true, "var": true, "record": true, "yield": true, "_": true,
}

// namer supplies Java names to the step-builder planner
type namer struct{}

func (namer) StepInterface(_ schema.Model, f schema.Field) string {
	return naming.UpperCamel(f.Name) + "Step"
}

func (namer) TerminalInterface(schema.Model) string { return "BuildStep" }

func (namer) Setter(f schema.Field) string { return javaName(f.Name) }

func (namer) BuildMethod() string { return "build" }
