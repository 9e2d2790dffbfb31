package typescript

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/naming"
	"github.com/okra-platform/modelgen/internal/schema"
)

const (
	modelsModule = "./models"
	enumsModule  = "./enums"
)

// importSet maps a module to the names imported from it. One set is created
// per class emission and merged into the file header afterwards.
type importSet map[string]map[string]struct{}

func (s importSet) add(module, name string) {
	if s[module] == nil {
		s[module] = map[string]struct{}{}
	}
	s[module][name] = struct{}{}
}

func (s importSet) merge(other importSet) {
	for module, names := range other {
		for name := range names {
			s.add(module, name)
		}
	}
}

// lines renders one import statement per module, modules and names sorted
func (s importSet) lines() []string {
	modules := make([]string, 0, len(s))
	for module := range s {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	lines := make([]string, 0, len(modules))
	for _, module := range modules {
		names := make([]string, 0, len(s[module]))
		for name := range s[module] {
			names = append(names, name)
		}
		sort.Strings(names)
		lines = append(lines, fmt.Sprintf("import { %s } from %q;", strings.Join(names, ", "), module))
	}
	return lines
}

// qualify registers a "module#Name" reference and returns the bare name
func (s importSet) qualify(ref string) string {
	module, name, ok := strings.Cut(ref, "#")
	if !ok {
		return ref
	}
	s.add(module, name)
	return name
}

func baseImports() importSet {
	imports := importSet{}
	for _, name := range []string{"MalformedIdentityError", "Model", "ModelConfig", "ModelField", "QueryField", "field", "valuesEqual"} {
		imports.add(RuntimeModule, name)
	}
	imports.add("uuid", "v4 as uuidv4")
	return imports
}

// typeMapper resolves schema type references for one class
type typeMapper struct {
	schema  *schema.Schema
	opts    codegen.Options
	imports importSet
}

// mapToTSType maps schema types to TypeScript types
func (t typeMapper) mapToTSType(typ string) string {
	// Handle array types
	if elem, ok := schema.ListElem(typ); ok {
		return t.mapToTSType(elem) + "[]"
	}
	if custom, ok := t.opts.Scalar(typ); ok {
		return t.imports.qualify(custom)
	}

	// Map basic types
	switch typ {
	case "ID", "String", "AWSEmail", "AWSJSON", "AWSURL", "AWSPhone", "AWSIPAddress":
		return "string"
	case "AWSDate", "AWSDateTime", "AWSTime":
		return "string"
	case "Int", "Float", "AWSTimestamp":
		return "number"
	case "Boolean":
		return "boolean"
	}

	if t.schema.IsEnum(typ) {
		t.imports.add(enumsModule, typ)
	}
	return typ
}

type member struct {
	field    schema.Field
	name     string
	slot     string // builder property, kept apart from the setter method
	arg      string // parameter name, escaped when name is a reserved word
	getter   string
	constant string
	typ      string // stored type, "| undefined" for nullable fields
	param    string
}

func (t typeMapper) member(f schema.Field) member {
	var param string
	if f.IsIdentity() {
		param = "string"
	} else {
		param = t.mapToTSType(f.Type)
	}
	typ := param
	if f.Nullable() && !f.IsIdentity() {
		typ += " | undefined"
	}
	name := naming.LowerCamel(f.Name)
	arg := name
	if reserved[name] {
		arg += "_"
	}
	return member{
		field:    f,
		name:     name,
		slot:     "_" + name,
		arg:      arg,
		getter:   naming.Getter(f.Name),
		constant: naming.Constant(f.Name),
		typ:      typ,
		param:    param,
	}
}

// namer prefixes contracts with the model name since they live at module level
type namer struct{}

func (namer) StepInterface(m schema.Model, f schema.Field) string {
	return m.Name + naming.UpperCamel(f.Name) + "Step"
}

func (namer) TerminalInterface(m schema.Model) string { return m.Name + "BuildStep" }

func (namer) Setter(f schema.Field) string { return naming.LowerCamel(f.Name) }

func (namer) BuildMethod() string { return "build" }

// reserved words cannot name a parameter
var reserved = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true, "else": true,
	"enum": true, "export": true, "extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "implements": true, "import": true, "in": true, "instanceof": true,
	"interface": true, "let": true, "new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "static": true, "super": true, "switch": true,
	"this": true, "throw": true, "true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true, "arguments": true, "eval": true,
}
