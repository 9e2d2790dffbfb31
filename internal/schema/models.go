package schema

// IdentityField is the field name that plays the role of a model's identity
const IdentityField = "id"

// Schema is the root of a parsed schema file
type Schema struct {
	Models []Model    `json:"models" msgpack:"models"`
	Enums  []EnumType `json:"enums" msgpack:"enums"`
	Meta   Metadata   `json:"meta" msgpack:"-"`
}

// Metadata represents global metadata declared with the @schema header
type Metadata struct {
	Package string `json:"package"`
	Version string `json:"version"`
}

// Model represents a top-level "type" block that becomes one generated class
type Model struct {
	Name       string      `json:"name" msgpack:"name"`
	Doc        string      `json:"doc" msgpack:"-"`
	Fields     []Field     `json:"fields" msgpack:"fields"`
	Directives []Directive `json:"directives" msgpack:"directives,omitempty"`
}

// Field represents a field inside a model
type Field struct {
	Name       string      `json:"name" msgpack:"name"`
	Type       string      `json:"type" msgpack:"type"`
	Required   bool        `json:"required" msgpack:"required"`
	Directives []Directive `json:"directives" msgpack:"directives,omitempty"`
	Doc        string      `json:"doc" msgpack:"-"`
}

// EnumType represents an enum definition
type EnumType struct {
	Name   string      `json:"name" msgpack:"name"`
	Doc    string      `json:"doc" msgpack:"-"`
	Values []EnumValue `json:"values" msgpack:"values"`
}

// EnumValue represents a single value inside an enum
type EnumValue struct {
	Name string `json:"name" msgpack:"name"`
	Doc  string `json:"doc" msgpack:"-"`
}

// Directive represents an attached directive (e.g. @model, @key, @connection)
type Directive struct {
	Name string           `json:"name" msgpack:"name"`
	Args map[string]Value `json:"args" msgpack:"args,omitempty"`
}

// Model returns the model with the given name
func (s *Schema) Model(name string) (Model, bool) {
	for _, m := range s.Models {
		if m.Name == name {
			return m, true
		}
	}
	return Model{}, false
}

// Enum returns the enum with the given name
func (s *Schema) Enum(name string) (EnumType, bool) {
	for _, e := range s.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return EnumType{}, false
}

// IsEnum reports whether typ names an enum declared in the schema
func (s *Schema) IsEnum(typ string) bool {
	_, ok := s.Enum(typ)
	return ok
}

// ModelNames returns the model names in declaration order
func (s *Schema) ModelNames() []string {
	names := make([]string, 0, len(s.Models))
	for _, m := range s.Models {
		names = append(names, m.Name)
	}
	return names
}

// Identity returns the model's identity field
func (m Model) Identity() (Field, bool) {
	for _, f := range m.Fields {
		if f.IsIdentity() {
			return f, true
		}
	}
	return Field{}, false
}

// WithIdentity returns the model with an `id: ID!` field prepended when it
// does not declare one. The receiver is not modified.
func (m Model) WithIdentity() Model {
	if _, ok := m.Identity(); ok {
		return m
	}
	fields := make([]Field, 0, len(m.Fields)+1)
	fields = append(fields, Field{Name: IdentityField, Type: "ID", Required: true})
	fields = append(fields, m.Fields...)
	m.Fields = fields
	return m
}

// IsIdentity reports whether the field is the model's identity
func (f Field) IsIdentity() bool {
	return f.Name == IdentityField
}

// Nullable reports whether the field may be omitted
func (f Field) Nullable() bool {
	return !f.Required
}

// ListElem returns the element type of a list type such as "[Comment]"
func ListElem(typ string) (string, bool) {
	if len(typ) >= 2 && typ[0] == '[' && typ[len(typ)-1] == ']' {
		return typ[1 : len(typ)-1], true
	}
	return "", false
}
