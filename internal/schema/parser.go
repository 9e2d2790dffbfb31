package schema

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"
)

// rootOperationTypes never become models
var rootOperationTypes = map[string]bool{
	"Query":        true,
	"Mutation":     true,
	"Subscription": true,
}

// ParseSchema parses a GraphQL schema (after preprocessing) into our Schema model
func ParseSchema(input string) (*Schema, error) {
	preprocessed := PreprocessGraphQL(input)

	doc, report := astparser.ParseGraphqlDocumentString(preprocessed)
	if report.HasErrors() {
		return nil, errors.Newf("failed to parse GraphQL: %v", report)
	}

	schema := &Schema{
		Models: []Model{},
		Enums:  []EnumType{},
	}

	for i := range doc.RootNodes {
		node := &doc.RootNodes[i]
		switch node.Kind {
		case ast.NodeKindObjectTypeDefinition:
			parseObjectType(&doc, node.Ref, schema)
		case ast.NodeKindEnumTypeDefinition:
			parseEnumType(&doc, node.Ref, schema)
		}
	}

	return schema, nil
}

func parseObjectType(doc *ast.Document, ref int, schema *Schema) {
	typeDef := doc.ObjectTypeDefinitions[ref]
	typeName := doc.Input.ByteSliceString(typeDef.Name)

	if typeName == metadataType {
		parseMetadata(doc, typeDef, schema)
		return
	}
	if rootOperationTypes[typeName] {
		return
	}

	model := Model{
		Name:       typeName,
		Doc:        getDescription(doc, typeDef.Description),
		Fields:     []Field{},
		Directives: parseDirectives(doc, typeDef.Directives),
	}

	for _, fieldRef := range typeDef.FieldsDefinition.Refs {
		model.Fields = append(model.Fields, parseField(doc, fieldRef))
	}

	schema.Models = append(schema.Models, model)
}

func parseEnumType(doc *ast.Document, ref int, schema *Schema) {
	enumDef := doc.EnumTypeDefinitions[ref]

	enumType := EnumType{
		Name:   doc.Input.ByteSliceString(enumDef.Name),
		Doc:    getDescription(doc, enumDef.Description),
		Values: []EnumValue{},
	}

	for _, valueRef := range enumDef.EnumValuesDefinition.Refs {
		valueDef := doc.EnumValueDefinitions[valueRef]
		enumType.Values = append(enumType.Values, EnumValue{
			Name: doc.Input.ByteSliceString(valueDef.EnumValue),
			Doc:  getDescription(doc, valueDef.Description),
		})
	}

	schema.Enums = append(schema.Enums, enumType)
}

func parseMetadata(doc *ast.Document, typeDef ast.ObjectTypeDefinition, schema *Schema) {
	for _, fieldRef := range typeDef.FieldsDefinition.Refs {
		fieldDef := doc.FieldDefinitions[fieldRef]
		for _, d := range parseDirectives(doc, fieldDef.Directives) {
			if d.Name != metadataDirective {
				continue
			}
			schema.Meta.Package, _ = d.String("package")
			schema.Meta.Version, _ = d.String("version")
			return
		}
	}
}

func parseField(doc *ast.Document, fieldRef int) Field {
	fieldDef := doc.FieldDefinitions[fieldRef]

	field := Field{
		Name:       doc.Input.ByteSliceString(fieldDef.Name),
		Doc:        getDescription(doc, fieldDef.Description),
		Directives: parseDirectives(doc, fieldDef.Directives),
	}
	field.Type, field.Required = parseType(doc, fieldDef.Type)

	return field
}

// parseType renders a type reference as "Name" or "[Name]" and reports
// whether the outermost wrapper is non-null. Element nullability is dropped.
func parseType(doc *ast.Document, typeRef int) (string, bool) {
	required := false
	currentRef := typeRef

	if doc.Types[currentRef].TypeKind == ast.TypeKindNonNull {
		required = true
		currentRef = doc.Types[currentRef].OfType
	}

	if doc.Types[currentRef].TypeKind == ast.TypeKindList {
		innerType, _ := parseType(doc, doc.Types[currentRef].OfType)
		return "[" + innerType + "]", required
	}

	if doc.Types[currentRef].TypeKind == ast.TypeKindNamed {
		return doc.Input.ByteSliceString(doc.Types[currentRef].Name), required
	}

	return "Unknown", required
}

func parseDirectives(doc *ast.Document, directives ast.DirectiveList) []Directive {
	result := []Directive{}

	for _, directiveRef := range directives.Refs {
		directive := doc.Directives[directiveRef]
		result = append(result, Directive{
			Name: doc.Input.ByteSliceString(directive.Name),
			Args: parseDirectiveArgs(doc, directive),
		})
	}

	return result
}

func parseDirectiveArgs(doc *ast.Document, directive ast.Directive) map[string]Value {
	args := make(map[string]Value)

	for _, argRef := range directive.Arguments.Refs {
		arg := doc.Arguments[argRef]
		argName := doc.Input.ByteSliceString(arg.Name)
		args[argName] = parseValue(doc, doc.ArgumentValue(argRef))
	}

	return args
}

func parseValue(doc *ast.Document, value ast.Value) Value {
	if value.Kind == ast.ValueKindList {
		items := []string{}
		for _, ref := range doc.ListValues[value.Ref].Refs {
			items = append(items, parseScalar(doc, doc.Values[ref]))
		}
		return ListValue(items...)
	}
	return StringValue(parseScalar(doc, value))
}

func parseScalar(doc *ast.Document, value ast.Value) string {
	switch value.Kind {
	case ast.ValueKindString:
		return doc.StringValueContentString(value.Ref)

	case ast.ValueKindEnum:
		if value.Ref >= 0 && value.Ref < len(doc.EnumValues) {
			return doc.Input.ByteSliceString(doc.EnumValues[value.Ref].Name)
		}

	case ast.ValueKindBoolean:
		// Ref is 0 (false) or 1 (true)
		if value.Ref >= 0 && value.Ref < len(doc.BooleanValues) {
			if doc.BooleanValues[value.Ref] {
				return "true"
			}
			return "false"
		}

	case ast.ValueKindInteger:
		return fmt.Sprintf("%d", doc.IntValueAsInt(value.Ref))

	case ast.ValueKindFloat:
		return fmt.Sprintf("%g", doc.FloatValueAsFloat32(value.Ref))
	}

	return ""
}

func getDescription(doc *ast.Document, desc ast.Description) string {
	if !desc.IsDefined {
		return ""
	}

	return doc.Input.ByteSliceString(desc.Content)
}
