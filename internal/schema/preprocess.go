package schema

import (
	"regexp"
)

const (
	metadataType      = "_Schema"
	metadataDirective = "schema"
)

// schemaHeaderRegex matches a @schema(...) header at the start of a line,
// allowing one level of nested parentheses inside the arguments.
var schemaHeaderRegex = regexp.MustCompile(`(?m)^@schema\s*\(((?:[^()]*|\([^)]*\))*)\)`)

// PreprocessGraphQL rewrites the `@schema(...)` file header into a valid
// GraphQL type definition so the parser can read it as metadata.
func PreprocessGraphQL(input string) string {
	return schemaHeaderRegex.ReplaceAllStringFunc(input, func(match string) string {
		args := schemaHeaderRegex.FindStringSubmatch(match)[1]
		return `type ` + metadataType + ` {
  _: String @` + metadataDirective + `(` + args + `)
}`
	})
}
