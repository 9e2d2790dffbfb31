// Package naming maps raw schema identifiers to the casing conventions used
// by the generated code.
package naming

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// LowerCamel converts a raw identifier to lowerCamelCase ("post_id" -> "postId")
func LowerCamel(name string) string {
	if name == "" {
		return ""
	}
	return inflect.CamelizeDownFirst(name)
}

// UpperCamel converts a raw identifier to UpperCamelCase ("postId" -> "PostId")
func UpperCamel(name string) string {
	if name == "" {
		return ""
	}
	return inflect.Camelize(name)
}

// Constant converts a raw identifier to CONSTANT_CASE ("postId" -> "POST_ID")
func Constant(name string) string {
	return strings.ToUpper(inflect.Underscore(name))
}

// Plural returns the plural form of a type name ("Post" -> "Posts")
func Plural(name string) string {
	if name == "" {
		return ""
	}
	return inflect.Pluralize(name)
}

// Getter returns the accessor name for a field ("title" -> "getTitle")
func Getter(name string) string {
	return "get" + UpperCamel(name)
}
