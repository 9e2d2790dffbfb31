// Package targets wires the built-in language generators into a registry.
package targets

import (
	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/codegen/golang"
	"github.com/okra-platform/modelgen/internal/codegen/java"
	"github.com/okra-platform/modelgen/internal/codegen/typescript"
)

// DefaultRegistry is the global registry instance with pre-registered generators
var DefaultRegistry = NewDefaultRegistry()

// NewDefaultRegistry returns a registry holding every built-in target
func NewDefaultRegistry() *codegen.Registry {
	r := codegen.NewRegistry()

	r.Register("java", func(opts codegen.Options) codegen.Generator {
		return java.NewGenerator(opts)
	})

	r.Register("go", func(opts codegen.Options) codegen.Generator {
		return golang.NewGenerator(opts)
	})

	r.Register("typescript", func(opts codegen.Options) codegen.Generator {
		return typescript.NewGenerator(opts)
	})

	// ts is an alias for typescript
	r.Register("ts", func(opts codegen.Options) codegen.Generator {
		return typescript.NewGenerator(opts)
	})

	return r
}
