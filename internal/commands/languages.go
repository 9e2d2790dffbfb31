package commands

import (
	"context"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/codegen/targets"
)

// Languages prints the registered target languages
func (c *Controller) Languages(ctx context.Context) error {
	printLanguages(&defaultOutput{}, targets.DefaultRegistry)
	return nil
}

func printLanguages(out Output, registry *codegen.Registry) {
	for _, lang := range registry.Languages() {
		gen, err := registry.Get(lang, codegen.Options{})
		if err != nil {
			continue
		}
		out.Printf("%-12s %s (%s)\n", lang, gen.Language(), gen.FileExtension())
	}
}
