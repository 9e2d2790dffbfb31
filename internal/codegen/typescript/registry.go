package typescript

import (
	"strings"

	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
)

// generateRegistryClass generates the lazily created registry singleton
func (g *Generator) generateRegistryClass(w *writer.Writer, models []schema.Model, version string) {
	name := g.opts.Registry()
	classes := make([]string, 0, len(models))
	for _, m := range models {
		classes = append(classes, m.Name)
	}

	w.WriteLinef("const MODELS_VERSION = %q;", version)
	w.BlankLine()

	w.WriteDocBlock("Contains the set of model classes that implement the Model interface.")
	w.WriteBlock("export class "+name+" implements ModelProvider {", "}", func() {
		w.WriteLinef("private static instance: %s | undefined;", name)
		w.BlankLine()
		w.WriteLine("private constructor() {}")
		w.BlankLine()

		w.WriteBlock("static getInstance(): "+name+" {", "}", func() {
			w.WriteBlock("if (!"+name+".instance) {", "}", func() {
				w.WriteLinef("%s.instance = new %s();", name, name)
			})
			w.WriteLinef("return %s.instance;", name)
		})
		w.BlankLine()

		w.WriteBlock("models(): ReadonlySet<ModelType> {", "}", func() {
			w.WriteLinef("return new Set<ModelType>([%s]);", strings.Join(classes, ", "))
		})
		w.BlankLine()

		w.WriteBlock("version(): string {", "}", func() {
			w.WriteLine("return MODELS_VERSION;")
		})
	})
}
