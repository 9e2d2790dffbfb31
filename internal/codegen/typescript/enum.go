package typescript

import (
	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
)

// generateEnum generates a string enum and its type guard
func (g *Generator) generateEnum(w *writer.Writer, enum schema.EnumType) {
	w.WriteDocBlock(enum.Doc)

	w.WriteBlock("export enum "+enum.Name+" {", "}", func() {
		for _, value := range enum.Values {
			w.WriteDocBlock(value.Doc)
			w.WriteLinef("%s = %q,", value.Name, value.Name)
		}
	})

	w.BlankLine()
	w.WriteBlock("export function is"+enum.Name+"(value: unknown): value is "+enum.Name+" {", "}", func() {
		w.WriteLinef("return Object.values(%s).includes(value as %s);", enum.Name, enum.Name)
	})
}
