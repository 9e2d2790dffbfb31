package java

import (
	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
)

// emitEnum renders an enum with every value once, in declared order
func emitEnum(w *writer.Writer, enum schema.EnumType) {
	w.WriteDocBlock(enum.Doc)
	w.WriteBlock("public enum "+enum.Name+" {", "}", func() {
		for i, value := range enum.Values {
			w.WriteDocBlock(value.Doc)
			sep := ","
			if i == len(enum.Values)-1 {
				sep = ""
			}
			w.WriteLine(value.Name + sep)
		}
	})
}
