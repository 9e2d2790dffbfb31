package java

import (
	"strings"

	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/naming"
	"github.com/okra-platform/modelgen/internal/schema"
)

// emitRegistry renders the lazily created singleton that lists the
// generated model classes in schema order
func emitRegistry(w *writer.Writer, name string, models []schema.Model, version string) {
	instance := naming.LowerCamel(name) + "Instance"

	classes := make([]string, 0, len(models))
	for _, m := range models {
		classes = append(classes, m.Name+".class")
	}

	w.WriteDocBlock("Contains the set of model classes that implement the {@link Model} interface.")
	w.WriteBlock("public final class "+name+" implements ModelProvider {", "}", func() {
		w.WriteLinef("private static final String MODELS_VERSION = %q;", version)
		w.WriteLinef("private static %s %s;", name, instance)
		w.BlankLine()

		w.WriteBlock("private "+name+"() {", "}", func() {})
		w.BlankLine()

		w.WriteBlock("public static synchronized "+name+" getInstance() {", "}", func() {
			w.WriteBlock("if ("+instance+" == null) {", "}", func() {
				w.WriteLinef("%s = new %s();", instance, name)
			})
			w.WriteLinef("return %s;", instance)
		})
		w.BlankLine()

		w.WriteLine("@Override")
		w.WriteBlock("public Set<Class<? extends Model>> models() {", "}", func() {
			w.WriteLinef("return Collections.unmodifiableSet(new LinkedHashSet<>(Arrays.<Class<? extends Model>>asList(%s)));",
				strings.Join(classes, ", "))
		})
		w.BlankLine()

		w.WriteLine("@Override")
		w.WriteBlock("public String version() {", "}", func() {
			w.WriteLine("return MODELS_VERSION;")
		})
	})
}
