package java

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/okra-platform/modelgen/internal/codegen/annotation"
	"github.com/okra-platform/modelgen/internal/codegen/stepbuilder"
	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
)

var syntax = annotation.Syntax{
	Prefix:    "@",
	Open:      "(",
	Close:     ")",
	Assign:    " = ",
	ListOpen:  "{",
	ListClose: "}",
}

// optionalAnnotations are imported only by classes that use them
var optionalAnnotations = map[string]string{
	annotation.Index:      RuntimePackage + ".annotations.Index",
	annotation.Connection: RuntimePackage + ".annotations.Connection",
}

// classEmitter renders one model class
type classEmitter struct {
	w       *writer.Writer
	model   schema.Model
	plan    *stepbuilder.Plan
	members []member
	imports importSet
}

// emitClass renders one model and returns its body with the imports it needs
func (g *Generator) emitClass(m schema.Model) (string, importSet, error) {
	plan, err := stepbuilder.New(m, namer{})
	if err != nil {
		return "", nil, err
	}

	imports := importSet{}
	mapper := typeMapper{opts: g.opts, imports: imports}
	c := &classEmitter{
		w:       writer.NewWriter(indent),
		model:   plan.Model,
		plan:    plan,
		imports: imports,
	}
	for _, f := range plan.Fields() {
		mem := mapper.member(f)
		if reservedGetters[mem.getter] {
			return "", nil, errors.AssertionFailedf("model %s: field %q would override Object.%s()", m.Name, f.Name, mem.getter)
		}
		c.members = append(c.members, mem)
	}

	c.emit()
	return c.w.String(), imports, nil
}

func (c *classEmitter) emit() {
	w := c.w
	w.WriteDocBlock(c.model.Doc)
	for _, a := range annotation.ForModel(c.model) {
		w.WriteLine(c.annotate(a))
	}

	w.WriteBlock("public final class "+c.model.Name+" implements Model {", "}", func() {
		c.emitQueryFields()
		w.BlankLine()
		c.emitMembers()
		w.BlankLine()
		c.emitStepInterfaces()
		w.BlankLine()
		c.emitBuilder()
		w.BlankLine()
		c.emitGetters()
		w.BlankLine()
		c.emitConstructor()
		w.BlankLine()
		c.emitEquals()
		w.BlankLine()
		c.emitHashCode()
		w.BlankLine()
		c.emitToString()
	})
}

// annotate renders an annotation and imports it when it is not one of the base imports
func (c *classEmitter) annotate(a annotation.Annotation) string {
	if path, ok := optionalAnnotations[a.Name]; ok {
		c.imports.add(path)
	}
	return a.Render(syntax)
}

func (c *classEmitter) emitQueryFields() {
	for _, m := range c.members {
		c.w.WriteLinef("public static final QueryField %s = field(%q, %q);", m.constant, c.model.Name, m.field.Name)
	}
}

func (c *classEmitter) emitMembers() {
	for _, m := range c.members {
		annotations := annotation.ForField(m.field)
		rendered := make([]string, 0, len(annotations))
		for _, a := range annotations {
			rendered = append(rendered, c.annotate(a))
		}
		c.w.WriteDocBlock(m.field.Doc)
		c.w.WriteLinef("private final %s %s %s;", strings.Join(rendered, " "), m.typ, m.name)
	}
}

func (c *classEmitter) emitGetters() {
	w := c.w
	for i, m := range c.members {
		if i > 0 {
			w.BlankLine()
		}
		w.WriteBlock("public "+m.typ+" "+m.getter+"() {", "}", func() {
			w.WriteLinef("return %s;", m.name)
		})
	}
}

func (c *classEmitter) emitConstructor() {
	w := c.w
	params := make([]string, 0, len(c.members))
	for _, m := range c.members {
		params = append(params, m.typ+" "+m.name)
	}
	w.WriteBlock("private "+c.model.Name+"("+strings.Join(params, ", ")+") {", "}", func() {
		for _, m := range c.members {
			w.WriteLinef("this.%s = %s;", m.name, m.name)
		}
	})
}

func (c *classEmitter) emitEquals() {
	w := c.w
	w.WriteLine("@Override")
	w.WriteBlock("public boolean equals(Object obj) {", "}", func() {
		w.WriteBlock("if (this == obj) {", "}", func() {
			w.WriteLine("return true;")
		})
		w.WriteBlock("if (obj == null || getClass() != obj.getClass()) {", "}", func() {
			w.WriteLine("return false;")
		})
		w.WriteLinef("%s other = (%s) obj;", c.model.Name, c.model.Name)

		w.Write("return ")
		w.Indent()
		for i, m := range c.members {
			sep := " &&"
			if i == len(c.members)-1 {
				sep = ";"
			}
			w.WriteLinef("Objects.equals(%s(), other.%s())%s", m.getter, m.getter, sep)
		}
		w.Dedent()
	})
}

func (c *classEmitter) emitHashCode() {
	w := c.w
	w.WriteLine("@Override")
	w.WriteBlock("public int hashCode() {", "}", func() {
		w.WriteLine("return new StringBuilder()")
		w.Indent()
		for _, m := range c.members {
			w.WriteLinef(".append(%s())", m.getter)
		}
		w.WriteLine(".toString()")
		w.WriteLine(".hashCode();")
		w.Dedent()
	})
}

func (c *classEmitter) emitToString() {
	w := c.w
	w.WriteLine("@Override")
	w.WriteBlock("public String toString() {", "}", func() {
		w.WriteLinef("return new StringBuilder(%q)", c.model.Name+" {")
		w.Indent()
		for i, m := range c.members {
			sep := ", "
			if i == len(c.members)-1 {
				sep = ""
			}
			w.WriteLinef(".append(%q).append(String.valueOf(%s())).append(%q)", m.field.Name+"=", m.getter, sep)
		}
		w.WriteLine(`.append("}")`)
		w.WriteLine(".toString();")
		w.Dedent()
	})
}
