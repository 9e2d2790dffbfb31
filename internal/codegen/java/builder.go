package java

import (
	"strconv"
	"strings"

	"github.com/okra-platform/modelgen/pkg/modelid"
)

const builderClass = "Builder"

// canonicalIDPattern matches the same 8-4-4-4-12 form as modelid.Validate
const canonicalIDPattern = `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`

// memberFor returns the member naming of a planned field
func (c *classEmitter) memberFor(name string) member {
	for _, m := range c.members {
		if m.field.Name == name {
			return m
		}
	}
	return member{}
}

func (c *classEmitter) emitStepInterfaces() {
	w := c.w
	p := c.plan

	for _, step := range p.Steps {
		m := c.memberFor(step.Field.Name)
		w.WriteBlock("public interface "+step.Interface+" {", "}", func() {
			w.WriteLinef("%s %s(%s %s);", step.Next, step.Method, m.typ, m.name)
		})
		w.BlankLine()
	}

	identity := c.memberFor(p.Identity.Name)
	w.WriteBlock("public interface "+p.Terminal+" {", "}", func() {
		w.WriteLinef("%s %s();", c.model.Name, p.BuildMethod)
		w.WriteLinef("%s %s(%s %s) throws MalformedIdentityException;", p.Terminal, p.IdentitySetter, identity.typ, identity.name)
		for _, f := range p.Optional {
			m := c.memberFor(f.Name)
			w.WriteLinef("%s %s(%s %s);", p.Terminal, p.Setter(f), m.typ, m.name)
		}
	})
}

func (c *classEmitter) emitBuilder() {
	w := c.w
	p := c.plan
	c.imports.add("java.util.regex.Pattern")

	w.WriteBlock("public static "+p.Entry+" builder() {", "}", func() {
		w.WriteLinef("return new %s();", builderClass)
	})
	w.BlankLine()

	w.WriteBlock("public static class "+builderClass+" implements "+strings.Join(p.Interfaces(), ", ")+" {", "}", func() {
		w.WriteLinef("private static final Pattern CANONICAL_ID = Pattern.compile(%s);", strconv.Quote(canonicalIDPattern))
		w.BlankLine()
		for _, m := range c.members {
			w.WriteLinef("private %s %s;", m.typ, m.name)
		}
		w.BlankLine()

		c.emitBuild()

		for _, step := range p.Steps {
			m := c.memberFor(step.Field.Name)
			w.BlankLine()
			w.WriteLine("@Override")
			w.WriteBlock("public "+step.Next+" "+step.Method+"("+m.typ+" "+m.name+") {", "}", func() {
				w.WriteLinef("Objects.requireNonNull(%s);", m.name)
				w.WriteLinef("this.%s = %s;", m.name, m.name)
				w.WriteLine("return this;")
			})
		}

		for _, f := range p.Optional {
			m := c.memberFor(f.Name)
			w.BlankLine()
			w.WriteLine("@Override")
			w.WriteBlock("public "+p.Terminal+" "+p.Setter(f)+"("+m.typ+" "+m.name+") {", "}", func() {
				w.WriteLinef("this.%s = %s;", m.name, m.name)
				w.WriteLine("return this;")
			})
		}

		w.BlankLine()
		c.emitIdentitySetter()
	})
}

func (c *classEmitter) emitBuild() {
	w := c.w
	p := c.plan
	identity := c.memberFor(p.Identity.Name)

	args := make([]string, 0, len(c.members))
	for _, m := range c.members {
		args = append(args, m.name)
	}

	w.WriteLine("@Override")
	w.WriteBlock("public "+c.model.Name+" "+p.BuildMethod+"() {", "}", func() {
		w.WriteLinef("%s %s = this.%s != null ? this.%s : UUID.randomUUID().toString();",
			identity.typ, identity.name, identity.name, identity.name)
		w.WriteLinef("return new %s(%s);", c.model.Name, strings.Join(args, ", "))
	})
}

// emitIdentitySetter renders the validated identity setter. The failure is
// recoverable: the builder is left untouched.
func (c *classEmitter) emitIdentitySetter() {
	w := c.w
	p := c.plan
	identity := c.memberFor(p.Identity.Name)

	w.WriteDocBlock("@param " + identity.name + " the model identity" +
		"\n@return the terminal step, for fluent method chaining" +
		"\n@throws MalformedIdentityException when the identity is not a canonical UUID")
	w.WriteLine("@Override")
	w.WriteBlock("public "+p.Terminal+" "+p.IdentitySetter+"("+identity.typ+" "+identity.name+") throws MalformedIdentityException {", "}", func() {
		w.WriteBlock("if ("+identity.name+" == null || !CANONICAL_ID.matcher("+identity.name+").matches()) {", "}", func() {
			w.WriteLine("throw new MalformedIdentityException(")
			w.Indent()
			w.WriteLinef("%s + %s,", strconv.Quote(modelid.Message+": "), identity.name)
			w.WriteLinef("%s,", strconv.Quote(modelid.Hint))
			w.WriteLine("true);")
			w.Dedent()
		})
		w.WriteLinef("this.%s = %s;", identity.name, identity.name)
		w.WriteLine("return this;")
	})
}
