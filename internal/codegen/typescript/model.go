package typescript

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/okra-platform/modelgen/internal/codegen/annotation"
	"github.com/okra-platform/modelgen/internal/codegen/stepbuilder"
	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
	"github.com/okra-platform/modelgen/pkg/modelid"
)

var syntax = annotation.Syntax{
	Prefix:    "@",
	Open:      "({ ",
	Close:     " })",
	NoArgs:    "()",
	Assign:    ": ",
	ListOpen:  "[",
	ListClose: "]",
}

// canonicalID matches the same 8-4-4-4-12 form as modelid.Validate
const canonicalID = `/^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$/`

type classEmitter struct {
	w       *writer.Writer
	model   schema.Model
	plan    *stepbuilder.Plan
	members []member
	byName  map[string]member
	imports importSet
}

// emitClass renders the step interfaces and the class of one model and
// returns them with the imports they need
func (g *Generator) emitClass(s *schema.Schema, m schema.Model) (string, importSet, error) {
	plan, err := stepbuilder.New(m, namer{})
	if err != nil {
		return "", nil, err
	}

	imports := importSet{}
	mapper := typeMapper{schema: s, opts: g.opts, imports: imports}
	c := &classEmitter{
		w:       writer.NewWriter(indent),
		model:   plan.Model,
		plan:    plan,
		byName:  make(map[string]member, len(plan.Model.Fields)),
		imports: imports,
	}
	for _, f := range plan.Fields() {
		mem := mapper.member(f)
		c.members = append(c.members, mem)
		c.byName[f.Name] = mem
	}

	if err := c.checkMembers(); err != nil {
		return "", nil, errors.Wrapf(err, "generate class %s", m.Name)
	}

	c.emitStepInterfaces()
	c.w.BlankLine()
	c.emitClass()
	return c.w.String(), imports, nil
}

// checkMembers rejects fields whose names collide with another member of the
// class or of its builder
func (c *classEmitter) checkMembers() error {
	instance := map[string]bool{"equals": true, "hashCode": true}
	static := map[string]bool{"builder": true, "Builder": true}
	builder := map[string]bool{c.plan.BuildMethod: true}
	for _, f := range c.plan.Fields() {
		builder[c.plan.Setter(f)] = true
	}

	for _, mem := range c.members {
		for _, name := range []string{mem.name, mem.getter} {
			if instance[name] {
				return errors.AssertionFailedf("field %q collides with class member %q", mem.field.Name, name)
			}
			instance[name] = true
		}
		if static[mem.constant] {
			return errors.AssertionFailedf("field %q collides with static member %q", mem.field.Name, mem.constant)
		}
		static[mem.constant] = true
		if builder[mem.slot] {
			return errors.AssertionFailedf("field %q collides with builder member %q", mem.field.Name, mem.slot)
		}
		builder[mem.slot] = true
	}
	return nil
}

func (c *classEmitter) decorate(a annotation.Annotation) string {
	if a.Name == annotation.Index || a.Name == annotation.Connection {
		c.imports.add(RuntimeModule, a.Name)
	}
	return a.Render(syntax)
}

func (c *classEmitter) emitStepInterfaces() {
	w := c.w
	p := c.plan

	for _, step := range p.Steps {
		mem := c.byName[step.Field.Name]
		w.WriteBlock("export interface "+step.Interface+" {", "}", func() {
			w.WriteLinef("%s(%s: %s): %s;", step.Method, mem.arg, mem.param, step.Next)
		})
		w.BlankLine()
	}

	identity := c.byName[p.Identity.Name]
	w.WriteBlock("export interface "+p.Terminal+" {", "}", func() {
		w.WriteLinef("%s(): %s;", p.BuildMethod, c.model.Name)
		w.WriteLinef("%s(%s: %s): %s;", p.IdentitySetter, identity.arg, identity.param, p.Terminal)
		for _, f := range p.Optional {
			mem := c.byName[f.Name]
			w.WriteLinef("%s(%s: %s): %s;", p.Setter(f), mem.arg, mem.param, p.Terminal)
		}
	})
}

func (c *classEmitter) emitClass() {
	w := c.w
	m := c.model

	w.WriteDocBlock(m.Doc)
	for _, a := range annotation.ForModel(m) {
		w.WriteLine(c.decorate(a))
	}
	w.WriteBlock("export class "+m.Name+" implements Model {", "}", func() {
		for _, mem := range c.members {
			w.WriteLinef("static readonly %s: QueryField = field(%q, %q);", mem.constant, m.Name, mem.field.Name)
		}
		w.BlankLine()

		for _, mem := range c.members {
			w.WriteDocBlock(mem.field.Doc)
			for _, a := range annotation.ForField(mem.field) {
				w.WriteLine(c.decorate(a))
			}
			w.WriteLinef("private readonly %s: %s;", mem.name, mem.typ)
		}
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
	})
}

func (c *classEmitter) emitBuilder() {
	w := c.w
	p := c.plan
	m := c.model
	identity := c.byName[p.Identity.Name]

	w.WriteBlock("static builder(): "+p.Entry+" {", "}", func() {
		w.WriteLinef("return new %s.Builder();", m.Name)
	})
	w.BlankLine()

	w.WriteBlock("private static readonly Builder = class implements "+strings.Join(p.Interfaces(), ", ")+" {", "};", func() {
		for _, mem := range c.members {
			w.WriteLinef("private %s: %s | undefined;", mem.slot, mem.param)
		}
		w.BlankLine()

		args := make([]string, 0, len(c.members))
		for _, mem := range c.members {
			switch {
			case mem.field.IsIdentity():
				args = append(args, mem.arg)
			case mem.field.Required:
				args = append(args, "this."+mem.slot+"!")
			default:
				args = append(args, "this."+mem.slot)
			}
		}
		w.WriteBlock(p.BuildMethod+"(): "+m.Name+" {", "}", func() {
			w.WriteLinef("const %s = this.%s ?? uuidv4();", identity.arg, identity.slot)
			w.WriteLinef("return new %s(%s);", m.Name, strings.Join(args, ", "))
		})

		for _, step := range p.Steps {
			mem := c.byName[step.Field.Name]
			w.BlankLine()
			w.WriteBlock(step.Method+"("+mem.arg+": "+mem.param+"): "+step.Next+" {", "}", func() {
				w.WriteBlock("if ("+mem.arg+" === null || "+mem.arg+" === undefined) {", "}", func() {
					w.WriteLinef("throw new TypeError(%q);", mem.field.Name+" is required")
				})
				w.WriteLinef("this.%s = %s;", mem.slot, mem.arg)
				w.WriteLine("return this;")
			})
		}

		for _, f := range p.Optional {
			mem := c.byName[f.Name]
			w.BlankLine()
			w.WriteBlock(p.Setter(f)+"("+mem.arg+": "+mem.param+"): "+p.Terminal+" {", "}", func() {
				w.WriteLinef("this.%s = %s;", mem.slot, mem.arg)
				w.WriteLine("return this;")
			})
		}

		w.BlankLine()
		w.WriteBlock(p.IdentitySetter+"("+identity.arg+": "+identity.param+"): "+p.Terminal+" {", "}", func() {
			w.WriteBlock("if (!CANONICAL_ID.test("+identity.arg+")) {", "}", func() {
				w.WriteLine("throw new MalformedIdentityError(")
				w.Indent()
				w.WriteLinef("%s + %s,", strconv.Quote(modelid.Message+": "), identity.arg)
				w.WriteLinef("%s,", strconv.Quote(modelid.Hint))
				w.WriteLine("true);")
				w.Dedent()
			})
			w.WriteLinef("this.%s = %s;", identity.slot, identity.arg)
			w.WriteLine("return this;")
		})
	})
}

func (c *classEmitter) emitGetters() {
	w := c.w
	for i, mem := range c.members {
		if i > 0 {
			w.BlankLine()
		}
		w.WriteBlock(mem.getter+"(): "+mem.typ+" {", "}", func() {
			w.WriteLinef("return this.%s;", mem.name)
		})
	}
}

func (c *classEmitter) emitConstructor() {
	w := c.w
	params := make([]string, 0, len(c.members))
	for _, mem := range c.members {
		params = append(params, mem.arg+": "+mem.typ)
	}
	w.WriteBlock("private constructor("+strings.Join(params, ", ")+") {", "}", func() {
		for _, mem := range c.members {
			w.WriteLinef("this.%s = %s;", mem.name, mem.arg)
		}
	})
}

func (c *classEmitter) emitEquals() {
	w := c.w
	w.WriteBlock("equals(obj: unknown): boolean {", "}", func() {
		w.WriteBlock("if (this === obj) {", "}", func() {
			w.WriteLine("return true;")
		})
		w.WriteBlock("if (!(obj instanceof "+c.model.Name+")) {", "}", func() {
			w.WriteLine("return false;")
		})
		w.Write("return ")
		w.Indent()
		for i, mem := range c.members {
			sep := " &&"
			if i == len(c.members)-1 {
				sep = ";"
			}
			w.WriteLinef("valuesEqual(this.%s(), obj.%s())%s", mem.getter, mem.getter, sep)
		}
		w.Dedent()
	})
}

func (c *classEmitter) emitHashCode() {
	w := c.w
	w.WriteBlock("hashCode(): number {", "}", func() {
		w.WriteLine("const text = [")
		w.Indent()
		for _, mem := range c.members {
			w.WriteLinef("String(this.%s()),", mem.getter)
		}
		w.Dedent()
		w.WriteLine(`].join("");`)
		w.WriteLine("let hash = 0;")
		w.WriteBlock("for (let i = 0; i < text.length; i++) {", "}", func() {
			w.WriteLine("hash = (Math.imul(hash, 31) + text.charCodeAt(i)) | 0;")
		})
		w.WriteLine("return hash;")
	})
}
