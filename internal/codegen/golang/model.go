package golang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dave/jennifer/jen"

	"github.com/okra-platform/modelgen/internal/codegen/annotation"
	"github.com/okra-platform/modelgen/internal/codegen/stepbuilder"
	"github.com/okra-platform/modelgen/internal/naming"
	"github.com/okra-platform/modelgen/internal/schema"
)

const (
	builderRecv = "_b"
	modelRecv   = "_m"
)

// reservedMethods are declared on every model and cannot double as getters
var reservedMethods = map[string]bool{"Equals": true, "Hash": true}

type modelEmitter struct {
	model   schema.Model
	plan    *stepbuilder.Plan
	members []member
	byName  map[string]member
	builder string
	ctor    string
	decls   []jen.Code
}

// emitModel returns the declarations of one model in a fixed order: the
// struct, its query-field constants, the step interfaces, the builder, the
// getters, the constructor, Equals and Hash.
func emitModel(types typeMapper, m schema.Model) ([]jen.Code, error) {
	plan, err := stepbuilder.New(m, namer{})
	if err != nil {
		return nil, err
	}

	e := &modelEmitter{
		model:   plan.Model,
		plan:    plan,
		byName:  make(map[string]member, len(plan.Model.Fields)),
		builder: naming.LowerCamel(m.Name) + "Builder",
		ctor:    "new" + m.Name,
	}
	for _, f := range plan.Fields() {
		mem := types.member(plan.Model, f)
		if reservedMethods[mem.exported] {
			return nil, errors.AssertionFailedf("field %q of %s collides with the %s method", f.Name, m.Name, mem.exported)
		}
		e.members = append(e.members, mem)
		e.byName[f.Name] = mem
	}

	e.emitStruct()
	e.emitQueryFields()
	e.emitStepInterfaces()
	e.emitBuilder()
	e.emitGetters()
	e.emitConstructor()
	e.emitEquals()
	e.emitHash()
	return e.decls, nil
}

// add appends one top-level declaration preceded by its doc lines
func (e *modelEmitter) add(code jen.Code, doc ...string) {
	e.decls = append(e.decls, decl(code, doc...))
}

func (e *modelEmitter) emitStruct() {
	m := e.model
	var doc []string
	if m.Doc != "" {
		for _, line := range strings.Split(strings.TrimSpace(m.Doc), "\n") {
			doc = append(doc, strings.TrimSpace(line))
		}
	} else {
		doc = append(doc, fmt.Sprintf("%s is an immutable model. Use New%sBuilder to create one.", m.Name, m.Name))
	}
	for _, a := range annotation.ForModel(m) {
		doc = append(doc, strings.TrimSpace(directive(a)+" "+tagValue(a)))
	}

	e.add(jen.Type().Id(m.Name).StructFunc(func(g *jen.Group) {
		for _, mem := range e.members {
			g.Id(mem.name).Add(mem.typ()).Tag(structTags(mem.field))
		}
	}), doc...)
}

// directive renders the machine-readable comment prefix of a model
// annotation, "//modelgen:modelConfig" for ModelConfig
func directive(a annotation.Annotation) string {
	return "//modelgen:" + strings.ToLower(a.Name[:1]) + a.Name[1:]
}

func (e *modelEmitter) emitQueryFields() {
	e.add(jen.Const().DefsFunc(func(g *jen.Group) {
		for _, mem := range e.members {
			g.Id(mem.constant).Op("=").Lit(mem.field.Name)
		}
	}), fmt.Sprintf("Query fields of %s.", e.model.Name))
}

func (e *modelEmitter) emitStepInterfaces() {
	m := e.model
	p := e.plan

	for _, step := range p.Steps {
		mem := e.byName[step.Field.Name]
		e.add(jen.Type().Id(step.Interface).Interface(
			jen.Id(step.Method).Params(jen.Id(mem.name).Add(mem.param())).Id(step.Next),
		), fmt.Sprintf("%s sets the required %s of a %s.", step.Interface, step.Field.Name, m.Name))
	}

	identity := e.byName[p.Identity.Name]
	e.add(jen.Type().Id(p.Terminal).InterfaceFunc(func(g *jen.Group) {
		g.Id(p.BuildMethod).Params().Op("*").Id(m.Name)
		g.Id(p.IdentitySetter).Params(jen.Id(identity.name).Add(identity.param())).Params(jen.Id(p.Terminal), jen.Error())
		for _, f := range p.Optional {
			mem := e.byName[f.Name]
			g.Id(p.Setter(f)).Params(jen.Id(mem.name).Add(mem.param())).Id(p.Terminal)
		}
	}), fmt.Sprintf("%s builds a %s once every required field is set.", p.Terminal, m.Name))
}

func (e *modelEmitter) recv() *jen.Statement {
	return jen.Id(builderRecv).Op("*").Id(e.builder)
}

// stored returns the value a setter keeps for its parameter: a pointer for
// optional scalars, a private copy for slices
func stored(mem member) *jen.Statement {
	switch mem.kind {
	case kindOptional:
		return jen.Op("&").Id(mem.name)
	case kindList, kindModelList:
		return jen.Qual("slices", "Clone").Call(jen.Id(mem.name))
	default:
		return jen.Id(mem.name)
	}
}

func (e *modelEmitter) emitBuilder() {
	m := e.model
	p := e.plan

	e.add(jen.Type().Id(e.builder).StructFunc(func(g *jen.Group) {
		for _, mem := range e.members {
			g.Id(mem.name).Add(mem.typ())
		}
	}), fmt.Sprintf("%s collects the fields of a %s until Build.", e.builder, m.Name))

	e.add(jen.Func().Id("New"+m.Name+"Builder").Params().Id(p.Entry).Block(
		jen.Return(jen.Op("&").Id(e.builder).Values()),
	), fmt.Sprintf("New%sBuilder starts building a %s.", m.Name, m.Name))

	for _, step := range p.Steps {
		mem := e.byName[step.Field.Name]
		e.add(jen.Func().Params(e.recv()).Id(step.Method).Params(jen.Id(mem.name).Add(mem.param())).Id(step.Next).BlockFunc(func(g *jen.Group) {
			if mem.kind == kindModel {
				g.If(jen.Id(mem.name).Op("==").Nil()).Block(
					jen.Panic(jen.Lit(fmt.Sprintf("%s.%s is required", m.Name, step.Field.Name))),
				)
			}
			g.Id(builderRecv).Dot(mem.name).Op("=").Add(stored(mem))
			g.Return(jen.Id(builderRecv))
		}))
	}

	for _, f := range p.Optional {
		mem := e.byName[f.Name]
		e.add(jen.Func().Params(e.recv()).Id(p.Setter(f)).Params(jen.Id(mem.name).Add(mem.param())).Id(p.Terminal).Block(
			jen.Id(builderRecv).Dot(mem.name).Op("=").Add(stored(mem)),
			jen.Return(jen.Id(builderRecv)),
		))
	}

	identity := e.byName[p.Identity.Name]
	e.add(jen.Func().Params(e.recv()).Id(p.IdentitySetter).Params(jen.Id(identity.name).String()).Params(jen.Id(p.Terminal), jen.Error()).Block(
		jen.If(jen.Err().Op(":=").Qual(modelidPkg, "Validate").Call(jen.Id(identity.name)), jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Id(builderRecv), jen.Err()),
		),
		jen.Id(builderRecv).Dot(identity.name).Op("=").Id(identity.name),
		jen.Return(jen.Id(builderRecv), jen.Nil()),
	), fmt.Sprintf("%s sets an explicit identity. It must be a canonical UUID.", p.IdentitySetter))

	e.add(jen.Func().Params(e.recv()).Id(p.BuildMethod).Params().Op("*").Id(m.Name).Block(
		jen.Id(identity.name).Op(":=").Id(builderRecv).Dot(identity.name),
		jen.If(jen.Id(identity.name).Op("==").Lit("")).Block(
			jen.Id(identity.name).Op("=").Qual(modelidPkg, "New").Call(),
		),
		jen.Return(jen.Id(e.ctor).CallFunc(func(g *jen.Group) {
			for _, mem := range e.members {
				if mem.field.IsIdentity() {
					g.Id(identity.name)
				} else {
					g.Id(builderRecv).Dot(mem.name)
				}
			}
		})),
	))
}

// emitGetters renders one accessor per field. Pointers and slices are copied
// so callers cannot reach the model's state.
func (e *modelEmitter) emitGetters() {
	for _, mem := range e.members {
		field := jen.Id(modelRecv).Dot(mem.name)
		var body []jen.Code
		switch mem.kind {
		case kindOptional:
			body = []jen.Code{
				jen.If(field.Clone().Op("==").Nil()).Block(jen.Return(jen.Nil())),
				jen.Id("v").Op(":=").Op("*").Add(field.Clone()),
				jen.Return(jen.Op("&").Id("v")),
			}
		case kindList, kindModelList:
			body = []jen.Code{jen.Return(jen.Qual("slices", "Clone").Call(field))}
		default:
			body = []jen.Code{jen.Return(field)}
		}
		e.add(jen.Func().Params(jen.Id(modelRecv).Op("*").Id(e.model.Name)).Id(mem.exported).Params().Add(mem.typ()).Block(body...),
			fmt.Sprintf("%s returns the %s of the %s.", mem.exported, mem.field.Name, e.model.Name))
	}
}

func (e *modelEmitter) emitConstructor() {
	e.add(jen.Func().Id(e.ctor).ParamsFunc(func(g *jen.Group) {
		for _, mem := range e.members {
			g.Id(mem.name).Add(mem.typ())
		}
	}).Op("*").Id(e.model.Name).Block(
		jen.Return(jen.Op("&").Id(e.model.Name).ValuesFunc(func(g *jen.Group) {
			for _, mem := range e.members {
				g.Id(mem.name).Op(":").Id(mem.name)
			}
		})),
	))
}

func (e *modelEmitter) emitEquals() {
	name := e.model.Name

	var same *jen.Statement
	for _, mem := range e.members {
		eq := jen.Qual("reflect", "DeepEqual").Call(
			jen.Id(modelRecv).Dot(mem.name),
			jen.Id("other").Dot(mem.name),
		)
		if same == nil {
			same = eq
		} else {
			same = same.Op("&&").Add(eq)
		}
	}

	e.add(jen.Func().Params(jen.Id(modelRecv).Op("*").Id(name)).Id("Equals").Params(jen.Id("other").Op("*").Id(name)).Bool().Block(
		jen.If(jen.Id(modelRecv).Op("==").Id("other")).Block(jen.Return(jen.True())),
		jen.If(jen.Id(modelRecv).Op("==").Nil().Op("||").Id("other").Op("==").Nil()).Block(jen.Return(jen.False())),
		jen.Return(same),
	), fmt.Sprintf("Equals reports whether both %s values hold the same field values.", name))
}

func (e *modelEmitter) emitHash() {
	fprint := func(v jen.Code) jen.Code {
		return jen.Qual("fmt", "Fprint").Call(jen.Id("h"), v)
	}

	e.add(jen.Func().Params(jen.Id(modelRecv).Op("*").Id(e.model.Name)).Id("Hash").Params().Uint64().BlockFunc(func(g *jen.Group) {
		g.Id("h").Op(":=").Qual("hash/fnv", "New64a").Call()
		for _, mem := range e.members {
			field := jen.Id(modelRecv).Dot(mem.name)
			switch mem.kind {
			case kindOptional:
				g.If(jen.Id("v").Op(":=").Add(field), jen.Id("v").Op("!=").Nil()).Block(fprint(jen.Op("*").Id("v")))
			case kindModel:
				g.If(jen.Id("v").Op(":=").Add(field), jen.Id("v").Op("!=").Nil()).Block(fprint(jen.Id("v").Dot("Hash").Call()))
			case kindModelList:
				g.For(jen.List(jen.Id("_"), jen.Id("v")).Op(":=").Range().Add(field)).Block(
					jen.If(jen.Id("v").Op("!=").Nil()).Block(fprint(jen.Id("v").Dot("Hash").Call())),
				)
			default:
				g.Add(fprint(field))
			}
		}
		g.Return(jen.Id("h").Dot("Sum64").Call())
	}), "Hash folds every field, in declaration order, into an FNV-64a hash.")
}

// structTags renders the field annotations as struct tags: field metadata
// under "modelgen", relationships under "connection"
func structTags(f schema.Field) map[string]string {
	tags := map[string]string{}
	for _, a := range annotation.ForField(f) {
		key := "modelgen"
		if a.Name == annotation.Connection {
			key = "connection"
		}
		tags[key] = tagValue(a)
	}
	return tags
}

// tagValue renders annotation arguments as "key=value" pairs separated by
// commas; list items are joined with "|" and true booleans are bare keys
func tagValue(a annotation.Annotation) string {
	parts := make([]string, 0, len(a.Args))
	for _, arg := range a.Args {
		switch arg.Kind {
		case annotation.KindBool:
			if arg.Bool {
				parts = append(parts, arg.Key)
			}
		case annotation.KindInt:
			parts = append(parts, arg.Key+"="+strconv.Itoa(arg.Int))
		case annotation.KindList:
			parts = append(parts, arg.Key+"="+strings.Join(arg.List, "|"))
		default:
			parts = append(parts, arg.Key+"="+arg.Str)
		}
	}
	return strings.Join(parts, ",")
}
