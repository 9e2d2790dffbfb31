package golang

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/okra-platform/modelgen/internal/schema"
)

// emitEnum generates a string type, one constant per value in declared
// order, a Valid method and a Values function
func emitEnum(enum schema.EnumType) []jen.Code {
	var doc []string
	if enum.Doc != "" {
		for _, line := range strings.Split(strings.TrimSpace(enum.Doc), "\n") {
			doc = append(doc, strings.TrimSpace(line))
		}
	} else {
		doc = append(doc, enum.Name+" is a schema enum.")
	}

	values := func(g *jen.Group) {
		for _, value := range enum.Values {
			g.Id(enum.Name + value.Name)
		}
	}

	return []jen.Code{
		decl(jen.Type().Id(enum.Name).String(), doc...),
		jen.Const().DefsFunc(func(g *jen.Group) {
			for _, value := range enum.Values {
				if value.Doc != "" {
					g.Comment(strings.TrimSpace(value.Doc))
				}
				g.Id(enum.Name+value.Name).Id(enum.Name).Op("=").Lit(value.Name)
			}
		}),
		decl(jen.Func().Params(jen.Id("e").Id(enum.Name)).Id("Valid").Params().Bool().BlockFunc(func(g *jen.Group) {
			if len(enum.Values) > 0 {
				g.Switch(jen.Id("e")).Block(
					jen.CaseFunc(values).Block(jen.Return(jen.True())),
				)
			}
			g.Return(jen.False())
		}), "Valid returns true if the "+enum.Name+" is a valid value"),
		decl(jen.Func().Id(enum.Name+"Values").Params().Index().Id(enum.Name).Block(
			jen.Return(jen.Index().Id(enum.Name).ValuesFunc(values)),
		), enum.Name+"Values returns every "+enum.Name+" in declared order."),
	}
}
