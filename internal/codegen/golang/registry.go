package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/okra-platform/modelgen/internal/naming"
	"github.com/okra-platform/modelgen/internal/schema"
)

// emitRegistry generates a sync.Once singleton listing the generated model
// types in schema order together with the schema version
func emitRegistry(name string, models []schema.Model, version string) []jen.Code {
	base := naming.LowerCamel(name)
	versionConst := base + "Version"
	once := base + "Once"
	instance := base + "Instance"

	return []jen.Code{
		decl(jen.Const().Id(versionConst).Op("=").Lit(version),
			versionConst+" is the content hash of the schema the models were generated from."),

		decl(jen.Type().Id(name).Struct(
			jen.Id("models").Index().Qual("reflect", "Type"),
			jen.Id("version").String(),
		), name+" lists the generated models."),

		jen.Var().Defs(
			jen.Id(once).Qual("sync", "Once"),
			jen.Id(instance).Op("*").Id(name),
		),

		decl(jen.Func().Id("Get"+name).Params().Op("*").Id(name).Block(
			jen.Id(once).Dot("Do").Call(jen.Func().Params().Block(
				jen.Id(instance).Op("=").Op("&").Id(name).Values(jen.Dict{
					jen.Id("models"): jen.Index().Qual("reflect", "Type").ValuesFunc(func(g *jen.Group) {
						for _, m := range models {
							g.Qual("reflect", "TypeOf").Call(jen.Parens(jen.Op("*").Id(m.Name)).Call(jen.Nil())).Dot("Elem").Call()
						}
					}),
					jen.Id("version"): jen.Id(versionConst),
				}),
			)),
			jen.Return(jen.Id(instance)),
		), "Get"+name+" returns the registry, creating it on first use."),

		decl(jen.Func().Params(jen.Id("r").Op("*").Id(name)).Id("Models").Params().Index().Qual("reflect", "Type").Block(
			jen.Return(jen.Append(jen.Index().Qual("reflect", "Type").Parens(jen.Nil()), jen.Id("r").Dot("models").Op("..."))),
		), "Models returns the generated model types in schema order."),

		decl(jen.Func().Params(jen.Id("r").Op("*").Id(name)).Id("Version").Params().String().Block(
			jen.Return(jen.Id("r").Dot("version")),
		), "Version returns the schema content hash."),
	}
}
