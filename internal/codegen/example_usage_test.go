package codegen_test

import (
	"fmt"
	"log"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/codegen/targets"
	"github.com/okra-platform/modelgen/internal/schema"
)

func Example_usage() {
	s := &schema.Schema{
		Enums: []schema.EnumType{
			{
				Name: "Status",
				Values: []schema.EnumValue{
					{Name: "ACTIVE"},
					{Name: "INACTIVE"},
				},
			},
		},
		Models: []schema.Model{
			{
				Name:       "User",
				Directives: []schema.Directive{{Name: "model"}},
				Fields: []schema.Field{
					{Name: "name", Type: "String", Required: true},
					{Name: "status", Type: "Status"},
				},
			},
		},
	}

	for _, lang := range []string{"java", "go", "typescript"} {
		gen, err := targets.DefaultRegistry.Get(lang, codegen.Options{PackageName: "users"})
		if err != nil {
			log.Fatal(err)
		}

		files, err := codegen.Layout(gen, s, codegen.Pass{}, codegen.Options{})
		if err != nil {
			log.Fatal(err)
		}

		for _, file := range files {
			if _, err := gen.Generate(s, file.Pass); err != nil {
				log.Fatal(err)
			}
			fmt.Printf("%s: %s (%s)\n", gen.Language(), file.Name, file.Pass.Mode)
		}
	}

	// Output:
	// java: User.java (classes)
	// java: Status.java (enums)
	// java: ModelRegistry.java (registry)
	// go: models.go (classes)
	// go: enums.go (enums)
	// go: registry.go (registry)
	// typescript: models.ts (classes)
	// typescript: enums.ts (enums)
	// typescript: registry.ts (registry)
}
