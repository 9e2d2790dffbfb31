package codegen

import (
	"github.com/okra-platform/modelgen/internal/schema"
)

// FileLayout controls how a generator's passes are split into files
type FileLayout int

const (
	// LayoutPerMode writes one file per mode (models, enums, registry)
	LayoutPerMode FileLayout = iota

	// LayoutPerDeclaration writes one file per model, per enum, and one for the registry
	LayoutPerDeclaration
)

// OutputFile is one file to generate together with the pass that produces it
type OutputFile struct {
	Name string
	Pass Pass
}

// perModeNames are the base file names used by LayoutPerMode
var perModeNames = map[Mode]string{
	ModeClasses:  "models",
	ModeEnums:    "enums",
	ModeRegistry: "registry",
}

// Layout expands a scope into the files a generator produces. Classes and
// enums passes with an empty selection are skipped; the registry file is
// always produced.
func Layout(gen Generator, s *schema.Schema, scope Pass, opts Options) ([]OutputFile, error) {
	models, err := scope.SelectModels(s)
	if err != nil {
		return nil, err
	}
	enums, err := scope.SelectEnums(s)
	if err != nil {
		return nil, err
	}

	modelNames := make([]string, 0, len(models))
	for _, m := range models {
		modelNames = append(modelNames, m.Name)
	}
	enumNames := make([]string, 0, len(enums))
	for _, e := range enums {
		enumNames = append(enumNames, e.Name)
	}

	pass := func(mode Mode, models, enums []string) Pass {
		return Pass{Mode: mode, Models: models, Enums: enums, BestEffort: scope.BestEffort}
	}

	var files []OutputFile
	ext := gen.FileExtension()

	switch gen.Layout() {
	case LayoutPerDeclaration:
		for _, name := range modelNames {
			files = append(files, OutputFile{Name: name + ext, Pass: pass(ModeClasses, []string{name}, nil)})
		}
		for _, name := range enumNames {
			files = append(files, OutputFile{Name: name + ext, Pass: pass(ModeEnums, nil, []string{name})})
		}
		files = append(files, OutputFile{Name: opts.Registry() + ext, Pass: pass(ModeRegistry, modelNames, nil)})

	default:
		if len(modelNames) > 0 {
			files = append(files, OutputFile{Name: perModeNames[ModeClasses] + ext, Pass: pass(ModeClasses, modelNames, nil)})
		}
		if len(enumNames) > 0 {
			files = append(files, OutputFile{Name: perModeNames[ModeEnums] + ext, Pass: pass(ModeEnums, nil, enumNames)})
		}
		files = append(files, OutputFile{Name: perModeNames[ModeRegistry] + ext, Pass: pass(ModeRegistry, modelNames, nil)})
	}

	return files, nil
}
