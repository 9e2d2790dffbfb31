package commands

import (
	"context"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/cockroachdb/errors"

	"github.com/okra-platform/modelgen/internal/config"
)

type InitOptions struct {
	Name      string
	Language  string
	Schema    string
	Package   string
	OutputDir string
}

type InitCommand struct {
	filesystem FileSystem
	output     Output
	dir        string
	// For testing: if set, skip prompting
	testOptions *InitOptions
}

func NewInitCommand(dir string) *InitCommand {
	return &InitCommand{
		filesystem: &osFileSystem{},
		output:     &defaultOutput{},
		dir:        dir,
	}
}

func (c *Controller) Init(ctx context.Context) error {
	cmd := NewInitCommand(".")
	return cmd.Run(ctx)
}

func (ic *InitCommand) Run(ctx context.Context) error {
	return ic.RunWithOptions(ctx)
}

// RunWithOptions prompts for the project settings and writes modelgen.yaml
func (ic *InitCommand) RunWithOptions(ctx context.Context, opts ...tea.ProgramOption) error {
	for _, name := range config.FileNames {
		if _, err := ic.filesystem.Stat(filepath.Join(ic.dir, name)); err == nil {
			return errors.Newf("%s already exists", name)
		}
	}

	var options *InitOptions
	var err error

	// For testing: use provided options instead of prompting
	if ic.testOptions != nil {
		options = ic.testOptions
	} else {
		options, err = ic.promptInitOptions(opts...)
		if err != nil {
			return errors.Wrap(err, "failed to get init options")
		}
	}

	cfg := &config.Config{
		Name:     options.Name,
		Language: options.Language,
		Schema:   options.Schema,
		Package:  options.Package,
		Output:   config.OutputConfig{Dir: options.OutputDir},
	}
	data, err := cfg.Encode()
	if err != nil {
		return err
	}

	path := filepath.Join(ic.dir, config.FileNames[0])
	if err := ic.filesystem.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	ic.output.Printf("Created %s for %s (%s)\n", path, options.Name, options.Language)
	return nil
}

func (ic *InitCommand) promptInitOptions(opts ...tea.ProgramOption) (*InitOptions, error) {
	options := &InitOptions{
		Schema:    config.DefaultSchema,
		OutputDir: config.DefaultOutputDir,
	}

	form := ic.createInitForm(options)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		// Normal execution
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return options, nil
}

func (ic *InitCommand) createInitForm(options *InitOptions) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Name of the model project").
				Value(&options.Name).
				Validate(notEmpty("project name")),

			huh.NewSelect[string]().
				Title("Language").
				Description("Target language of the generated models").
				Options(
					huh.NewOption("Java", "java"),
					huh.NewOption("Go", "go"),
					huh.NewOption("TypeScript", "typescript"),
				).
				Value(&options.Language),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Schema").
				Description("Path of the GraphQL schema").
				Value(&options.Schema).
				Validate(notEmpty("schema path")),

			huh.NewInput().
				Title("Package").
				Description("Package of the generated code, empty for the default").
				Value(&options.Package).
				Validate(validPackage),

			huh.NewInput().
				Title("Output directory").
				Value(&options.OutputDir).
				Validate(notEmpty("output directory")),
		),
	)
}

func notEmpty(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.Newf("%s cannot be empty", what)
		}
		return nil
	}
}

func validPackage(s string) error {
	for _, part := range strings.Split(s, ".") {
		if s != "" && part == "" {
			return errors.Newf("package %q has an empty segment", s)
		}
		if strings.ContainsAny(part, " /-") {
			return errors.Newf("package %q contains an invalid character", s)
		}
	}
	return nil
}
