package commands

import (
	"context"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/codegen/targets"
	"github.com/okra-platform/modelgen/internal/config"
	"github.com/okra-platform/modelgen/internal/schema"
)

// GenerateDependencies for the generate command
type GenerateDependencies struct {
	ConfigLoader ConfigLoader
	FileSystem   FileSystem
	Registry     *codegen.Registry
	Output       Output
	Logger       zerolog.Logger
}

// GenerateCommand parses the configured schema and writes every generated file
type GenerateCommand struct {
	deps       GenerateDependencies
	configPath string
}

// GenerateResult lists the files written by one run
type GenerateResult struct {
	Files []string
	// Err holds the models skipped in best-effort mode
	Err error
}

// NewGenerateCommand creates a new generate command with default dependencies
func NewGenerateCommand(configPath string) *GenerateCommand {
	return &GenerateCommand{
		configPath: configPath,
		deps: GenerateDependencies{
			ConfigLoader: &defaultConfigLoader{},
			FileSystem:   &osFileSystem{},
			Registry:     targets.DefaultRegistry,
			Output:       &defaultOutput{},
			Logger:       logger("generate"),
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (gc *GenerateCommand) WithDependencies(deps GenerateDependencies) *GenerateCommand {
	gc.deps = deps
	return gc
}

func (c *Controller) Generate(ctx context.Context) error {
	result, err := NewGenerateCommand(c.configPath()).Execute(ctx)
	if err != nil {
		return err
	}
	return result.Err
}

// Execute loads the configuration and runs the generation
func (gc *GenerateCommand) Execute(ctx context.Context) (*GenerateResult, error) {
	cfg, projectRoot, err := gc.deps.ConfigLoader.LoadConfig(gc.configPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load project config")
	}
	return gc.Run(ctx, cfg, projectRoot)
}

// Run generates the code described by cfg. Paths in cfg are relative to
// projectRoot.
func (gc *GenerateCommand) Run(ctx context.Context, cfg *config.Config, projectRoot string) (*GenerateResult, error) {
	if err := cfg.Validate(gc.deps.Registry.Languages()); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	schemaPath := resolve(projectRoot, cfg.Schema)
	source, err := gc.deps.FileSystem.ReadFile(schemaPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read schema %s", schemaPath)
	}
	s, err := schema.ParseSchema(string(source))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse schema %s", schemaPath)
	}

	opts := codegen.Options{
		PackageName:  cfg.Package,
		RegistryName: cfg.RegistryName,
		Scalars:      cfg.Scalars,
	}
	gen, err := gc.deps.Registry.Get(cfg.Language, opts)
	if err != nil {
		return nil, err
	}

	modes, err := parseModes(cfg.Modes)
	if err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	scope := codegen.Pass{Models: cfg.Models, Enums: cfg.Enums, BestEffort: cfg.BestEffort}
	files, err := codegen.Layout(gen, s, scope, opts)
	if err != nil {
		return nil, errors.Wrap(err, "invalid model selection")
	}

	outDir := resolve(projectRoot, cfg.Output.Dir)
	if err := gc.deps.FileSystem.MkdirAll(outDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", outDir)
	}

	gc.deps.Logger.Info().
		Str("language", gen.Language()).
		Str("schema", schemaPath).
		Int("models", len(s.Models)).
		Int("enums", len(s.Enums)).
		Msg("generating")

	// The registry is written last so it can leave out models a best-effort
	// classes pass skipped.
	var declarations, registries []codegen.OutputFile
	for _, file := range files {
		switch {
		case !modes[file.Pass.Mode]:
		case file.Pass.Mode == codegen.ModeRegistry:
			registries = append(registries, file)
		default:
			declarations = append(declarations, file)
		}
	}

	written, skipped, err := gc.writeFiles(ctx, gen, s, declarations, outDir)
	if err != nil {
		return nil, err
	}
	if excluded := codegen.SkippedModels(skipped); len(excluded) > 0 {
		for i := range registries {
			registries[i].Pass.Exclude = excluded
		}
	}
	registryWritten, registrySkipped, err := gc.writeFiles(ctx, gen, s, registries, outDir)
	if err != nil {
		return nil, err
	}
	written = append(written, registryWritten...)
	if registrySkipped != nil {
		skipped = errors.Join(skipped, registrySkipped)
	}

	sort.Strings(written)
	for _, path := range written {
		rel, err := filepath.Rel(projectRoot, path)
		if err != nil {
			rel = path
		}
		gc.deps.Output.Printf("  %s\n", rel)
	}
	gc.deps.Output.Printf("Generated %d %s files in %s\n", len(written), gen.Language(), outDir)

	return &GenerateResult{Files: written, Err: skipped}, nil
}

// writeFiles generates and writes files concurrently. It returns the paths
// written and the models skipped in best-effort passes.
func (gc *GenerateCommand) writeFiles(ctx context.Context, gen codegen.Generator, s *schema.Schema, files []codegen.OutputFile, outDir string) ([]string, error, error) {
	var (
		mu      sync.Mutex
		written []string
		skipped []error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			code, genErr := gen.Generate(s, file.Pass)
			if genErr != nil && (!file.Pass.BestEffort || code == nil) {
				return errors.Wrapf(genErr, "failed to generate %s", file.Name)
			}

			if genErr != nil {
				gc.deps.Logger.Warn().Err(genErr).Str("file", file.Name).Msg("skipped models")
				mu.Lock()
				skipped = append(skipped, errors.Wrapf(genErr, "%s", file.Name))
				mu.Unlock()
				if onlySkipped(file.Pass, genErr) {
					return nil
				}
			}

			path := filepath.Join(outDir, file.Name)
			if err := gc.deps.FileSystem.WriteFile(path, code, 0644); err != nil {
				return errors.Wrapf(err, "failed to write %s", path)
			}
			gc.deps.Logger.Debug().Str("file", path).Str("mode", string(file.Pass.Mode)).Msg("wrote file")

			mu.Lock()
			written = append(written, path)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if len(skipped) == 0 {
		return written, nil, nil
	}
	return written, errors.Join(skipped...), nil
}

// onlySkipped reports whether every model a classes pass selected was
// skipped, leaving nothing worth writing
func onlySkipped(pass codegen.Pass, err error) bool {
	return pass.Mode == codegen.ModeClasses &&
		len(pass.Models) > 0 &&
		len(codegen.SkippedModels(err)) >= len(pass.Models)
}

// parseModes returns the enabled modes; an empty list enables all of them
func parseModes(names []string) (map[codegen.Mode]bool, error) {
	if len(names) == 0 {
		return map[codegen.Mode]bool{codegen.ModeClasses: true, codegen.ModeEnums: true, codegen.ModeRegistry: true}, nil
	}
	modes := make(map[codegen.Mode]bool, len(names))
	for _, name := range names {
		mode, err := codegen.ParseMode(name)
		if err != nil {
			return nil, errors.WithHint(err, "modes may list classes, enums and registry")
		}
		modes[mode] = true
	}
	return modes, nil
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
