package commands

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/okra-platform/modelgen/internal/config"
	"github.com/okra-platform/modelgen/internal/watch"
)

// Watcher is the file watcher used by the watch command
type Watcher interface {
	AddDirectory(dir string) error
	Start(ctx context.Context) error
	Close() error
}

// WatcherFactory creates watchers
type WatcherFactory interface {
	NewWatcher(cfg *config.Config, onChange watch.ChangeFunc) (Watcher, error)
}

// WatchDependencies for the watch command
type WatchDependencies struct {
	ConfigLoader   ConfigLoader
	Generator      *GenerateCommand
	WatcherFactory WatcherFactory
	SignalNotifier SignalNotifier
	Output         Output
	Logger         zerolog.Logger
}

type defaultWatcherFactory struct {
	logger zerolog.Logger
}

func (f *defaultWatcherFactory) NewWatcher(cfg *config.Config, onChange watch.ChangeFunc) (Watcher, error) {
	w, err := watch.NewFileWatcher(cfg.Watch.Patterns, cfg.Watch.Exclude, onChange, f.logger)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// WatchCommand regenerates code whenever a schema file changes
type WatchCommand struct {
	deps       WatchDependencies
	configPath string

	cfg         *config.Config
	projectRoot string

	// Mutex to prevent concurrent generations
	genMutex   sync.Mutex
	generating bool
}

// NewWatchCommand creates a new watch command with default dependencies
func NewWatchCommand(configPath string) *WatchCommand {
	log := logger("watch")
	return &WatchCommand{
		configPath: configPath,
		deps: WatchDependencies{
			ConfigLoader:   &defaultConfigLoader{},
			Generator:      NewGenerateCommand(configPath),
			WatcherFactory: &defaultWatcherFactory{logger: log},
			SignalNotifier: &defaultSignalNotifier{},
			Output:         &defaultOutput{},
			Logger:         log,
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (wc *WatchCommand) WithDependencies(deps WatchDependencies) *WatchCommand {
	wc.deps = deps
	return wc
}

func (c *Controller) Watch(ctx context.Context) error {
	return NewWatchCommand(c.configPath()).Execute(ctx)
}

// Execute generates once, then regenerates on every matching change until
// interrupted
func (wc *WatchCommand) Execute(ctx context.Context) error {
	cfg, projectRoot, err := wc.deps.ConfigLoader.LoadConfig(wc.configPath)
	if err != nil {
		return errors.Wrap(err, "failed to load project config")
	}
	wc.cfg = cfg
	wc.projectRoot = projectRoot

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	wc.deps.SignalNotifier.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer wc.deps.SignalNotifier.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			wc.deps.Output.Println("\nStopping watch...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Errors are logged; the next change retries
	wc.regenerate(ctx)

	watcher, err := wc.deps.WatcherFactory.NewWatcher(cfg, wc.handleFileChange(ctx))
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	if err := watcher.AddDirectory(projectRoot); err != nil {
		return errors.Wrap(err, "failed to watch project directory")
	}

	wc.deps.Output.Printf("Watching %s for schema changes. Press Ctrl+C to stop.\n", projectRoot)

	if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "watcher stopped")
	}
	return nil
}

func (wc *WatchCommand) handleFileChange(ctx context.Context) watch.ChangeFunc {
	return func(path string, op fsnotify.Op) {
		if !op.Has(fsnotify.Create) && !op.Has(fsnotify.Write) && !op.Has(fsnotify.Remove) && !op.Has(fsnotify.Rename) {
			return
		}

		relPath, err := filepath.Rel(wc.projectRoot, path)
		if err != nil {
			relPath = path
		}
		wc.deps.Logger.Info().Str("file", relPath).Str("op", op.String()).Msg("schema changed")
		wc.regenerate(ctx)
	}
}

// regenerate runs one generation unless another is still in progress
func (wc *WatchCommand) regenerate(ctx context.Context) bool {
	wc.genMutex.Lock()
	if wc.generating {
		wc.genMutex.Unlock()
		wc.deps.Logger.Debug().Msg("generation already in progress, skipping")
		return false
	}
	wc.generating = true
	wc.genMutex.Unlock()

	defer func() {
		wc.genMutex.Lock()
		wc.generating = false
		wc.genMutex.Unlock()
	}()

	result, err := wc.deps.Generator.Run(ctx, wc.cfg, wc.projectRoot)
	if err != nil {
		wc.deps.Logger.Error().Err(err).Msg("generation failed")
		return false
	}
	if result.Err != nil {
		wc.deps.Logger.Warn().Err(result.Err).Msg("generation skipped models")
	}
	return true
}
