package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/okra-platform/modelgen/internal/config"
)

// ConfigLoader loads the project configuration. An empty path searches the
// working directory and its parents.
type ConfigLoader interface {
	LoadConfig(path string) (*config.Config, string, error)
}

// FileSystem defines file system operations
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Stat(path string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
}

// Output prints user-facing progress
type Output interface {
	Printf(format string, args ...any)
	Println(args ...any)
}

// SignalNotifier relays interrupt signals
type SignalNotifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

type defaultConfigLoader struct{}

func (l *defaultConfigLoader) LoadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		return config.LoadConfig()
	}
	cfg, err := config.LoadConfigFromPath(path)
	if err != nil {
		return nil, "", err
	}
	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, "", err
	}
	return cfg, root, nil
}

type osFileSystem struct{}

func (fs *osFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (fs *osFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (fs *osFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (fs *osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

type defaultOutput struct{}

func (o *defaultOutput) Printf(format string, args ...any) {
	fmt.Printf(format, args...)
}

func (o *defaultOutput) Println(args ...any) {
	fmt.Println(args...)
}

type defaultSignalNotifier struct{}

func (n *defaultSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (n *defaultSignalNotifier) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}
