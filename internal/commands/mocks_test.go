package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/okra-platform/modelgen/internal/config"
	"github.com/okra-platform/modelgen/internal/watch"
)

type mockConfigLoader struct {
	mock.Mock
}

func (m *mockConfigLoader) LoadConfig(path string) (*config.Config, string, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*config.Config), args.String(1), args.Error(2)
}

// memFileSystem is an in-memory FileSystem safe for concurrent writers
type memFileSystem struct {
	mu       sync.Mutex
	files    map[string][]byte
	dirs     map[string]bool
	writeErr error
}

func newMemFileSystem(files map[string]string) *memFileSystem {
	fs := &memFileSystem{files: map[string][]byte{}, dirs: map[string]bool{}}
	for path, content := range files {
		fs.files[path] = []byte(content)
	}
	return fs
}

func (m *memFileSystem) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return data, nil
}

func (m *memFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[path] = data
	return nil
}

func (m *memFileSystem) Stat(path string) (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; ok || m.dirs[path] {
		return nil, nil
	}
	return nil, os.ErrNotExist
}

func (m *memFileSystem) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	return nil
}

func (m *memFileSystem) content(path string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.files[path])
}

func (m *memFileSystem) paths(prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var paths []string
	for path := range m.files {
		if strings.HasPrefix(path, prefix) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

type bufferOutput struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (o *bufferOutput) Printf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(&o.buf, format, args...)
}

func (o *bufferOutput) Println(args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintln(&o.buf, args...)
}

func (o *bufferOutput) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.buf.String()
}

type mockSignalNotifier struct {
	mock.Mock
}

func (m *mockSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	m.Called(c, sig)
}

func (m *mockSignalNotifier) Stop(c chan<- os.Signal) {
	m.Called(c)
}

// fakeWatcher hands its change callback to the test and blocks until
// the context is done
type fakeWatcher struct {
	mu       sync.Mutex
	dirs     []string
	closed   bool
	onChange watch.ChangeFunc
	started  chan struct{}
	startErr error
}

func (w *fakeWatcher) AddDirectory(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirs = append(w.dirs, dir)
	return nil
}

func (w *fakeWatcher) Start(ctx context.Context) error {
	close(w.started)
	if w.startErr != nil {
		return w.startErr
	}
	<-ctx.Done()
	return ctx.Err()
}

func (w *fakeWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

type fakeWatcherFactory struct {
	watcher *fakeWatcher
	cfg     *config.Config
}

func (f *fakeWatcherFactory) NewWatcher(cfg *config.Config, onChange watch.ChangeFunc) (Watcher, error) {
	f.cfg = cfg
	f.watcher.onChange = onChange
	return f.watcher, nil
}
