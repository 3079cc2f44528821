package watch

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vango-dev/uikit/internal/errors"
)

// ChangeKind describes what happened to a watched path.
type ChangeKind int

const (
	// Modified means the path was created or written.
	Modified ChangeKind = iota

	// Removed means the path was removed or renamed away.
	Removed
)

func (k ChangeKind) String() string {
	if k == Removed {
		return "removed"
	}
	return "modified"
}

// Change is a detected change to a watched path.
type Change struct {
	Path string
	Kind ChangeKind
}

// Config configures a Watcher.
type Config struct {
	// Paths are the files and directories to watch. Directories are
	// watched recursively.
	Paths []string

	// Ignore lists names or globs to skip inside watched directories.
	Ignore []string

	// Debounce is the quiet period before changes are reported.
	Debounce time.Duration
}

// DefaultIgnore contains the default ignore patterns.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	".next",
	"dist",
	"*.tmp",
	"*.swp",
	"*~",
}

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors files for changes.
type Watcher struct {
	config Config

	// files are the explicitly watched files; dirs the recursively
	// watched directories. Both hold cleaned absolute paths.
	files map[string]bool
	dirs  []string

	mu       sync.Mutex
	onChange func(Change)
	running  bool
	stopCh   chan struct{}
	pending  map[string]ChangeKind
	timer    *time.Timer
}

// New creates a Watcher.
func New(config Config) *Watcher {
	if config.Debounce == 0 {
		config.Debounce = DefaultDebounce
	}
	if config.Ignore == nil {
		config.Ignore = DefaultIgnore
	}
	return &Watcher{
		config:  config,
		files:   make(map[string]bool),
		pending: make(map[string]ChangeKind),
	}
}

// OnChange sets the callback for changes. It is called from a timer
// goroutine, one call per changed path, in path order.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Start watches until ctx is done or Stop is called. It returns nil after
// Stop and ctx.Err() after cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
	}()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.New("E170").WithOp("watch").Wrap(err)
	}
	defer fw.Close()

	if err := w.addPaths(fw); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(fw, event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return errors.New("E170").WithOp("watch").Wrap(err)
		}
	}
}

// Stop stops the watcher. Pending changes are dropped.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

func (w *Watcher) addPaths(fw *fsnotify.Watcher) error {
	for _, p := range w.config.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return errors.New("E170").WithPath(p).Wrap(err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return errors.New("E170").
				WithPath(p).
				WithDetail("Cannot watch '" + p + "'").
				Wrap(err)
		}

		if !info.IsDir() {
			w.files[abs] = true
			if err := fw.Add(filepath.Dir(abs)); err != nil {
				return errors.New("E170").WithPath(p).Wrap(err)
			}
			continue
		}

		w.dirs = append(w.dirs, abs)
		if err := w.addDir(fw, abs); err != nil {
			return errors.New("E170").WithPath(p).Wrap(err)
		}
	}
	return nil
}

func (w *Watcher) addDir(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && w.shouldIgnore(p) {
			return filepath.SkipDir
		}
		return fw.Add(p)
	})
}

func (w *Watcher) handle(fw *fsnotify.Watcher, event fsnotify.Event) {
	name := filepath.Clean(event.Name)
	if !w.relevant(name) {
		return
	}

	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if w.inDir(name) {
				_ = w.addDir(fw, name)
			}
			return
		}
		w.queue(name, Modified)
	case event.Has(fsnotify.Write):
		w.queue(name, Modified)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.queue(name, Removed)
	}
}

// relevant reports whether an event on name concerns a watched path.
func (w *Watcher) relevant(name string) bool {
	if w.files[name] {
		return true
	}
	return w.inDir(name) && !w.shouldIgnore(name)
}

func (w *Watcher) inDir(name string) bool {
	for _, dir := range w.dirs {
		if name == dir || strings.HasPrefix(name, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// queue records a change and restarts the debounce timer.
func (w *Watcher) queue(name string, kind ChangeKind) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[name] = kind
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.config.Debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	callback := w.onChange
	running := w.running
	pending := w.pending
	w.pending = make(map[string]ChangeKind)
	w.timer = nil
	w.mu.Unlock()

	if callback == nil || !running {
		return
	}

	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		callback(Change{Path: p, Kind: pending[p]})
	}
}

// shouldIgnore checks if a path should be ignored.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	normalized := filepath.ToSlash(fullPath)

	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if name == pattern {
			return true
		}

		if strings.ContainsAny(pattern, "*?[") {
			if strings.Contains(pattern, "/") {
				if matched, _ := path.Match(pattern, normalized); matched {
					return true
				}
			} else if matched, _ := filepath.Match(pattern, name); matched {
				return true
			}
			continue
		}

		if pathHasSegment(normalized, pattern) {
			return true
		}
	}
	return false
}

func pathHasSegment(p, segment string) bool {
	for _, part := range strings.Split(p, "/") {
		if part == segment {
			return true
		}
	}
	return false
}
