package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/uikit/internal/errors"
)

const testDebounce = 50 * time.Millisecond

func startWatcher(t *testing.T, config Config) (*Watcher, chan Change) {
	t.Helper()

	config.Debounce = testDebounce
	w := New(config)

	changes := make(chan Change, 16)
	w.OnChange(func(c Change) {
		changes <- c
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	require.Eventually(t, w.IsRunning, time.Second, 10*time.Millisecond)
	// Give fsnotify a moment to register the watches.
	time.Sleep(50 * time.Millisecond)
	return w, changes
}

func waitChange(t *testing.T, changes <-chan Change) Change {
	t.Helper()
	select {
	case c := <-changes:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change")
		return Change{}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWatcher_File(t *testing.T) {
	dir := t.TempDir()
	item := filepath.Join(dir, "button.json")
	other := filepath.Join(dir, "card.json")
	writeFile(t, item, "{}")
	writeFile(t, other, "{}")

	_, changes := startWatcher(t, Config{Paths: []string{item}})

	writeFile(t, other, `{"name": "card"}`)
	writeFile(t, item, `{"name": "button"}`)

	change := waitChange(t, changes)
	assert.Equal(t, item, change.Path)
	assert.Equal(t, Modified, change.Kind)

	select {
	case c := <-changes:
		t.Errorf("unexpected change %+v", c)
	case <-time.After(3 * testDebounce):
	}
}

func TestWatcher_Debounce(t *testing.T) {
	dir := t.TempDir()
	item := filepath.Join(dir, "button.json")
	writeFile(t, item, "{}")

	_, changes := startWatcher(t, Config{Paths: []string{item}})

	for i := 0; i < 5; i++ {
		writeFile(t, item, `{"name": "button"}`)
	}

	waitChange(t, changes)
	select {
	case c := <-changes:
		t.Errorf("expected a single change, got another: %+v", c)
	case <-time.After(3 * testDebounce):
	}
}

func TestWatcher_RenameOver(t *testing.T) {
	dir := t.TempDir()
	item := filepath.Join(dir, "button.json")
	writeFile(t, item, "{}")

	_, changes := startWatcher(t, Config{Paths: []string{item}})

	tmp := filepath.Join(dir, "button.json.tmp")
	writeFile(t, tmp, `{"name": "button"}`)
	require.NoError(t, os.Rename(tmp, item))

	change := waitChange(t, changes)
	assert.Equal(t, item, change.Path)
	assert.Equal(t, Modified, change.Kind)
}

func TestWatcher_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules"), 0755))

	_, changes := startWatcher(t, Config{Paths: []string{dir}})

	writeFile(t, filepath.Join(dir, "node_modules", "x.json"), "{}")
	writeFile(t, filepath.Join(dir, "scratch.tmp"), "x")
	item := filepath.Join(dir, "input.json")
	writeFile(t, item, "{}")

	change := waitChange(t, changes)
	assert.Equal(t, item, change.Path)
}

func TestWatcher_Removed(t *testing.T) {
	dir := t.TempDir()
	item := filepath.Join(dir, "button.json")
	writeFile(t, item, "{}")

	_, changes := startWatcher(t, Config{Paths: []string{item}})

	require.NoError(t, os.Remove(item))

	change := waitChange(t, changes)
	assert.Equal(t, item, change.Path)
	assert.Equal(t, Removed, change.Kind)
	assert.Equal(t, "removed", change.Kind.String())
}

func TestWatcher_Stop(t *testing.T) {
	dir := t.TempDir()
	item := filepath.Join(dir, "button.json")
	writeFile(t, item, "{}")

	w := New(Config{Paths: []string{item}, Debounce: testDebounce})
	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	require.Eventually(t, w.IsRunning, time.Second, 10*time.Millisecond)
	w.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.False(t, w.IsRunning())
}

func TestWatcher_Canceled(t *testing.T) {
	item := filepath.Join(t.TempDir(), "button.json")
	writeFile(t, item, "{}")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(Config{Paths: []string{item}}).Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatcher_MissingPath(t *testing.T) {
	err := New(Config{Paths: []string{filepath.Join(t.TempDir(), "absent.json")}}).Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E170"))
}

func TestShouldIgnore(t *testing.T) {
	w := New(Config{})

	tests := []struct {
		path string
		want bool
	}{
		{"/proj/registry/button.json", false},
		{"/proj/node_modules/pkg/item.json", true},
		{"/proj/.git/HEAD", true},
		{"/proj/registry/button.json.swp", true},
		{"/proj/registry/button.json~", true},
		{"/proj/registry/draft.tmp", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, w.shouldIgnore(filepath.FromSlash(tt.path)))
		})
	}
}
