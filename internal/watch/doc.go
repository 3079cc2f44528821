// Package watch reports changes to local registry item files.
//
// A Watcher observes files and directories with fsnotify and calls its
// change callback once per changed path after a quiet period:
//
//	w := watch.New(watch.Config{Paths: []string{"./registry/button.json"}})
//	w.OnChange(func(c watch.Change) {
//	    // re-install c.Path
//	})
//	err := w.Start(ctx)
//
// Watched files are observed through their parent directory, so editors
// that save by renaming a temporary file over the original still trigger
// a change.
package watch
