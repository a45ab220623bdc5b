package preview

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/notesite/internal/emit"
	"git.home.luguber.info/inful/notesite/internal/errors"
	"git.home.luguber.info/inful/notesite/internal/logfields"
)

// generatedFiles are written by rebuilds and must not trigger one.
var generatedFiles = map[string]bool{
	emit.ConfigFile:                true,
	emit.IndexFile:                 true,
	emit.ManifestFile:              true,
	emit.FormatJSON.SidebarsFile(): true,
	emit.FormatYAML.SidebarsFile(): true,
}

// watchSet names what a preview watches: every directory below roots, and
// the individual override files whose directories are watched on their own.
type watchSet struct {
	roots []string
	files map[string]bool
}

func newWatchSet(roots, files []string) watchSet {
	ws := watchSet{files: make(map[string]bool, len(files))}
	for _, r := range roots {
		ws.roots = append(ws.roots, filepath.Clean(r))
	}
	for _, f := range files {
		ws.files[filepath.Clean(f)] = true
	}
	return ws
}

// relevant reports whether an event on path concerns a watched input.
// Override directories are often the site root, next to node_modules and
// the generator's output, so only the override files themselves count there.
func (ws watchSet) relevant(path string) bool {
	path = filepath.Clean(path)
	if ws.files[path] {
		return true
	}
	for _, root := range ws.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return !shouldIgnoreEvent(path)
		}
	}
	return false
}

// newWatcher watches every directory below the roots and, non-recursively,
// the directory of each override file. Paths that do not exist are skipped.
func newWatcher(ws watchSet) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	for _, root := range ws.roots {
		if st, statErr := os.Stat(root); statErr != nil || !st.IsDir() {
			continue
		}
		if err := addDirsRecursive(w, root); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	for file := range ws.files {
		dir := filepath.Dir(file)
		if st, statErr := os.Stat(dir); statErr != nil || !st.IsDir() {
			continue
		}
		if err := w.Add(dir); err != nil {
			slog.Warn("watch add failed", logfields.Path(dir), logfields.Error(err))
		}
	}
	return w, nil
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	// Hidden files, including the temporaries of atomic writes
	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	if base == "Thumbs.db" {
		return true
	}
	return generatedFiles[base]
}

// newDebouncer returns a channel that receives one value per burst of
// trigger calls, delay after the last call.
func newDebouncer(delay time.Duration) (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}
