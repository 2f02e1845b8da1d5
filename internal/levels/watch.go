package levels

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow collapses the burst of events editors emit per save. A
// path is reported once no event for it arrived for this long.
const debounceWindow = 100 * time.Millisecond

// Watcher reports changes to pack files so a running game can reload them.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	settled chan string // paths whose debounce timer fired
	once    sync.Once
	only    string // when set, only this file is reported
}

// WatchFile watches a single pack file. The containing directory is
// watched, since editors commonly replace files by rename.
func WatchFile(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := newWatcher(filepath.Dir(abs))
	if err != nil {
		return nil, err
	}
	w.only = abs
	go w.run()
	return w, nil
}

// WatchDir watches every pack file in the given directories.
func WatchDir(dirs ...string) (*Watcher, error) {
	w, err := newWatcher(dirs...)
	if err != nil {
		return nil, err
	}
	go w.run()
	return w, nil
}

func newWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	return &Watcher{
		watcher: fw,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		settled: make(chan string),
	}, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	// Last event time per path. Each pending path has exactly one timer in
	// flight; when it fires early the path is re-armed for the remainder.
	pending := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if _, ok := pending[event.Name]; !ok {
				w.settleAfter(event.Name, debounceWindow)
			}
			pending[event.Name] = time.Now()
		case name := <-w.settled:
			if wait := debounceWindow - time.Since(pending[name]); wait > 0 {
				w.settleAfter(name, wait)
				continue
			}
			delete(pending, name)
			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) settleAfter(name string, d time.Duration) {
	time.AfterFunc(d, func() {
		select {
		case w.settled <- name:
		case <-w.closeCh:
		}
	})
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	if !IsPackFile(event.Name) {
		return false
	}
	if w.only == "" {
		return true
	}
	abs, err := filepath.Abs(event.Name)
	return err == nil && abs == w.only
}
