package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk. Reloaded values are handed over through Latest so that
// the frame loop applies them between frames instead of having the watch goroutine mutate live state.
type Watcher interface {
	// Latest returns the most recent successfully decoded config since the previous call, if any.
	//
	// Returns:
	//   - RenderConfig: the reloaded configuration
	//   - bool: true if a new configuration arrived since the last call
	Latest() (RenderConfig, bool)

	// Path returns the watched file path.
	//
	// Returns:
	//   - string: the config file path
	Path() string

	// Close stops watching and releases the underlying OS watch.
	//
	// Returns:
	//   - error: error from closing the OS watcher
	Close() error
}

type watcher struct {
	mu      *sync.Mutex
	path    string
	fs      *fsnotify.Watcher
	pending *RenderConfig
	done    chan struct{}
	closed  bool
}

var _ Watcher = &watcher{}

// NewWatcher starts watching the directory containing path and reloads path whenever it is written, created or
// renamed into place. Watching the directory keeps the watch alive across editors that save by replacing the file.
//
// Parameters:
//   - path: the config file to watch
//
// Returns:
//   - Watcher: the running watcher
//   - error: error if the OS watch cannot be established
func NewWatcher(path string) (Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &watcher{
		mu:   &sync.Mutex{},
		path: abs,
		fs:   fw,
		done: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("[config] watch error: %v", err)
		}
	}
}

func (w *watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		// editors briefly remove the file while saving; the following create event reloads it
		if !os.IsNotExist(err) {
			log.Printf("[config] failed to read %s: %v", w.path, err)
		}
		return
	}
	cfg, err := Decode(data)
	if err != nil {
		log.Printf("[config] keeping previous config, %s: %v", w.path, err)
		return
	}

	w.mu.Lock()
	w.pending = &cfg
	w.mu.Unlock()
	log.Printf("[config] reloaded %s", w.path)
}

func (w *watcher) Latest() (RenderConfig, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		return RenderConfig{}, false
	}
	cfg := *w.pending
	w.pending = nil
	return cfg, true
}

func (w *watcher) Path() string {
	return w.path
}

func (w *watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	return w.fs.Close()
}
