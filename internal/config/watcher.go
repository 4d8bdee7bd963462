package config

import (
	"os"
	"path/filepath"
	"sync"

	"folderpick/internal/errors"
	"folderpick/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk and delivers
// each successfully validated result on Updates.
type Watcher struct {
	// Config file being watched
	path string

	// Latest reloaded configuration; holds at most one pending value
	updates chan *Config

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
}

// NewWatcher creates a watcher for the config file at path. The file's
// directory is watched, so editors that replace the file are handled.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve config path")
	}

	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.NewConfigError("error accessing config directory", dir, errors.ConfigNotFound, err)
	}
	if !info.IsDir() {
		return nil, errors.NewConfigError("not a directory", dir, errors.InvalidConfig, nil)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", dir)
	}

	return &Watcher{
		path:      abs,
		updates:   make(chan *Config, 1),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// Path returns the absolute path of the watched file
func (w *Watcher) Path() string {
	return w.path
}

// Updates returns the channel that delivers reloaded configurations
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Start begins processing file events
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return errors.New("config watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	stop := w.stopChan
	w.mutex.Unlock()

	go w.loop(stop)

	log.LogWithFields(log.F("file", w.path)).Info("Watching config file")
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}) {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			w.reload()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadConfigFile(w.path)
	if err != nil {
		// Editors often write in several steps; keep the previous config
		log.LogWithError(err).Warn("Ignoring config change")
		return
	}

	// Latest wins: replace a pending value nobody has read yet
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
		log.LogWithFields(log.F("file", w.path)).Info("Config reloaded")
	default:
	}
}

// Stop halts the watcher
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}
	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	w.running = false
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
