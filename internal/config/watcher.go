package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a configuration document when it changes on disk.
// Callbacks run on the watcher goroutine; callers that own UI state should
// forward the new document as a message instead of applying it directly.
type Watcher struct {
	path string
	fsw  *fsnotify.Watcher

	mu        sync.RWMutex
	onChange  []func(*AccordionConfig)
	onError   []func(error)
	stopChan  chan struct{}
	doneChan  chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
}

// NewWatcher creates a watcher for the document at path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		path:     abs,
		fsw:      fsw,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}, nil
}

// OnChange registers a callback for successfully reloaded documents.
func (w *Watcher) OnChange(cb func(*AccordionConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, cb)
}

// OnError registers a callback for documents that fail to load.
func (w *Watcher) OnError(cb func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = append(w.onError, cb)
}

// Start begins watching. The parent directory is watched rather than the
// file so editors that replace the file by rename are still seen.
func (w *Watcher) Start() error {
	var err error
	w.startOnce.Do(func() {
		if err = w.fsw.Add(filepath.Dir(w.path)); err != nil {
			err = fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
			return
		}
		w.mu.Lock()
		w.started = true
		w.mu.Unlock()
		go w.loop()
	})
	return err
}

// Stop ends watching and waits for the watcher goroutine to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		_ = w.fsw.Close()
	})
	w.mu.RLock()
	started := w.started
	w.mu.RUnlock()
	if started {
		<-w.doneChan
	}
}

func (w *Watcher) loop() {
	defer close(w.doneChan)
	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.fsw.Events:
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
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.emitError(fmt.Errorf("file watcher: %w", err))
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.emitError(err)
		return
	}

	w.mu.RLock()
	callbacks := make([]func(*AccordionConfig), len(w.onChange))
	copy(callbacks, w.onChange)
	w.mu.RUnlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (w *Watcher) emitError(err error) {
	w.mu.RLock()
	callbacks := make([]func(error), len(w.onError))
	copy(callbacks, w.onError)
	w.mu.RUnlock()

	for _, cb := range callbacks {
		cb(err)
	}
}
