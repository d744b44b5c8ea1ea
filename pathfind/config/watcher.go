package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits for a burst of file events to settle
const DefaultDebounce = 500 * time.Millisecond

// Watcher refreshes a Manager's cache when map files in its directory change
type Watcher struct {
	manager  *Manager
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	onReload func(error)
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher starts watching the manager's directory. onReload, if not nil,
// is called after every cache refresh with its error.
func NewWatcher(manager *Manager, debounce time.Duration, onReload func(error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(manager.Dir()); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		manager:  manager,
		watcher:  fsw,
		debounce: debounce,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	go w.loop()

	log.WithField("dir", manager.Dir()).Debug("watching map configurations")
	return w, nil
}

// Stop ends the watch; pending reloads are dropped
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isConfigExt(filepath.Ext(event.Name)) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.WithField("event", event.String()).Debug("map configuration changed")
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("config watcher error")
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	err := w.manager.RefreshCache()
	if err != nil {
		log.WithError(err).Error("failed to refresh map configurations")
	} else {
		log.WithField("dir", w.manager.Dir()).Info("map configurations reloaded")
	}

	if w.onReload != nil {
		w.onReload(err)
	}
}
