package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LimitsWatcher watches a YAML limits file and reloads it on change, so
// document size limits can be tightened without a restart.
type LimitsWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	current  Limits
	mu       sync.RWMutex
	onChange []func(Limits)
	logger   *zap.Logger
	stopCh   chan struct{}
}

// NewLimitsWatcher creates a watcher over the given limits file
func NewLimitsWatcher(path string, initial Limits, logger *zap.Logger) (*LimitsWatcher, error) {
	limits, err := loadLimitsFromFile(path, initial)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial limits: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch limits file: %w", err)
	}

	// Watch the directory too so atomic saves (rename) are seen.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		logger.Warn("Failed to watch limits directory", zap.Error(err))
	}

	return &LimitsWatcher{
		path:    path,
		watcher: watcher,
		current: limits,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start begins watching for limit changes
func (w *LimitsWatcher) Start() {
	go w.watchLoop()
	w.logger.Info("Limits watcher started", zap.String("path", w.path))
}

// Stop stops watching
func (w *LimitsWatcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
	w.logger.Info("Limits watcher stopped")
}

// Current returns the most recently loaded limits
func (w *LimitsWatcher) Current() Limits {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange registers a callback invoked after each successful reload
func (w *LimitsWatcher) OnChange(handler func(Limits)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, handler)
}

func (w *LimitsWatcher) watchLoop() {
	var debounceTimer *time.Timer
	debounceDuration := 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, func() {
					w.handleChange()
				})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))
		}
	}
}

func (w *LimitsWatcher) handleChange() {
	w.logger.Info("Limits file changed, reloading", zap.String("path", w.path))

	w.mu.RLock()
	base := w.current
	w.mu.RUnlock()

	limits, err := loadLimitsFromFile(w.path, base)
	if err != nil {
		w.logger.Error("Failed to reload limits", zap.Error(err))
		return
	}

	if err := limits.Validate(); err != nil {
		w.logger.Error("Invalid limits, keeping current", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = limits
	handlers := make([]func(Limits), len(w.onChange))
	copy(handlers, w.onChange)
	w.mu.Unlock()

	for _, handler := range handlers {
		go handler(limits)
	}

	w.logger.Info("Limits reloaded",
		zap.Int("max_statements_per_set", limits.MaxStatementsPerSet),
		zap.Int("max_nodes_per_tree", limits.MaxNodesPerTree))
}

// loadLimitsFromFile overlays the YAML file over the given base limits
func loadLimitsFromFile(path string, base Limits) (Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, err
	}

	limits := base
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return Limits{}, fmt.Errorf("failed to parse limits file: %w", err)
	}
	return limits, nil
}
