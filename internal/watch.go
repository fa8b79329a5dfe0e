package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/fisherbryan/boolint/internal/types"
)

// debounce window for bursts of write events on the same file
const watchDebounce = 100 * time.Millisecond

// Watcher re-lints files as they change on disk.
type Watcher struct {
	engine  *Engine
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	done    chan struct{}

	mu      sync.Mutex
	lastRun map[string]time.Time
}

// NewWatcher wraps the engine with a filesystem watcher.
func NewWatcher(engine *Engine, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		engine:  engine,
		watcher: fsw,
		logger:  logger,
		done:    make(chan struct{}),
		lastRun: make(map[string]time.Time),
	}, nil
}

// Watch registers the directories (recursively) and starts the event
// loop. It returns immediately; Close stops the loop.
func (w *Watcher) Watch(dirs ...string) error {
	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	go w.loop()
	return nil
}

// Close stops the event loop and releases the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
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
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".go") {
		return
	}
	if !w.shouldRun(event.Name) {
		return
	}

	issues, err := w.engine.Run(event.Name)
	if err != nil {
		w.logger.Error("error linting changed file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	w.reportIssues(event.Name, issues)
}

// shouldRun coalesces a burst of write events on the same file into one
// run: events arriving within the debounce window of the previous run
// are dropped. A per-file timestamp keeps the event loop from blocking,
// so a burst on one file cannot stall events for the others.
func (w *Watcher) shouldRun(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if last, ok := w.lastRun[name]; ok && now.Sub(last) < watchDebounce {
		return false
	}
	w.lastRun[name] = now
	return true
}

func (w *Watcher) reportIssues(filename string, issues []tt.Issue) {
	if len(issues) == 0 {
		w.logger.Info("no issues found", zap.String("file", filename))
		return
	}

	w.logger.Info("issues found", zap.String("file", filename), zap.Int("count", len(issues)))
	for _, issue := range issues {
		w.logger.Info("issue",
			zap.String("rule", issue.Rule),
			zap.String("position", issue.Start.String()),
			zap.String("message", issue.Message),
		)
	}
}
