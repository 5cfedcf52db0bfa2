package snapshot

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/crestlinelabs/decisiond/internal/attention"
	"github.com/crestlinelabs/decisiond/internal/decision"
	"github.com/crestlinelabs/decisiond/internal/metrics"
)

// Watcher keeps a current engine result for one snapshot file, re-running
// the engine whenever the file changes. Readers get an immutable result;
// the swap happens under a lock.
type Watcher struct {
	path    string
	engine  *decision.Engine
	logger  *zap.Logger
	watcher *fsnotify.Watcher

	mu       sync.RWMutex
	result   decision.Result
	tracker  []attention.SourceItem
	loadedAt time.Time
}

// NewWatcher loads the snapshot once and prepares the filesystem watcher.
func NewWatcher(path string, engine *decision.Engine, logger *zap.Logger) (*Watcher, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize filesystem watcher: %w", err)
	}

	w := &Watcher{
		path:    path,
		engine:  engine,
		logger:  logger,
		watcher: fsw,
	}
	if err := w.Reload(time.Now()); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Reload re-reads the snapshot and re-evaluates the engine at the given
// clock value.
func (w *Watcher) Reload(now time.Time) error {
	f, err := Load(w.path)
	if err != nil {
		return err
	}

	start := time.Now()
	result := w.engine.Evaluate(f.Records, now)
	metrics.ObserveEngineRun(result, time.Since(start))

	w.mu.Lock()
	w.result = result
	w.tracker = f.AttentionItems
	w.loadedAt = time.Now()
	w.mu.Unlock()

	w.logger.Info("snapshot evaluated",
		zap.String("path", w.path),
		zap.String("run_id", result.Meta.RunID),
		zap.Int("action_items", result.Meta.Counts.Action),
		zap.Int("intel_items", result.Meta.Counts.Intel),
	)
	return nil
}

// Result returns the current engine result.
func (w *Watcher) Result() decision.Result {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.result
}

// TrackerItems returns the attention tracker's items from the current
// snapshot.
func (w *Watcher) TrackerItems() []attention.SourceItem {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tracker
}

// Start watches the snapshot's directory and re-evaluates on writes to the
// file. Watching the directory rather than the file survives the
// rename-and-replace pattern editors and exporters use. Start blocks until
// ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	defer w.watcher.Close()

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := w.Reload(time.Now()); err != nil {
				// Keep serving the previous result; exporters often write
				// snapshots in multiple chunks.
				w.logger.Warn("snapshot reload failed", zap.String("path", w.path), zap.Error(err))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("snapshot watcher error", zap.Error(err))
		}
	}
}
