package constable

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/axicon-labs/constable/internal/discover"
	"github.com/axicon-labs/constable/pkg/constants"
	"github.com/axicon-labs/constable/pkg/errors"
	"github.com/axicon-labs/constable/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ Watcher = (*engine)(nil)

// Watcher re-reconciles documents as they change on disk.
type Watcher interface {
	// Watch reconciles the given paths once, then re-reconciles each
	// document whenever it changes, until ctx is done. Watch never
	// writes documents; observe cycles through OnDocumentReconciled.
	Watch(ctx context.Context, patterns ...string) error
}

// Watch runs the dry-run pipeline over the given paths and keeps
// re-running it per changed document, coalescing editor write bursts
// through a debounce window.
func (e *engine) Watch(ctx context.Context, patterns ...string) error {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Ctx(ctx)

	// Step 1: Resolve and reconcile the initial document set
	d := discover.New()
	files, err := d.Resolve(patterns...)
	if err != nil {
		return err
	}
	for _, path := range files {
		if _, err := e.reconcilePath(ctx, path, false); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error().Err(err).Str("document", path).Msg("Document failed")
		}
	}

	// Step 2: Watch the parent directories. fsnotify reports events
	// per directory, so new documents are picked up as they appear.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.NewConfigError("watch", "creating filesystem watcher", err)
	}
	defer func() { _ = watcher.Close() }()

	known := make(map[string]struct{}, len(files))
	dirs := make(map[string]struct{})
	for _, path := range files {
		known[path] = struct{}{}
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return errors.WrapIO("watch", dir, err)
		}
	}
	logger.Info().
		Int("documents", len(known)).
		Int("directories", len(dirs)).
		Dur("debounce", constants.WatchDebounce).
		Msg("Watching for changes")

	// Step 3: Debounce loop. Events accumulate in pending; the ticker
	// flushes them as one rescan cycle.
	pending := make(map[string]struct{})
	ticker := time.NewTicker(constants.WatchDebounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			path := event.Name
			if _, tracked := known[path]; !tracked {
				if !d.Matches(path) {
					continue
				}
				known[path] = struct{}{}
				logger.Debug().Str("document", path).Msg("Tracking new document")
			}
			pending[path] = struct{}{}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("Watcher error")

		case <-ticker.C:
			if len(pending) == 0 {
				continue
			}
			dirty := make([]string, 0, len(pending))
			for path := range pending {
				dirty = append(dirty, path)
			}
			sort.Strings(dirty)
			pending = make(map[string]struct{})

			for _, path := range dirty {
				if _, err := e.reconcilePath(ctx, path, false); err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					logger.Error().Err(err).Str("document", path).Msg("Document failed")
				}
			}
		}
	}
}
