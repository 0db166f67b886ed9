package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"newsdigest/internal/domain"
	"newsdigest/internal/importer"
)

// IngestFunc digests the given files.
type IngestFunc func(ctx context.Context, paths []string) ([]domain.Digest, error)

// Watcher digests .txt and .json files written into a directory. Bursts of
// events are coalesced so an editor save triggers one ingest.
type Watcher struct {
	dir      string
	ingest   IngestFunc
	debounce time.Duration
	logger   *logrus.Logger
}

func New(dir string, ingest IngestFunc, logger *logrus.Logger) *Watcher {
	if logger == nil {
		logger = logrus.New()
	}
	return &Watcher{dir: dir, ingest: ingest, debounce: 300 * time.Millisecond, logger: logger}
}

// Run watches until ctx is done. It returns once the watch is torn down.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.WithField("dir", w.dir).Info("watching for articles")

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 || !importer.Supported(ev.Name) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = struct{}{}
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("watcher error")
		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]struct{})
			digests, err := w.ingest(ctx, paths)
			if err != nil {
				w.logger.WithError(err).WithField("files", len(paths)).Error("ingest failed")
				continue
			}
			w.logger.WithFields(logrus.Fields{"files": len(paths), "digests": len(digests)}).Info("files digested")
		}
	}
}
