package watcher

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RegenerateFunc is invoked after the watched document settles.
type RegenerateFunc func(ctx context.Context) error

// DocumentWatcher watches one boilerplate document and triggers regeneration
// when it changes. Editor save patterns (write-then-rename) produce bursts
// of events, so changes are debounced before the callback fires.
type DocumentWatcher struct {
	docPath      string
	watcher      *fsnotify.Watcher
	regenerate   RegenerateFunc
	debounceTime time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// New creates a watcher for the given document path.
func New(docPath string, regenerate RegenerateFunc) (*DocumentWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the containing directory, not the file: editors replace files
	// on save, which would drop a file-level watch.
	if err := fsWatcher.Add(filepath.Dir(docPath)); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return &DocumentWatcher{
		docPath:      docPath,
		watcher:      fsWatcher,
		regenerate:   regenerate,
		debounceTime: 500 * time.Millisecond,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}, nil
}

// Start begins watching. It blocks until the context is cancelled or Stop
// is called.
func (dw *DocumentWatcher) Start(ctx context.Context) {
	defer close(dw.doneCh)

	var debounceTimer *time.Timer
	regenCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-dw.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if !dw.isDocumentEvent(event) {
				continue
			}

			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}
			debounceTimer = time.AfterFunc(dw.debounceTime, func() {
				select {
				case regenCh <- struct{}{}:
				default:
				}
			})

		case <-regenCh:
			start := time.Now()
			log.Printf("Document changed, regenerating...")
			if err := dw.regenerate(ctx); err != nil {
				log.Printf("Error during regeneration: %v", err)
				continue
			}
			log.Printf("Regeneration complete in %v", time.Since(start))

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Document watcher error: %v", err)
		}
	}
}

// Stop stops the watcher and waits for the event loop to exit.
func (dw *DocumentWatcher) Stop() {
	dw.stopOnce.Do(func() {
		close(dw.stopCh)
		<-dw.doneCh
		dw.watcher.Close()
	})
}

// isDocumentEvent filters directory events down to writes of the watched
// document itself.
func (dw *DocumentWatcher) isDocumentEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == filepath.Clean(dw.docPath)
}
