package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bassista/go_mart/internal/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
)

// CatalogStore defines the interface for working-set operations needed by the
// watcher callback.
type CatalogStore interface {
	GetLastUpdate() int64
	IsDirty() bool
	Snapshot() (DataDocument, error)
	Replace(doc DataDocument) error
}

// JSONRepository handles disk persistence and watching of the catalog file.
type JSONRepository struct {
	path      string
	dir       string
	base      string
	validator *validator.Validate
	mu        sync.Mutex
}

// NewJSONRepository creates a repository for the given JSON file path.
// It returns the repository interface to avoid leaking implementation details.
func NewJSONRepository(path string) (Repository, error) {
	if path == "" {
		return nil, errors.New("catalog file path is required")
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if dir == "" || dir == "." {
		dir = "."
	}

	v := validator.New()
	return &JSONRepository{path: path, dir: dir, base: base, validator: v}, nil
}

// Load reads the JSON file, parses and validates it.
// A missing file yields an empty catalog rather than an error, so a fresh
// deployment starts with no products and no orders.
func (r *JSONRepository) Load(ctx context.Context) (*DataDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadUnlocked()
}

// loadUnlocked reads the JSON file without acquiring the lock (caller must hold it).
func (r *JSONRepository) loadUnlocked() (*DataDocument, error) {
	file, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &DataDocument{Products: []Product{}, Orders: []Order{}}, nil
		}
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	var doc DataDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog file: %w", err)
	}

	doc.ApplyDefaults()

	if r.validator != nil {
		if err := r.validator.Struct(&doc); err != nil {
			return nil, fmt.Errorf("validate catalog file: %w", err)
		}
	}

	return &doc, nil
}

// Save validates and writes the document atomically to disk.
func (r *JSONRepository) Save(ctx context.Context, doc *DataDocument) error {
	if doc == nil {
		return errors.New("document is nil")
	}
	if r.validator != nil {
		if err := r.validator.Struct(doc); err != nil {
			return fmt.Errorf("validate before save: %w", err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveUnlocked(doc)
}

// saveUnlocked writes the document without acquiring the lock (caller must hold it).
func (r *JSONRepository) saveUnlocked(doc *DataDocument) error {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	tmpFile, err := os.CreateTemp(r.dir, r.base+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := tmpFile.Write(payload); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), r.path); err != nil {
		return fmt.Errorf("replace catalog file: %w", err)
	}

	return nil
}

// StartWatcher listens for changes to the catalog file and reloads the working
// set after debounce. It watches the parent directory (not the file) so atomic
// replace sequences (temp+rename) are still observed. Events are filtered by
// basename and debounced to avoid double reloads on write+chmod/rename cycles.
// The caller owns the provided context: cancel it to stop the goroutine and
// close the watcher cleanly.
func (r *JSONRepository) StartWatcher(ctx context.Context, store CatalogStore) error {
	if store == nil {
		return errors.New("catalog store is required")
	}
	onChange := r.makeWatcherCallback(store)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}

	// Run watcher loop in the background; it exits when ctx is canceled or channels close.
	go func() {
		defer watcher.Close()

		// debounce coalesces bursty fsnotify events (write+chmod/rename) into a single reload.
		var debounce *time.Timer
		schedule := func() {
			if debounce != nil {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
			}
			debounce = time.AfterFunc(200*time.Millisecond, onChange)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != r.base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod|fsnotify.Remove|fsnotify.Rename) != 0 {
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithComponent("catalog-repo").Errorf("watcher error: %v", err)
			}
		}
	}()

	return nil
}

// makeWatcherCallback returns a callback that reloads the working set from disk
// when the on-disk version is newer and the working set has no pending writes.
func (r *JSONRepository) makeWatcherCallback(store CatalogStore) func() {
	return func() {
		diskDoc, loadErr := r.Load(context.Background())
		if loadErr != nil {
			logger.WithComponent("catalog-repo").Errorf("watch reload failed: %v", loadErr)
			return
		}
		cacheLastUpdate := store.GetLastUpdate()
		diskLastUpdate := diskDoc.Metadata.LastUpdate

		// If disk is not newer, skip reload
		if diskLastUpdate < cacheLastUpdate {
			logger.WithComponent("catalog-repo").Debugf("disk version is not newer: disk=%d, memory=%d", diskLastUpdate, cacheLastUpdate)
			return
		}

		if store.IsDirty() {
			// The working set will be flushed to disk soon anyway.
			logger.WithComponent("catalog-repo").Warn("disk data is newer but working set is dirty; skipping reload")
			return
		}

		isDiskSameAsMemory := false
		if diskLastUpdate == cacheLastUpdate {
			snapshot, err := store.Snapshot()
			if err != nil {
				logger.WithComponent("catalog-repo").Errorf("reload error: failed to get snapshot: %v", err)
				return
			}
			isDiskSameAsMemory = AreDataDocumentsEqual(&snapshot, diskDoc)
		}
		if !isDiskSameAsMemory {
			if err := store.Replace(*diskDoc); err != nil {
				logger.WithComponent("catalog-repo").Errorf("reload error: %v", err)
				return
			}
			logger.WithComponent("catalog-repo").Info("catalog reloaded from newer disk version")
		}
	}
}
