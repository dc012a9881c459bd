package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/sourcecd/skladbot/internal/models"
	"github.com/sourcecd/skladbot/internal/prjerrors"
)

// FileStore persists the snapshot as a single JSON file, replaced atomically
// on every write.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Snapshot(_ context.Context) (*models.OrderCache, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *FileStore) load() (*models.OrderCache, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, prjerrors.ErrEmptyCache
		}
		return nil, err
	}
	var snap models.OrderCache
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (f *FileStore) Save(_ context.Context, snap *models.OrderCache) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(snap)
}

func (f *FileStore) write(snap *models.OrderCache) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "orders_cache*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

func (f *FileStore) Upsert(_ context.Context, order models.OrderSummary) (*models.OrderCache, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap, err := f.load()
	if err != nil {
		if !errors.Is(err, prjerrors.ErrEmptyCache) {
			return nil, err
		}
		snap = NewSnapshot(nil)
	}
	updated := NewSnapshot(upsertOrders(snap.Orders, order))
	if err := f.write(updated); err != nil {
		return nil, err
	}
	return updated, nil
}
