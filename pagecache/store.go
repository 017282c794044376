package pagecache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// BlobStore persists cache blobs by document ID. The blob layout is opaque
// to the store; the host only moves bytes.
type BlobStore interface {
	Load(ctx context.Context, docID string) ([]byte, error)
	Save(ctx context.Context, docID string, blob []byte) error
	Delete(ctx context.Context, docID string) error
}

// MemStore is an in-memory BlobStore.
type MemStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

func (s *MemStore) Load(_ context.Context, docID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.blobs[docID]
	if !ok {
		return nil, ErrCacheMissing
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (s *MemStore) Save(_ context.Context, docID string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(blob))
	copy(stored, blob)
	s.blobs[docID] = stored
	return nil
}

func (s *MemStore) Delete(_ context.Context, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, docID)
	return nil
}

// FileStore keeps one blob file per document under a base directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(docID string) string {
	return filepath.Join(s.dir, docID+".cache.json")
}

func (s *FileStore) Load(_ context.Context, docID string) ([]byte, error) {
	blob, err := os.ReadFile(s.path(docID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrCacheMissing
	}
	if err != nil {
		return nil, fmt.Errorf("read cache blob: %w", err)
	}
	return blob, nil
}

// Save writes the blob through a temp file and rename so readers never see
// a partial write.
func (s *FileStore) Save(_ context.Context, docID string, blob []byte) error {
	tmp, err := os.CreateTemp(s.dir, docID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp blob: %w", err)
	}
	if err := os.Rename(tmpPath, s.path(docID)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace cache blob: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, docID string) error {
	err := os.Remove(s.path(docID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete cache blob: %w", err)
	}
	return nil
}
