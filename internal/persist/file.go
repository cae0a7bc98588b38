package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"flipdeck-api/internal/model"
)

// FileSnapshotStore implements SnapshotStore on a single JSON file, the
// closest server-side analog of the browser localStorage the tracker grew up
// on. Saves go through a temp file plus rename so a crash mid-write cannot
// leave a truncated snapshot behind.
type FileSnapshotStore struct {
	path string
	mu   sync.Mutex
}

// NewFileSnapshotStore prepares a file-backed store at path, creating parent
// directories as needed.
func NewFileSnapshotStore(path string) (*FileSnapshotStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	log.Printf("[FileSnapshotStore] Initialized with file: %s", path)
	return &FileSnapshotStore{path: path}, nil
}

// Save replaces the stored snapshot.
func (s *FileSnapshotStore) Save(ctx context.Context, snap *model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Load returns the last saved snapshot, or (nil, nil) when the file does not
// exist yet.
func (s *FileSnapshotStore) Load(ctx context.Context) (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("stored snapshot is corrupt: %w", err)
	}
	return &snap, nil
}

// Close is a no-op for the file store.
func (s *FileSnapshotStore) Close() error {
	return nil
}

var _ SnapshotStore = (*FileSnapshotStore)(nil)
