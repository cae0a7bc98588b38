package persist

import (
	"context"

	"flipdeck-api/internal/model"
)

// SnapshotStore persists the full store state. Writes happen synchronously
// after every mutation (write-through, no batching), reads happen once at
// startup.
type SnapshotStore interface {
	// Load returns the last saved snapshot, or (nil, nil) if none was ever
	// saved. A read or parse failure is returned as an error; the caller is
	// expected to log it and start from an empty state rather than crash.
	Load(ctx context.Context) (*model.Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, snap *model.Snapshot) error

	// Close releases the underlying storage handle.
	Close() error
}
