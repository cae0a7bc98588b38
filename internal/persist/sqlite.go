package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"flipdeck-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteSnapshotStore implements SnapshotStore using SQLite. The snapshot is
// kept as a single raw-JSON row, which keeps the schema stable while the
// record model evolves.
type SQLiteSnapshotStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteSnapshotStore opens (and if needed creates) the database file.
// dbPath is the path to the SQLite database file (e.g., "./data/flipdeck.db")
func NewSQLiteSnapshotStore(dbPath string) (*SQLiteSnapshotStore, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSQLiteTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}

	log.Printf("[SQLiteSnapshotStore] Initialized with database: %s", dbPath)
	return &SQLiteSnapshotStore{db: db}, nil
}

func createSQLiteTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS flipdeck_snapshot (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		snapshot TEXT NOT NULL,
		saved_at DATETIME NOT NULL
	);`
	_, err := db.Exec(query)
	return err
}

// Save replaces the stored snapshot.
func (s *SQLiteSnapshotStore) Save(ctx context.Context, snap *model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO flipdeck_snapshot (id, snapshot, saved_at)
		VALUES (1, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET
			snapshot = excluded.snapshot,
			saved_at = datetime('now')`

	if _, err := s.db.ExecContext(ctx, query, string(raw)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load returns the last saved snapshot, or (nil, nil) when none exists.
func (s *SQLiteSnapshotStore) Load(ctx context.Context) (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM flipdeck_snapshot WHERE id = 1`).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("stored snapshot is corrupt: %w", err)
	}
	return &snap, nil
}

// Close closes the database connection.
func (s *SQLiteSnapshotStore) Close() error {
	return s.db.Close()
}

var _ SnapshotStore = (*SQLiteSnapshotStore)(nil)
