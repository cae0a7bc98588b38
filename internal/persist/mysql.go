package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"flipdeck-api/internal/model"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// MySQLSnapshotStore implements SnapshotStore using MySQL with a single JSON
// snapshot row.
type MySQLSnapshotStore struct {
	db *sql.DB
}

// NewMySQLSnapshotStore connects to MySQL.
// dsn format: "user:password@tcp(host:port)/dbname?parseTime=true"
func NewMySQLSnapshotStore(dsn string) (*MySQLSnapshotStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS flipdeck_snapshot (
		id INT PRIMARY KEY,
		snapshot JSON NOT NULL,
		saved_at DATETIME NOT NULL
	)`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}

	log.Println("[MySQLSnapshotStore] Initialized")
	return &MySQLSnapshotStore{db: db}, nil
}

// Save replaces the stored snapshot.
func (s *MySQLSnapshotStore) Save(ctx context.Context, snap *model.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO flipdeck_snapshot (id, snapshot, saved_at)
		VALUES (1, ?, NOW())
		ON DUPLICATE KEY UPDATE
			snapshot = VALUES(snapshot),
			saved_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, string(raw)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load returns the last saved snapshot, or (nil, nil) when none exists.
func (s *MySQLSnapshotStore) Load(ctx context.Context) (*model.Snapshot, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM flipdeck_snapshot WHERE id = 1`).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("stored snapshot is corrupt: %w", err)
	}
	return &snap, nil
}

// Close closes the database connection.
func (s *MySQLSnapshotStore) Close() error {
	return s.db.Close()
}

var _ SnapshotStore = (*MySQLSnapshotStore)(nil)
