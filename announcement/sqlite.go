package announcement

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps the same list of JSON records in a SQLite table, for
// running without a Redis server. The position column preserves append
// order.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dsn.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS announcements (
		position INTEGER PRIMARY KEY AUTOINCREMENT,
		id INTEGER NOT NULL UNIQUE,
		record TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS counters (
		name TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns every record in append order.
func (s *SQLiteStore) List(ctx context.Context) ([]Announcement, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT record FROM announcements ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query announcements: %w", err)
	}
	defer rows.Close()

	var raw []string
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("failed to scan announcement: %w", err)
		}
		raw = append(raw, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate announcements: %w", err)
	}

	return decodeAll(raw)
}

// Append bumps the counter and inserts the record in one transaction.
func (s *SQLiteStore) Append(ctx context.Context, a Announcement) (*Announcement, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO counters (name, value) VALUES (?, 1)
		ON CONFLICT(name) DO UPDATE SET value = value + 1
	`, DefaultCounterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate announcement id: %w", err)
	}

	if err := tx.QueryRowContext(ctx, "SELECT value FROM counters WHERE name = ?", DefaultCounterKey).Scan(&a.ID); err != nil {
		return nil, fmt.Errorf("failed to read announcement id: %w", err)
	}

	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal announcement: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO announcements (id, record) VALUES (?, ?)", a.ID, string(data)); err != nil {
		return nil, fmt.Errorf("failed to insert announcement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit announcement: %w", err)
	}

	return &a, nil
}

// Update reads, modifies and rewrites one record inside a transaction.
func (s *SQLiteStore) Update(ctx context.Context, id int64, fn func(*Announcement)) (*Announcement, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int64
	var record string
	err = tx.QueryRowContext(ctx, "SELECT position, record FROM announcements WHERE id = ?", id).Scan(&position, &record)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query announcement: %w", err)
	}

	var a Announcement
	if err := json.Unmarshal([]byte(record), &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal announcement %d: %w", id, err)
	}

	fn(&a)

	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal announcement: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "UPDATE announcements SET record = ? WHERE position = ?", string(data), position); err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit announcement: %w", err)
	}

	return &a, nil
}
