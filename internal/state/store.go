// Package state records a history of data operations in a local SQLite
// database. Only operation metadata is stored, never table contents; the
// engine itself has no dependency on this store.
package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// Status of a recorded operation.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Entry is one recorded operation.
type Entry struct {
	ID           string
	Operation    string
	TableName    string
	RowsAffected int64
	Status       Status
	Error        string
	StartedAt    time.Time
	CompletedAt  *time.Time
}

// Store records operations in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates an unopened store.
func NewStore() *Store {
	return &Store{}
}

// Open opens the history database at path. Use ":memory:" for a throwaway
// store. Migrate must run before the store is used.
func (s *Store) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping history database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the path the store was opened with.
func (s *Store) Path() string { return s.path }

// RecordStart inserts a running entry for an operation and returns it.
func (s *Store) RecordStart(operation, tableName string) (*Entry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("history database not opened")
	}

	e := &Entry{
		ID:        uuid.New().String(),
		Operation: operation,
		TableName: tableName,
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO history (id, operation, table_name, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Operation, e.TableName, e.Status, e.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record operation: %w", err)
	}

	return e, nil
}

// RecordResult completes the entry: succeeded with a row count, or failed
// with the operation's error.
func (s *Store) RecordResult(id string, rowsAffected int64, opErr error) error {
	if s.db == nil {
		return fmt.Errorf("history database not opened")
	}

	now := time.Now().UTC()
	status := StatusSucceeded
	var errMsg *string
	if opErr != nil {
		status = StatusFailed
		msg := opErr.Error()
		errMsg = &msg
	}

	result, err := s.db.Exec(
		`UPDATE history SET status = ?, rows_affected = ?, completed_at = ?, error = ? WHERE id = ?`,
		status, rowsAffected, now, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("history entry not found: %s", id)
	}
	return nil
}

// List returns entries newest first. A limit of zero or less returns all of
// them.
func (s *Store) List(limit int) ([]*Entry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("history database not opened")
	}

	query := `SELECT id, operation, table_name, rows_affected, status, error, started_at, completed_at
		 FROM history ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		var completedAt sql.NullTime
		var errMsg sql.NullString

		if err := rows.Scan(&e.ID, &e.Operation, &e.TableName, &e.RowsAffected,
			&e.Status, &errMsg, &e.StartedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		if completedAt.Valid {
			e.CompletedAt = &completedAt.Time
		}
		if errMsg.Valid {
			e.Error = errMsg.String
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear() (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("history database not opened")
	}

	result, err := s.db.Exec(`DELETE FROM history`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
