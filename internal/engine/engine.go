// Package engine provides the project runtime for the CLI.
// It builds an in-memory Database from a schema document plus CSV seed
// files, and owns the operation history store.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapstore/internal/schema"
	"github.com/leapstack-labs/leapstore/internal/state"
	"github.com/leapstack-labs/leapstore/pkg/database"
)

// Engine ties a Database built from project files to the history store.
type Engine struct {
	// Structured logger
	logger *slog.Logger

	db    *database.Database
	store *state.Store

	schemaPath string
	seedsDir   string

	// Schema document, retained after LoadSchema for creation order.
	doc *schema.Document
}

// Config holds engine configuration.
type Config struct {
	// DatabaseName names the in-memory database
	DatabaseName string
	// SchemaPath is the path to the YAML schema document
	SchemaPath string
	// SeedsDir is the path to the seeds directory (optional)
	SeedsDir string
	// StatePath is the path to the SQLite history database
	StatePath string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates a new engine and opens the history store.
// The Database itself is populated by Build.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initializing engine", "database", cfg.DatabaseName, "schema", cfg.SchemaPath)

	// The state directory may not exist on first run.
	if dir := filepath.Dir(cfg.StatePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewStore()
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}

	name := cfg.DatabaseName
	if name == "" {
		name = "leapstore"
	}

	return &Engine{
		logger:     logger,
		db:         database.New(name),
		store:      store,
		schemaPath: cfg.SchemaPath,
		seedsDir:   cfg.SeedsDir,
	}, nil
}

// Build loads the schema document and all seed files into the database.
func (e *Engine) Build(ctx context.Context) error {
	if err := e.LoadSchema(); err != nil {
		return err
	}
	return e.LoadSeeds(ctx)
}

// LoadSchema parses the schema document and creates its tables in order.
// The document validates forward references, so creation into a fresh
// Database only fails if the document itself is broken.
func (e *Engine) LoadSchema() error {
	doc, err := schema.Load(e.schemaPath)
	if err != nil {
		return err
	}

	e.db = database.New(e.db.Name())
	for _, td := range doc.Tables {
		cols, err := td.ColumnDefs()
		if err != nil {
			return err
		}
		if err := e.db.CreateTable(td.Name, cols); err != nil {
			return fmt.Errorf("failed to create table %s: %w", td.Name, err)
		}
		e.logger.Debug("created table", "table", td.Name, "columns", len(cols))
	}

	e.doc = doc
	return nil
}

// Close releases the history store.
func (e *Engine) Close() error {
	e.logger.Debug("closing engine")
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// RecordOperation writes one history entry for a completed operation.
// History failures are logged, never surfaced: losing a history row must
// not fail the data operation it describes.
func (e *Engine) RecordOperation(operation, tableName string, rowsAffected int64, opErr error) {
	entry, err := e.store.RecordStart(operation, tableName)
	if err != nil {
		e.logger.Warn("failed to record operation", "operation", operation, "error", err)
		return
	}
	if err := e.store.RecordResult(entry.ID, rowsAffected, opErr); err != nil {
		e.logger.Warn("failed to record operation result", "operation", operation, "error", err)
	}
}

// --- Getters (public accessors) ---

// DB returns the in-memory database.
func (e *Engine) DB() *database.Database {
	return e.db
}

// StateStore returns the history store.
func (e *Engine) StateStore() *state.Store {
	return e.store
}

// Document returns the parsed schema document, or nil before LoadSchema.
func (e *Engine) Document() *schema.Document {
	return e.doc
}
