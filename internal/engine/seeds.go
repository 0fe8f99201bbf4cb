package engine

// seeds.go - CSV seed data loading

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// seedFile is one parsed seed CSV: a header line of column names followed
// by data rows.
type seedFile struct {
	table  string
	header []string
	rows   [][]string
}

// LoadSeeds loads all CSV files from the seeds directory into the database.
// Files are parsed concurrently; inserts run serially afterwards so all
// Database mutation stays on one goroutine.
func (e *Engine) LoadSeeds(ctx context.Context) error {
	if e.seedsDir == "" {
		return nil
	}
	if e.doc == nil {
		return fmt.Errorf("schema not loaded")
	}

	e.logger.Debug("loading seeds", "seeds_dir", e.seedsDir)

	entries, err := os.ReadDir(e.seedsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No seeds directory is OK
		}
		return fmt.Errorf("failed to read seeds directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return nil
	}

	// Parse every file before touching the database.
	parsed := make([]*seedFile, len(names))
	g, _ := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			sf, err := parseSeedFile(filepath.Join(e.seedsDir, name))
			if err != nil {
				return fmt.Errorf("failed to parse seed %s: %w", name, err)
			}
			sf.table = strings.TrimSuffix(name, ".csv")
			parsed[i] = sf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	byTable := make(map[string]*seedFile, len(parsed))
	for _, sf := range parsed {
		if _, ok := e.db.Table(sf.table); !ok {
			return fmt.Errorf("seed %s.csv has no table in the schema", sf.table)
		}
		byTable[sf.table] = sf
	}

	// Insert in schema document order so foreign key parents load before
	// their children.
	for _, td := range e.doc.Tables {
		sf, ok := byTable[td.Name]
		if !ok {
			continue
		}

		e.logger.Debug("loading seed file", "table", sf.table, "rows", len(sf.rows))

		for i, row := range sf.rows {
			if err := e.db.InsertWithColumns(sf.table, sf.header, row); err != nil {
				return fmt.Errorf("seed %s.csv row %d: %w", sf.table, i+1, err)
			}
		}
	}

	return nil
}

// parseSeedFile reads one seed CSV: a header line of column names followed
// by data rows. Seed files are user-authored, so cells follow encoding/csv
// quoting rules.
func parseSeedFile(path string) (*seedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	return &seedFile{header: records[0], rows: records[1:]}, nil
}
