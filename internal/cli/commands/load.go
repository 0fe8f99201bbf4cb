package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/leapstore/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewLoadCommand creates the load command.
func NewLoadCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Create tables from the schema and load seed data",
		Long: `Build the database: create every table defined in the schema document,
then insert rows from seeds/<table>.csv files.

Seed files are plain CSV: a header line of column names followed by data
rows. Columns omitted from a seed file default to null, and every insert
goes through full primary-key and foreign-key validation.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format

Use --output to override: auto, text, markdown, json`,
		Example: `  # Build the database once
  leapstore load

  # Rebuild whenever the schema or a seed file changes
  leapstore load --watch

  # Load as JSON
  leapstore load --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd, watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Re-load on schema or seed file changes")

	return cmd
}

func runLoad(cmd *cobra.Command, watch bool) error {
	cc, cleanup, err := NewCommandContextWithoutBuild(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cc.Cfg.ValidateSchemaFile(); err != nil {
		return err
	}

	if err := loadOnce(cmd, cc); err != nil {
		if !watch {
			return err
		}
		// In watch mode a broken schema or seed is reported and watched,
		// not fatal: the next save may fix it.
		cc.Renderer.Error(err.Error())
	}

	if watch {
		return watchLoop(cmd, cc)
	}
	return nil
}

// loadOnce rebuilds the database and renders the result.
func loadOnce(cmd *cobra.Command, cc *CommandContext) error {
	r := cc.Renderer
	effectiveMode := r.EffectiveMode()

	var spinner *output.Spinner
	if effectiveMode == output.ModeText && r.IsTTY() {
		spinner = r.NewSpinner("Loading...")
		spinner.Start()
	}

	err := cc.Engine.Build(cmd.Context())

	result := buildLoadOutput(cc)
	cc.Engine.RecordOperation("load", "", int64(result.Summary.TotalRows), err)

	if err != nil {
		if spinner != nil {
			spinner.Fail("Load failed")
		}
		return err
	}
	if spinner != nil {
		spinner.Success("Database loaded")
	}

	switch effectiveMode {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeMarkdown:
		return loadMarkdown(r, cc, result)
	default:
		return loadText(r, cc, result)
	}
}

// buildLoadOutput collects per-table results after a build attempt.
func buildLoadOutput(cc *CommandContext) *output.LoadOutput {
	result := &output.LoadOutput{Tables: []output.TableLoadInfo{}}

	doc := cc.Engine.Document()
	if doc == nil {
		return result
	}

	for _, td := range doc.Tables {
		info := output.TableLoadInfo{Name: td.Name}
		if t, ok := cc.Engine.DB().Table(td.Name); ok {
			info.Rows = t.RowCount()
		}
		seedPath := filepath.Join(cc.Cfg.SeedsDir, td.Name+".csv")
		if _, err := os.Stat(seedPath); err == nil {
			info.SeedFile = seedPath
		}
		result.Tables = append(result.Tables, info)
		result.Summary.TotalTables++
		result.Summary.TotalRows += info.Rows
	}

	return result
}

func loadText(r *output.Renderer, cc *CommandContext, result *output.LoadOutput) error {
	r.Println("")
	r.Header(2, "Tables")

	for _, t := range result.Tables {
		detail := fmt.Sprintf("%d rows", t.Rows)
		if t.SeedFile == "" {
			detail += ", no seed file"
		}
		r.StatusLine(t.Name, "success", detail)
	}

	r.Println("")
	r.Muted(fmt.Sprintf("Schema: %s", cc.Cfg.SchemaPath))
	r.Muted(fmt.Sprintf("%d tables, %d rows total", result.Summary.TotalTables, result.Summary.TotalRows))
	return nil
}

func loadMarkdown(r *output.Renderer, cc *CommandContext, result *output.LoadOutput) error {
	r.Println(output.FormatHeader(1, "Database Loaded"))
	r.Println("")

	for _, t := range result.Tables {
		r.Println(output.FormatKeyValue("Table", t.Name))
		r.Printf("**Rows:** %d\n", t.Rows)
		if t.SeedFile != "" {
			r.Println(output.FormatKeyValue("Seed", t.SeedFile))
		}
		r.Println("")
	}

	r.Println(output.FormatKeyValue("Schema", cc.Cfg.SchemaPath))
	r.Printf("**Total Tables:** %d\n", result.Summary.TotalTables)
	r.Printf("**Total Rows:** %d\n", result.Summary.TotalRows)
	return nil
}

// watchLoop re-runs the load whenever the schema document or a seed file
// changes. Events are debounced because editors fire several per save.
func watchLoop(cmd *cobra.Command, cc *CommandContext) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(cc.Cfg.SchemaPath)); err != nil {
		return fmt.Errorf("failed to watch schema directory: %w", err)
	}
	if _, statErr := os.Stat(cc.Cfg.SeedsDir); statErr == nil {
		if err := watcher.Add(cc.Cfg.SeedsDir); err != nil {
			return fmt.Errorf("failed to watch seeds directory: %w", err)
		}
	}

	cc.Renderer.Muted("Watching for changes (Ctrl+C to stop)...")

	var debounce *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}
			if !isWatchedPath(cc, event.Name) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(250*time.Millisecond, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			cc.Renderer.Println("")
			cc.Renderer.Muted("Change detected, reloading...")
			if err := loadOnce(cmd, cc); err != nil {
				cc.Renderer.Error(err.Error())
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cc.Logger.Warn("watch error", "error", watchErr)
		}
	}
}

// isWatchedPath reports whether a filesystem event is for the schema
// document or a seed CSV.
func isWatchedPath(cc *CommandContext, name string) bool {
	if filepath.Clean(name) == filepath.Clean(cc.Cfg.SchemaPath) {
		return true
	}
	return filepath.Dir(name) == filepath.Clean(cc.Cfg.SeedsDir) && strings.HasSuffix(name, ".csv")
}
