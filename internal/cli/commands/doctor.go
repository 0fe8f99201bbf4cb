package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapstore/internal/cli/config"
	"github.com/leapstack-labs/leapstore/internal/cli/output"
	"github.com/leapstack-labs/leapstore/internal/schema"
	"github.com/leapstack-labs/leapstore/internal/state"
	"github.com/spf13/cobra"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the project environment",
		Long: `Run environment checks: configuration, schema document, seed files, and
the history store. Reports a health score from 0 to 100.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run all checks
  leapstore doctor

  # Checks as JSON
  leapstore doctor --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}

	return cmd
}

func runDoctor(cmd *cobra.Command) error {
	cc := NewCommandContextWithoutEngine(cmd)

	checks := runDoctorChecks(cc.Cfg)
	result := &output.DoctorOutput{
		Checks: checks,
		Score:  doctorScore(checks),
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeMarkdown:
		return doctorMarkdown(r, result)
	default:
		return doctorText(r, result)
	}
}

func runDoctorChecks(cfg *config.Config) []output.HealthCheck {
	var checks []output.HealthCheck
	add := func(group, name, status, details string) {
		checks = append(checks, output.HealthCheck{
			Group: group, Name: name, Status: status, Details: details,
		})
	}

	// Configuration
	if f := config.GetConfigFileUsed(); f != "" {
		add("config", "config file", "pass", f)
	} else {
		add("config", "config file", "warn", "no leapstore.yaml found, using defaults")
	}

	// Schema document
	var doc *schema.Document
	if _, err := os.Stat(cfg.SchemaPath); os.IsNotExist(err) {
		add("schema", "schema document", "error", cfg.SchemaPath+" does not exist (run 'leapstore init')")
	} else {
		var err error
		doc, err = schema.Load(cfg.SchemaPath)
		if err != nil {
			add("schema", "schema document", "error", err.Error())
		} else {
			add("schema", "schema document", "pass", fmt.Sprintf("%s: %d tables", cfg.SchemaPath, len(doc.Tables)))
		}
	}

	// Seeds
	entries, err := os.ReadDir(cfg.SeedsDir)
	switch {
	case os.IsNotExist(err):
		add("seeds", "seeds directory", "warn", cfg.SeedsDir+" does not exist")
	case err != nil:
		add("seeds", "seeds directory", "error", err.Error())
	default:
		add("seeds", "seeds directory", "pass", cfg.SeedsDir)
		if doc != nil {
			checkSeedNames(add, doc, entries)
		}
	}

	// History store
	stateDir := filepath.Dir(cfg.StatePath)
	if err := os.MkdirAll(stateDir, 0o750); err != nil {
		add("state", "state directory", "error", err.Error())
	} else {
		add("state", "state directory", "pass", stateDir)

		store := state.NewStore()
		if err := store.Open(cfg.StatePath); err != nil {
			add("state", "history store", "error", err.Error())
		} else {
			defer func() { _ = store.Close() }()
			if err := store.Migrate(); err != nil {
				add("state", "history store", "error", err.Error())
			} else {
				add("state", "history store", "pass", cfg.StatePath)
			}
		}
	}

	return checks
}

// checkSeedNames flags seed files that have no table in the schema.
func checkSeedNames(add func(group, name, status, details string), doc *schema.Document, entries []os.DirEntry) {
	tables := make(map[string]bool, len(doc.Tables))
	for _, td := range doc.Tables {
		tables[td.Name] = true
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		tableName := strings.TrimSuffix(name, ".csv")
		if tables[tableName] {
			add("seeds", name, "pass", "matches table "+tableName)
		} else {
			add("seeds", name, "warn", "no table named "+tableName+" in the schema")
		}
	}
}

func doctorScore(checks []output.HealthCheck) int {
	score := 100
	for _, c := range checks {
		switch c.Status {
		case "error":
			score -= 25
		case "warn":
			score -= 10
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

func doctorText(r *output.Renderer, result *output.DoctorOutput) error {
	titler := cases.Title(language.English)

	r.Header(1, "Doctor")

	var group string
	for _, c := range result.Checks {
		if c.Group != group {
			group = c.Group
			r.Println("")
			r.Header(2, titler.String(group))
		}
		r.StatusLine(c.Name, textStatus(c.Status), c.Details)
	}

	r.Println("")
	summary := fmt.Sprintf("Health score: %d/100", result.Score)
	if result.Score == 100 {
		r.Success(summary)
	} else {
		r.Warning(summary)
	}
	return nil
}

func textStatus(status string) string {
	switch status {
	case "pass":
		return "success"
	case "warn":
		return "warn"
	default:
		return "failed"
	}
}

func doctorMarkdown(r *output.Renderer, result *output.DoctorOutput) error {
	titler := cases.Title(language.English)

	r.Println(output.FormatHeader(1, "Doctor"))

	var group string
	for _, c := range result.Checks {
		if c.Group != group {
			group = c.Group
			r.Println("")
			r.Println(output.FormatHeader(2, titler.String(group)))
			r.Println("")
		}
		r.Printf("- **%s** (%s): %s\n", c.Name, c.Status, c.Details)
	}

	r.Println("")
	r.Printf("**Health Score:** %d/100\n", result.Score)
	return nil
}
