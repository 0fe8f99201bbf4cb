package commands

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/leapstore/internal/cli/output"
	"github.com/leapstack-labs/leapstore/internal/state"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded data operations",
		Long: `List the operation history: one entry per recorded data operation with
its table, affected row count, status, and timing. Only metadata is
recorded, never table contents.`,
		Example: `  # Show recent operations
  leapstore history

  # Show the last 5
  leapstore history --limit 5

  # History as JSON
  leapstore history --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")

	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded history entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContextWithoutBuild(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := cc.Engine.StateStore().Clear()
			if err != nil {
				return err
			}
			cc.Renderer.Success(fmt.Sprintf("Cleared %d history entries", n))
			return nil
		},
	}
}

func runHistory(cmd *cobra.Command, limit int) error {
	cc, cleanup, err := NewCommandContextWithoutBuild(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := cc.Engine.StateStore().List(limit)
	if err != nil {
		return err
	}

	result := buildHistoryOutput(entries)

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeMarkdown:
		return historyMarkdown(r, result)
	default:
		return historyText(r, result)
	}
}

func buildHistoryOutput(entries []*state.Entry) *output.HistoryOutput {
	result := &output.HistoryOutput{Entries: []output.HistoryEntry{}}
	for _, e := range entries {
		he := output.HistoryEntry{
			ID:           e.ID,
			Operation:    e.Operation,
			Table:        e.TableName,
			RowsAffected: e.RowsAffected,
			Status:       string(e.Status),
			Error:        e.Error,
			StartedAt:    e.StartedAt.Format(time.RFC3339),
		}
		if e.CompletedAt != nil {
			he.CompletedAt = e.CompletedAt.Format(time.RFC3339)
		}
		result.Entries = append(result.Entries, he)
	}
	return result
}

func historyText(r *output.Renderer, result *output.HistoryOutput) error {
	r.Header(1, "History")

	if len(result.Entries) == 0 {
		r.Muted("No recorded operations")
		return nil
	}

	for _, e := range result.Entries {
		status := "success"
		if e.Status == string(state.StatusFailed) {
			status = "failed"
		}
		detail := fmt.Sprintf("%s  %d rows", e.StartedAt, e.RowsAffected)
		if e.Error != "" {
			detail += "  " + e.Error
		}
		name := e.Operation
		if e.Table != "" {
			name += " " + e.Table
		}
		r.StatusLine(name, status, detail)
	}

	return nil
}

func historyMarkdown(r *output.Renderer, result *output.HistoryOutput) error {
	r.Println(output.FormatHeader(1, "History"))
	r.Println("")

	if len(result.Entries) == 0 {
		r.Println("No recorded operations")
		return nil
	}

	r.Println("| Started | Operation | Table | Rows | Status |")
	r.Println("|---------|-----------|-------|------|--------|")
	for _, e := range result.Entries {
		r.Printf("| %s | %s | %s | %d | %s |\n",
			e.StartedAt, e.Operation, e.Table, e.RowsAffected, e.Status)
	}

	return nil
}
