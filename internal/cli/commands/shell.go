package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/leapstore/internal/engine"
	"github.com/leapstack-labs/leapstore/internal/render"
	"github.com/spf13/cobra"
)

// NewShellCommand creates the shell command.
func NewShellCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Open an interactive shell against the loaded database",
		Long: `Open a REPL against an in-memory database built from the schema document
and seed files.

Statements:
  show <table>
  describe <table>
  project <table> <col1,col2,...>
  filter <table> where <col> <op> <literal> [and|or ...]
  insert <table> <v1,v2,...>
  update <table> <col>=<literal> [where ...]
  delete <table> where <col> <op> <literal> [and|or ...]

Dot-commands: .tables, .schema, .count, .history, .help, .quit.
Mutations live in the shell session only; edit the seed files to make a
change permanent.`,
		Example: `  # Open the shell
  leapstore shell`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd)
		},
	}

	return cmd
}

func runShell(cmd *cobra.Command) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	historyFile := filepath.Join(filepath.Dir(cc.Cfg.StatePath), "shell_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "leapstore> ",
		HistoryFile:     historyFile,
		AutoComplete:    newShellCompleter(cc.Engine),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	_, _ = fmt.Fprintf(out, "Leapstore shell (database: %s)\n", cc.Engine.DB().Name())
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cc, out, errOut, line); quit {
				break
			}
			continue
		}

		st, err := ParseStatement(line)
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}
		if err := ExecuteStatement(cc.Engine, out, st); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	}

	return nil
}

// handleDotCommand processes a shell dot-command. It returns true when the
// shell should exit.
func handleDotCommand(cc *CommandContext, out, errOut io.Writer, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	db := cc.Engine.DB()

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printShellHelp(out)

	case ".tables":
		for _, name := range db.TableNames() {
			_, _ = fmt.Fprintln(out, name)
		}

	case ".schema":
		if len(parts) >= 2 {
			t, ok := db.Table(parts[1])
			if !ok {
				_, _ = fmt.Fprintf(errOut, "Error: table not found: %s\n", parts[1])
				return false
			}
			render.Describe(out, t)
			return false
		}
		for _, name := range db.TableNames() {
			t, _ := db.Table(name)
			render.Describe(out, t)
			_, _ = fmt.Fprintln(out)
		}

	case ".count":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(errOut, "Usage: .count <table> [column]")
			return false
		}
		t, ok := db.Table(parts[1])
		if !ok {
			_, _ = fmt.Fprintf(errOut, "Error: table not found: %s\n", parts[1])
			return false
		}
		if len(parts) >= 3 {
			n, err := t.Count(parts[2])
			if err != nil {
				_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
				return false
			}
			_, _ = fmt.Fprintln(out, n)
			return false
		}
		_, _ = fmt.Fprintln(out, t.RowCount())

	case ".history":
		entries, err := cc.Engine.StateStore().List(20)
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			return false
		}
		for _, e := range entries {
			_, _ = fmt.Fprintf(out, "%s  %-8s %-12s %4d rows  %s\n",
				e.StartedAt.Format("15:04:05"), e.Operation, e.TableName, e.RowsAffected, e.Status)
		}

	default:
		_, _ = fmt.Fprintf(errOut, "Unknown command: %s (type .help for commands)\n", command)
	}

	return false
}

func printShellHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .tables           List all tables
  .schema [table]   Show table schemas
  .count <t> [col]  Row count, or non-null count of one column
  .history          Show recent recorded operations
  .quit / .exit     Exit the shell

Statements:
  show <table>
  describe <table>
  project <table> <col1,col2,...>
  filter <table> where <col> <op> <literal> [and|or ...]
  insert <table> <v1,v2,...>
  update <table> <col>=<literal> [where ...]
  delete <table> where <col> <op> <literal> [and|or ...]

Operators: = != < > <= >=   Literal "null" is the null value.
`
	_, _ = fmt.Fprintln(w, help)
}

// newShellCompleter builds tab completion from the loaded table names.
func newShellCompleter(eng *engine.Engine) *readline.PrefixCompleter {
	names := eng.DB().TableNames()

	tableItems := func() []readline.PrefixCompleterInterface {
		items := make([]readline.PrefixCompleterInterface, 0, len(names))
		for _, name := range names {
			items = append(items, readline.PcItem(name))
		}
		return items
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("show", tableItems()...),
		readline.PcItem("describe", tableItems()...),
		readline.PcItem("project", tableItems()...),
		readline.PcItem("filter", tableItems()...),
		readline.PcItem("insert", tableItems()...),
		readline.PcItem("update", tableItems()...),
		readline.PcItem("delete", tableItems()...),
		readline.PcItem(".tables"),
		readline.PcItem(".schema", tableItems()...),
		readline.PcItem(".count", tableItems()...),
		readline.PcItem(".history"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
	)
}
