package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/leapstore/internal/engine"
	"github.com/leapstack-labs/leapstore/internal/render"
	"github.com/leapstack-labs/leapstore/pkg/table"
)

// Statement is one parsed shell statement.
type Statement struct {
	Verb    string          // show, describe, project, filter, insert, update, delete
	Table   string
	Columns []string        // project column list
	Values  []string        // insert values
	Column  string          // update target column
	Literal string          // update literal
	Where   table.Condition // nil when the statement has no where clause
}

// ParseStatement parses one line of shell input.
//
// Grammar:
//
//	show <table>
//	describe <table>
//	project <table> <col1,col2,...>
//	filter <table> where <col> <op> <lit> [and|or <col> <op> <lit> ...]
//	insert <table> <v1,v2,...>
//	update <table> <col>=<lit> [where ...]
//	delete <table> where ...
//
// A where clause uses a single logic token: conditions are combined with
// all and or all or, never a mix.
func ParseStatement(line string) (*Statement, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty statement")
	}

	st := &Statement{Verb: strings.ToLower(fields[0])}
	args := fields[1:]

	switch st.Verb {
	case "show", "describe":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: %s <table>", st.Verb)
		}
		st.Table = args[0]

	case "project":
		if len(args) != 2 {
			return nil, fmt.Errorf("usage: project <table> <col1,col2,...>")
		}
		st.Table = args[0]
		st.Columns = splitList(args[1])

	case "filter":
		if len(args) < 2 || args[1] != "where" {
			return nil, fmt.Errorf("usage: filter <table> where <col> <op> <literal> ...")
		}
		st.Table = args[0]
		cond, err := parseWhere(args[2:])
		if err != nil {
			return nil, err
		}
		st.Where = cond

	case "insert":
		if len(args) != 2 {
			return nil, fmt.Errorf("usage: insert <table> <v1,v2,...>")
		}
		st.Table = args[0]
		st.Values = splitList(args[1])

	case "update":
		if len(args) < 2 {
			return nil, fmt.Errorf("usage: update <table> <col>=<literal> [where ...]")
		}
		st.Table = args[0]
		col, lit, ok := strings.Cut(args[1], "=")
		if !ok || col == "" {
			return nil, fmt.Errorf("update needs an assignment of the form <col>=<literal>")
		}
		st.Column = col
		st.Literal = lit
		if len(args) > 2 {
			if args[2] != "where" {
				return nil, fmt.Errorf("expected 'where', got %q", args[2])
			}
			cond, err := parseWhere(args[3:])
			if err != nil {
				return nil, err
			}
			st.Where = cond
		}

	case "delete":
		if len(args) < 2 || args[1] != "where" {
			return nil, fmt.Errorf("usage: delete <table> where <col> <op> <literal> ...")
		}
		st.Table = args[0]
		cond, err := parseWhere(args[2:])
		if err != nil {
			return nil, err
		}
		st.Where = cond

	default:
		return nil, fmt.Errorf("unknown statement %q (type .help for syntax)", st.Verb)
	}

	return st, nil
}

// parseWhere parses "<col> <op> <lit> [and|or <col> <op> <lit> ...]" into a
// condition tree. All logic tokens in one clause must agree.
func parseWhere(tokens []string) (table.Condition, error) {
	if len(tokens) < 3 {
		return nil, fmt.Errorf("where clause needs <column> <operator> <literal>")
	}

	var conds []table.Compare
	logic := "and"
	for i := 0; ; {
		if len(tokens)-i < 3 {
			return nil, fmt.Errorf("incomplete condition after %q", tokens[i-1])
		}
		conds = append(conds, table.Cmp(tokens[i], tokens[i+1], tokens[i+2]))
		i += 3
		if i == len(tokens) {
			break
		}

		tok := strings.ToLower(tokens[i])
		if tok != "and" && tok != "or" {
			return nil, fmt.Errorf("expected 'and' or 'or', got %q", tokens[i])
		}
		if len(conds) > 1 && tok != logic {
			return nil, fmt.Errorf("cannot mix 'and' and 'or' in one where clause")
		}
		logic = tok
		i++
	}

	return table.CombineConditions(conds, logic)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ExecuteStatement runs a parsed statement against the engine's database,
// writing any result set to w. Data mutations are recorded in the
// operation history.
func ExecuteStatement(eng *engine.Engine, w io.Writer, st *Statement) error {
	db := eng.DB()

	switch st.Verb {
	case "show":
		t, ok := db.Table(st.Table)
		if !ok {
			return fmt.Errorf("table not found: %s", st.Table)
		}
		render.Show(w, t)

	case "describe":
		t, ok := db.Table(st.Table)
		if !ok {
			return fmt.Errorf("table not found: %s", st.Table)
		}
		render.Describe(w, t)

	case "project":
		t, ok := db.Table(st.Table)
		if !ok {
			return fmt.Errorf("table not found: %s", st.Table)
		}
		return render.Project(w, t, st.Columns...)

	case "filter":
		t, ok := db.Table(st.Table)
		if !ok {
			return fmt.Errorf("table not found: %s", st.Table)
		}
		view, err := t.Filter(st.Where)
		if err != nil {
			return err
		}
		render.Show(w, view)

	case "insert":
		err := db.Insert(st.Table, st.Values)
		eng.RecordOperation("insert", st.Table, boolToRows(err == nil), err)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, "1 row inserted")

	case "update":
		var n int
		var err error
		if st.Where == nil {
			n, err = db.UpdateColumn(st.Table, st.Column, st.Literal)
		} else {
			n, err = db.UpdateWhere(st.Table, st.Column, st.Literal, st.Where)
		}
		eng.RecordOperation("update", st.Table, int64(n), err)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%d rows updated\n", n)

	case "delete":
		n, err := db.DeleteWhere(st.Table, st.Where)
		eng.RecordOperation("delete", st.Table, int64(n), err)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%d rows deleted\n", n)

	default:
		return fmt.Errorf("unknown statement %q", st.Verb)
	}

	return nil
}

func boolToRows(ok bool) int64 {
	if ok {
		return 1
	}
	return 0
}
