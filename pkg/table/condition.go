package table

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapstore/pkg/column"
)

// Operator is a comparison in a condition leaf.
type Operator int

const (
	Equal Operator = iota
	NotEqual
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
)

// ParseOperator maps a comparison symbol to its Operator. Symbols outside
// =, !=, <, >, <=, >= fail with InvalidOperatorError.
func ParseOperator(symbol string) (Operator, error) {
	switch symbol {
	case "=":
		return Equal, nil
	case "!=":
		return NotEqual, nil
	case "<":
		return LessThan, nil
	case ">":
		return GreaterThan, nil
	case "<=":
		return LessThanOrEqual, nil
	case ">=":
		return GreaterThanOrEqual, nil
	default:
		return 0, &InvalidOperatorError{Symbol: symbol}
	}
}

// String returns the operator's symbol.
func (o Operator) String() string {
	switch o {
	case Equal:
		return "="
	case NotEqual:
		return "!="
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case LessThanOrEqual:
		return "<="
	case GreaterThanOrEqual:
		return ">="
	default:
		return "?"
	}
}

// Condition is a node in a boolean filter tree: either a single
// column-operator-literal comparison or an And/Or over two subtrees. The same
// tree drives filtering, conditional update, and conditional delete.
type Condition interface {
	node()
}

// Compare is a leaf condition: the named column's value at a row, compared
// against a literal.
type Compare struct {
	Column  string
	Op      string
	Literal string
}

// And combines two conditions; both sides must hold.
type And struct {
	Left  Condition
	Right Condition
}

// Or combines two conditions; either side may hold.
type Or struct {
	Left  Condition
	Right Condition
}

func (Compare) node() {}
func (And) node()     {}
func (Or) node()      {}

// Cmp builds a leaf condition.
func Cmp(columnName, op, literal string) Compare {
	return Compare{Column: columnName, Op: op, Literal: literal}
}

// AndCond joins two conditions with a logical and.
func AndCond(left, right Condition) And { return And{Left: left, Right: right} }

// OrCond joins two conditions with a logical or.
func OrCond(left, right Condition) Or { return Or{Left: left, Right: right} }

// CombineConditions folds a flat condition list into a left-nested tree
// joined by one logic token, "and" or "or" (case-insensitive). An empty list
// or any other token fails with InvalidLogicError.
func CombineConditions(conds []Compare, logic string) (Condition, error) {
	if len(conds) == 0 {
		return nil, &InvalidLogicError{}
	}
	var join func(l, r Condition) Condition
	switch strings.ToLower(logic) {
	case "and":
		join = func(l, r Condition) Condition { return And{Left: l, Right: r} }
	case "or":
		join = func(l, r Condition) Condition { return Or{Left: l, Right: r} }
	default:
		return nil, &InvalidLogicError{Token: logic}
	}
	tree := Condition(conds[0])
	for _, c := range conds[1:] {
		tree = join(tree, c)
	}
	return tree, nil
}

// evaluate decides whether the row at rowIdx satisfies cond. A leaf on a
// column the table does not have fails with NonExistingColumnError; an
// unsupported comparison symbol fails with InvalidOperatorError. A row index
// past the end of the column evaluates to false, not an error. And/Or
// evaluate both children before combining, so either child's error surfaces
// regardless of what the other would decide.
func evaluate(cond Condition, cols []column.Column, rowIdx int) (bool, error) {
	switch c := cond.(type) {
	case Compare:
		idx := -1
		for i := range cols {
			if cols[i].Name == c.Column {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false, &NonExistingColumnError{Name: c.Column}
		}
		op, err := ParseOperator(c.Op)
		if err != nil {
			return false, err
		}
		v, ok := cols[idx].Value(rowIdx)
		if !ok {
			return false, nil
		}
		return satisfies(v, cols[idx].DataType, c.Literal, op), nil
	case And:
		left, err := evaluate(c.Left, cols, rowIdx)
		if err != nil {
			return false, err
		}
		right, err := evaluate(c.Right, cols, rowIdx)
		if err != nil {
			return false, err
		}
		return left && right, nil
	case Or:
		left, err := evaluate(c.Left, cols, rowIdx)
		if err != nil {
			return false, err
		}
		right, err := evaluate(c.Right, cols, rowIdx)
		if err != nil {
			return false, err
		}
		return left || right, nil
	default:
		return false, nil
	}
}

// satisfies compares one stored value against a condition literal. Stored
// nulls never match. Text columns compare the raw literal and support only =
// and !=; every other operator on text is false rather than an error. A
// numeric literal that does not parse for the column's type matches nothing.
func satisfies(v column.Value, t column.DataType, literal string, op Operator) bool {
	switch {
	case v.Kind() == column.KindInteger && t == column.Integer:
		want, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return false
		}
		return compareInts(v.Int(), want, op)
	case v.Kind() == column.KindFloat && t == column.Float:
		want, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return false
		}
		return compareFloats(v.Float(), want, op)
	case v.Kind() == column.KindText && t == column.Text:
		switch op {
		case Equal:
			return v.Text() == literal
		case NotEqual:
			return v.Text() != literal
		default:
			return false
		}
	default:
		return false
	}
}

func compareInts(a, b int64, op Operator) bool {
	switch op {
	case Equal:
		return a == b
	case NotEqual:
		return a != b
	case LessThan:
		return a < b
	case GreaterThan:
		return a > b
	case LessThanOrEqual:
		return a <= b
	case GreaterThanOrEqual:
		return a >= b
	default:
		return false
	}
}

func compareFloats(a, b float64, op Operator) bool {
	switch op {
	case Equal:
		return a == b
	case NotEqual:
		return a != b
	case LessThan:
		return a < b
	case GreaterThan:
		return a > b
	case LessThanOrEqual:
		return a <= b
	case GreaterThanOrEqual:
		return a >= b
	default:
		return false
	}
}
