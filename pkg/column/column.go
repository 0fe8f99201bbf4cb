package column

// ForeignKey names the table and column a foreign-key column points at. In
// the strict contract the referenced column is always the referenced table's
// primary key; the database layer enforces that at create time.
type ForeignKey struct {
	ReferenceTable  string
	ReferenceColumn string
}

// Column is one named, typed sequence of values. Row index i across all
// columns of a table denotes one logical record, so every column of a table
// holds the same number of values between operations.
type Column struct {
	Name       string
	DataType   DataType
	Data       []Value
	PrimaryKey bool
	ForeignKey *ForeignKey
}

// New returns an empty column. fk may be nil.
func New(name string, t DataType, primaryKey bool, fk *ForeignKey) Column {
	return Column{Name: name, DataType: t, PrimaryKey: primaryKey, ForeignKey: fk}
}

// Len returns the number of stored values.
func (c *Column) Len() int { return len(c.Data) }

// Append adds one value to the end of the column.
func (c *Column) Append(v Value) { c.Data = append(c.Data, v) }

// Value returns the value at row i, or false when the column has no row i.
func (c *Column) Value(i int) (Value, bool) {
	if i < 0 || i >= len(c.Data) {
		return Value{}, false
	}
	return c.Data[i], true
}

// Clone returns a deep copy: the data slice is duplicated and the foreign-key
// descriptor, if any, is copied so the clone shares nothing with the
// original.
func (c *Column) Clone() Column {
	out := Column{
		Name:       c.Name,
		DataType:   c.DataType,
		PrimaryKey: c.PrimaryKey,
	}
	if c.ForeignKey != nil {
		fk := *c.ForeignKey
		out.ForeignKey = &fk
	}
	if c.Data != nil {
		out.Data = make([]Value, len(c.Data))
		copy(out.Data, c.Data)
	}
	return out
}
