package database

// Insert validates foreign keys for a full row and delegates to the table's
// insert. Table-layer errors pass through unchanged.
func (db *Database) Insert(tableName string, values []string) error {
	t, ok := db.tables[tableName]
	if !ok {
		return &TableNotFoundError{Name: tableName}
	}

	cols := t.Columns()
	for i := range cols {
		if i >= len(values) {
			break
		}
		if cols[i].ForeignKey == nil {
			continue
		}
		if err := db.checkForeignKey(&cols[i], values[i], i); err != nil {
			return err
		}
	}

	return t.Insert(values)
}

// InsertWithColumns validates foreign keys for a sparse row and delegates.
// Every foreign-key column of the table must appear in names — an omitted
// one would default to null and silently break integrity, so all omissions
// are rejected together up front.
func (db *Database) InsertWithColumns(tableName string, names, values []string) error {
	t, ok := db.tables[tableName]
	if !ok {
		return &TableNotFoundError{Name: tableName}
	}

	provided := make(map[string]bool, len(names))
	for _, n := range names {
		provided[n] = true
	}

	var missing []string
	cols := t.Columns()
	for i := range cols {
		if cols[i].ForeignKey != nil && !provided[cols[i].Name] {
			missing = append(missing, cols[i].Name)
		}
	}
	if len(missing) > 0 {
		return &MissingForeignKeyColumnsError{Names: missing}
	}

	for i, n := range names {
		if i >= len(values) {
			break
		}
		// Unknown names fall through to the table layer, which reports
		// all of them at once.
		col, ok := t.Column(n)
		if !ok || col.ForeignKey == nil {
			continue
		}
		if err := db.checkForeignKey(&col, values[i], i); err != nil {
			return err
		}
	}

	return t.InsertWithColumns(names, values)
}
