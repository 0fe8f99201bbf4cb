package output

// Typed payloads emitted by commands in JSON mode.

// LoadOutput is the payload for the load command.
type LoadOutput struct {
	Tables  []TableLoadInfo `json:"tables"`
	Summary LoadSummary     `json:"summary"`
}

// TableLoadInfo describes one table created during a load.
type TableLoadInfo struct {
	Name     string `json:"name"`
	SeedFile string `json:"seed_file,omitempty"`
	Rows     int    `json:"rows"`
}

// LoadSummary aggregates a load run.
type LoadSummary struct {
	TotalTables int `json:"total_tables"`
	TotalRows   int `json:"total_rows"`
}

// SchemaOutput is the payload for the schema command.
type SchemaOutput struct {
	File   string      `json:"file"`
	Tables []TableInfo `json:"tables"`
}

// TableInfo describes one table definition.
type TableInfo struct {
	Name    string       `json:"name"`
	Columns []ColumnInfo `json:"columns"`
}

// ColumnInfo describes one column definition.
type ColumnInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	PrimaryKey bool   `json:"primary_key,omitempty"`
	References string `json:"references,omitempty"`
}

// HistoryOutput is the payload for the history command.
type HistoryOutput struct {
	Entries []HistoryEntry `json:"entries"`
}

// HistoryEntry is one recorded operation.
type HistoryEntry struct {
	ID           string `json:"id"`
	Operation    string `json:"operation"`
	Table        string `json:"table"`
	RowsAffected int64  `json:"rows_affected"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
	StartedAt    string `json:"started_at"`
	CompletedAt  string `json:"completed_at,omitempty"`
}

// ExportOutput is the payload for the export command.
type ExportOutput struct {
	Table  string `json:"table"`
	File   string `json:"file"`
	Format string `json:"format"`
	Rows   int    `json:"rows"`
}

// ImportOutput is the payload for the import command.
type ImportOutput struct {
	Table    string `json:"table"`
	File     string `json:"file"`
	Format   string `json:"format"`
	Rows     int    `json:"rows"`
	SeedFile string `json:"seed_file,omitempty"`
}

// DoctorOutput is the payload for the doctor command.
type DoctorOutput struct {
	Checks []HealthCheck `json:"checks"`
	Score  int           `json:"score"`
}

// HealthCheck is one doctor check result.
type HealthCheck struct {
	Group   string `json:"group"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}
