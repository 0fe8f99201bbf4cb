// Package config provides configuration management for the Leapstore CLI.
//
// Configuration is layered from defaults, an optional leapstore.yaml file,
// LEAPSTORE_-prefixed environment variables, and command-line flags, with
// flags taking the highest precedence.
package config

// Config holds all CLI configuration options.
type Config struct {
	DatabaseName string `koanf:"database_name"`
	SchemaPath   string `koanf:"schema_path"`
	SeedsDir     string `koanf:"seeds_dir"`
	StatePath    string `koanf:"state_path"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultDatabaseName = "leapstore"
	DefaultSchemaPath   = "leapstore.schema.yaml"
	DefaultSeedsDir     = "seeds"
	DefaultStateFile    = ".leapstore/history.db"
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
