package config

import (
	"fmt"
	"os"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DatabaseName == "" {
		return fmt.Errorf("database_name is required")
	}
	if c.SchemaPath == "" {
		return fmt.Errorf("schema_path is required")
	}
	if c.StatePath == "" {
		return fmt.Errorf("state_path is required")
	}
	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("invalid output format %q (valid: auto, text, markdown, json)", c.OutputFormat)
	}

	// Schema file existence is checked per-command, not here.
	// This allows help and init to work before a schema exists.
	return nil
}

// ValidateSchemaFile checks if the schema document exists.
func (c *Config) ValidateSchemaFile() error {
	if _, err := os.Stat(c.SchemaPath); os.IsNotExist(err) {
		return fmt.Errorf("schema file does not exist: %s\nHint: Run 'leapstore init' or use --schema to specify a different path", c.SchemaPath)
	}
	return nil
}
