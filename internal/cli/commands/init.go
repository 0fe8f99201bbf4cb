package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapstore/internal/cli/output"
	"github.com/spf13/cobra"
)

// projectFile is one scaffolded file: a relative path and its contents.
type projectFile struct {
	path    string
	content string
}

const configTemplate = `# Leapstore project configuration
database_name: leapstore
schema_path: leapstore.schema.yaml
seeds_dir: seeds
state_path: .leapstore/history.db

# Output format: auto, text, markdown, json
output: auto
`

const schemaTemplate = `# Table definitions, in creation order. Tables referenced by a foreign
# key must be defined before the tables that reference them.
tables: []
`

const exampleSchemaTemplate = `# Example schema: a three-table foreign-key chain.
# order_items references orders, which references users, so deleting a
# user cascades through both dependent tables.
tables:
  - name: users
    columns:
      - name: id
        type: Integer
        primary_key: true
      - name: name
        type: Text
      - name: age
        type: Integer
  - name: orders
    columns:
      - name: id
        type: Integer
        primary_key: true
      - name: user_id
        type: Integer
        references: users.id
      - name: amount
        type: Float
  - name: order_items
    columns:
      - name: id
        type: Integer
        primary_key: true
      - name: order_id
        type: Integer
        references: orders.id
      - name: product
        type: Text
`

const exampleUsersSeed = `id,name,age
1,Alice,30
2,Bob,25
3,Carol,41
`

const exampleOrdersSeed = `id,user_id,amount
10,1,19.99
11,1,5.50
12,2,120.00
`

const exampleItemsSeed = `id,order_id,product
100,10,notebook
101,10,pen
102,11,stapler
103,12,monitor
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Leapstore project",
		Long: `Initialize a new Leapstore project with default structure and configuration.

This creates:
  - leapstore.yaml configuration file
  - leapstore.schema.yaml table definitions
  - seeds/ directory for seed data CSV files

Use --example to create a working demo project: a users/orders/order_items
foreign-key chain with seed data that exercises cascading deletes.`,
		Example: `  # Initialize in current directory
  leapstore init

  # Initialize with the demo schema and seed data
  leapstore init --example

  # Initialize in a new directory
  leapstore init my-project --example

  # Force overwrite existing config
  leapstore init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			return runInit(r, dir, force, example)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Create a demo project with schema and seed data")

	return cmd
}

func runInit(r *output.Renderer, dir string, force, example bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "leapstore.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("leapstore.yaml already exists. Use --force to overwrite")
	}

	files := scaffoldFiles(example)
	for _, f := range files {
		target := filepath.Join(dir, f.path)
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(f.path), err)
		}
		if err := os.WriteFile(target, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		r.StatusLine(f.path, "success", "")
	}

	r.Println("")
	if example {
		r.Success("Leapstore project initialized with example data!")
		r.Println("")
		r.Println("Next steps:")
		r.Println("  leapstore load      Create tables and load seed data")
		r.Println("  leapstore shell     Open the interactive shell")
		r.Println("  leapstore schema    View the table definitions")
	} else {
		r.Success("Leapstore project initialized!")
		r.Println("")
		r.Println("Next steps:")
		r.Println("  1. Define tables in leapstore.schema.yaml")
		r.Println("  2. Add seed CSV files to seeds/")
		r.Println("  3. Run 'leapstore load' to build the database")
	}

	return nil
}

func scaffoldFiles(example bool) []projectFile {
	if example {
		return []projectFile{
			{"leapstore.yaml", configTemplate},
			{"leapstore.schema.yaml", exampleSchemaTemplate},
			{filepath.Join("seeds", "users.csv"), exampleUsersSeed},
			{filepath.Join("seeds", "orders.csv"), exampleOrdersSeed},
			{filepath.Join("seeds", "order_items.csv"), exampleItemsSeed},
		}
	}
	return []projectFile{
		{"leapstore.yaml", configTemplate},
		{"leapstore.schema.yaml", schemaTemplate},
		{filepath.Join("seeds", ".gitkeep"), ""},
	}
}
