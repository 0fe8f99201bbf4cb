package commands

import (
	"github.com/leapstack-labs/leapstore/internal/cli/output"
	"github.com/leapstack-labs/leapstore/internal/schema"
	"github.com/spf13/cobra"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Show the project's table definitions",
		Long: `Parse and display the schema document: every table with its columns,
types, primary keys, and foreign-key references.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Show the schema
  leapstore schema

  # Schema as JSON
  leapstore schema --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchema(cmd)
		},
	}

	return cmd
}

func runSchema(cmd *cobra.Command) error {
	cc := NewCommandContextWithoutEngine(cmd)

	if err := cc.Cfg.ValidateSchemaFile(); err != nil {
		return err
	}

	doc, err := schema.Load(cc.Cfg.SchemaPath)
	if err != nil {
		return err
	}

	result := buildSchemaOutput(cc.Cfg.SchemaPath, doc)

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeMarkdown:
		return schemaMarkdown(r, result)
	default:
		return schemaText(r, result)
	}
}

func buildSchemaOutput(path string, doc *schema.Document) *output.SchemaOutput {
	result := &output.SchemaOutput{File: path, Tables: []output.TableInfo{}}
	for _, td := range doc.Tables {
		info := output.TableInfo{Name: td.Name, Columns: []output.ColumnInfo{}}
		for _, cd := range td.Columns {
			info.Columns = append(info.Columns, output.ColumnInfo{
				Name:       cd.Name,
				Type:       cd.Type,
				PrimaryKey: cd.PrimaryKey,
				References: cd.References,
			})
		}
		result.Tables = append(result.Tables, info)
	}
	return result
}

func schemaText(r *output.Renderer, result *output.SchemaOutput) error {
	styles := r.Styles()

	r.Header(1, "Schema")
	r.Muted(result.File)

	for _, t := range result.Tables {
		r.Println("")
		r.Println(styles.TableName.Render(t.Name))
		for _, c := range t.Columns {
			detail := c.Type
			if c.PrimaryKey {
				detail += ", primary key"
			}
			if c.References != "" {
				detail += ", references " + c.References
			}
			r.Printf("  %-16s %s\n", c.Name, styles.Muted.Render(detail))
		}
	}

	return nil
}

func schemaMarkdown(r *output.Renderer, result *output.SchemaOutput) error {
	r.Println(output.FormatHeader(1, "Schema"))
	r.Println("")
	r.Println(output.FormatKeyValue("File", result.File))

	for _, t := range result.Tables {
		r.Println("")
		r.Println(output.FormatHeader(2, t.Name))
		r.Println("")
		r.Println("| Column | Type | Key | References |")
		r.Println("|--------|------|-----|------------|")
		for _, c := range t.Columns {
			key := ""
			if c.PrimaryKey {
				key = "PK"
			}
			r.Printf("| %s | %s | %s | %s |\n", c.Name, c.Type, key, c.References)
		}
	}

	return nil
}
