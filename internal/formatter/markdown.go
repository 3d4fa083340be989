package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/holocron/internal/schema"
)

// MarkdownFormatter formats schema as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes the schema in markdown format
func (f *MarkdownFormatter) Format(s *schema.Schema) error {
	if _, err := fmt.Fprint(f.writer, "# Database Schema\n\n"); err != nil {
		return err
	}
	for i := range s.Tables {
		f.FormatTable(&s.Tables[i])
	}
	return nil
}

// FormatTable writes a single table section. The multi-file formatter reuses it.
func (f *MarkdownFormatter) FormatTable(table *schema.Table) {
	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", table.Name)
	if table.IsJoinTable() {
		a, b := linkedTables(table)
		_, _ = fmt.Fprintf(f.writer, "Join table linking `%s` and `%s` (%s).\n\n", a, b, schema.ManyToMany)
	}

	f.FormatColumns(table)
	f.FormatRelations(table)
	f.formatIndexes(table.Indexes)
	f.formatChecks(table.Checks)
}

// FormatColumns writes the column list with inline constraints.
func (f *MarkdownFormatter) FormatColumns(table *schema.Table) {
	_, _ = fmt.Fprint(f.writer, "### Columns\n\n")
	for _, col := range table.Columns {
		constraints := columnConstraints(col, table)
		if len(constraints) > 0 {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s, %s\n", col.Name, col.Type, strings.Join(constraints, ", "))
		} else {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s\n", col.Name, col.Type)
		}
	}
	_, _ = fmt.Fprintln(f.writer)
}

// FormatRelations writes the outgoing foreign keys of table.
func (f *MarkdownFormatter) FormatRelations(table *schema.Table) {
	if len(table.Relations) == 0 {
		return
	}
	_, _ = fmt.Fprint(f.writer, "### References\n\n")
	for _, rel := range table.Relations {
		_, _ = fmt.Fprintf(f.writer, "- %s → %s.%s (%s)\n",
			rel.SourceColumn,
			rel.TargetTable,
			rel.TargetColumn,
			FormatCardinality(rel.Cardinality, table.Name, rel.TargetTable))
	}
	_, _ = fmt.Fprintln(f.writer)
}

// FormatIncoming writes the foreign keys of other tables that reference table.
func (f *MarkdownFormatter) FormatIncoming(incoming []IncomingRelation) {
	if len(incoming) == 0 {
		return
	}
	_, _ = fmt.Fprint(f.writer, "### Referenced by\n\n")
	for _, rel := range incoming {
		_, _ = fmt.Fprintf(f.writer, "- %s.%s → %s (%s)\n",
			rel.SourceTable, rel.SourceColumn,
			rel.TargetColumn,
			FormatCardinality(rel.Cardinality, rel.SourceTable, rel.TargetTable))
	}
	_, _ = fmt.Fprintln(f.writer)
}

func (f *MarkdownFormatter) formatIndexes(indexes []schema.Index) {
	if len(indexes) == 0 {
		return
	}
	_, _ = fmt.Fprint(f.writer, "### Indexes\n\n")
	for _, idx := range indexes {
		if idx.IsUnique {
			_, _ = fmt.Fprintf(f.writer, "- %s on (%s), unique\n", idx.Name, strings.Join(idx.Columns, ", "))
		} else {
			_, _ = fmt.Fprintf(f.writer, "- %s on (%s)\n", idx.Name, strings.Join(idx.Columns, ", "))
		}
	}
	_, _ = fmt.Fprintln(f.writer)
}

func (f *MarkdownFormatter) formatChecks(checks []string) {
	if len(checks) == 0 {
		return
	}
	_, _ = fmt.Fprint(f.writer, "### Checks\n\n")
	for _, check := range checks {
		_, _ = fmt.Fprintf(f.writer, "- `%s`\n", check)
	}
	_, _ = fmt.Fprintln(f.writer)
}
