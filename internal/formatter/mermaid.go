package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/holocron/internal/schema"
)

// MermaidFormatter draws the schema as a Mermaid erDiagram.
type MermaidFormatter struct {
	writer io.Writer
}

func NewMermaidFormatter(w io.Writer) *MermaidFormatter {
	return &MermaidFormatter{writer: w}
}

// Format writes one entity block per table followed by one line per foreign key.
// Keys that are part of the primary key are drawn as identifying relationships.
func (f *MermaidFormatter) Format(s *schema.Schema) error {
	var b strings.Builder
	b.WriteString("erDiagram\n")

	for i := range s.Tables {
		writeMermaidEntity(&b, &s.Tables[i])
	}
	for i := range s.Tables {
		table := &s.Tables[i]
		for _, rel := range table.Relations {
			b.WriteString(mermaidRelation(table, rel))
		}
	}

	_, err := io.WriteString(f.writer, b.String())
	return err
}

func writeMermaidEntity(b *strings.Builder, table *schema.Table) {
	fmt.Fprintf(b, "    %s {\n", table.Name)
	for _, col := range table.Columns {
		fmt.Fprintf(b, "        %s %s", mermaidType(col.Type), col.Name)

		var keys []string
		if table.IsPrimaryKey(col.Name) {
			keys = append(keys, "PK")
		}
		if table.IsForeignKey(col.Name) {
			keys = append(keys, "FK")
		}
		if col.IsUnique {
			keys = append(keys, "UK")
		}
		if len(keys) > 0 {
			b.WriteString(" " + strings.Join(keys, ", "))
		}
		if col.Nullable {
			b.WriteString(` "nullable"`)
		}
		b.WriteString("\n")
	}
	b.WriteString("    }\n")
}

func mermaidRelation(table *schema.Table, rel schema.Relation) string {
	parent := "||"
	if col := table.Column(rel.SourceColumn); col != nil && col.Nullable {
		parent = "|o"
	}
	child := "o{"
	if rel.Cardinality == schema.OneToOne {
		child = "o|"
	}
	line := ".."
	if table.IsPrimaryKey(rel.SourceColumn) {
		line = "--"
	}
	return fmt.Sprintf("    %s %s%s%s %s : %q\n", rel.TargetTable, parent, line, child, table.Name, rel.SourceColumn)
}

var mermaidTypeReplacer = strings.NewReplacer("(", "_", ")", "", " ", "_", ",", "_")

// mermaidType makes a SQL type usable as a Mermaid attribute type: varchar(250) becomes varchar_250.
func mermaidType(t string) string {
	if t == "" {
		return "unknown"
	}
	return mermaidTypeReplacer.Replace(t)
}
