// Package formatter renders a schema.Schema as documentation or as an ER diagram.
package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/holocron/internal/schema"
)

// Output formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatMermaid  = "mermaid"
	FormatDOT      = "dot"
)

// Formatter writes a schema somewhere.
type Formatter interface {
	Format(s *schema.Schema) error
}

// New returns the single-stream formatter for format.
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatText:
		return NewTextFormatter(w), nil
	case FormatMarkdown, "md":
		return NewMarkdownFormatter(w), nil
	case FormatMermaid, "mmd":
		return NewMermaidFormatter(w), nil
	case FormatDOT, "graphviz":
		return NewDOTFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// IsDiagram reports whether format draws a diagram rather than a document.
func IsDiagram(format string) bool {
	switch strings.ToLower(format) {
	case FormatMermaid, "mmd", FormatDOT, "graphviz":
		return true
	}
	return false
}

// DiagramExtension returns the conventional file extension for a diagram format.
func DiagramExtension(format string) string {
	switch strings.ToLower(format) {
	case FormatDOT, "graphviz":
		return ".dot"
	default:
		return ".mmd"
	}
}

// FormatCardinality spells out a relation's cardinality from the referencing table's side.
func FormatCardinality(cardinality, sourceTable, targetTable string) string {
	switch cardinality {
	case schema.ManyToOne:
		return fmt.Sprintf("many %s to one %s", sourceTable, targetTable)
	case schema.OneToOne:
		return fmt.Sprintf("one %s to one %s", sourceTable, targetTable)
	case schema.ManyToMany:
		return fmt.Sprintf("many %s to many %s", sourceTable, targetTable)
	default:
		return cardinality
	}
}

// IncomingRelation is a foreign key in another table that points at the table being rendered.
type IncomingRelation struct {
	SourceTable  string
	SourceColumn string
	TargetTable  string
	TargetColumn string
	Cardinality  string
}

// FindIncomingRelations lists the foreign keys of s that reference tableName.
func FindIncomingRelations(tableName string, s *schema.Schema) []IncomingRelation {
	var incoming []IncomingRelation
	for _, table := range s.Tables {
		for _, rel := range table.Relations {
			if rel.TargetTable == tableName {
				incoming = append(incoming, IncomingRelation{
					SourceTable:  table.Name,
					SourceColumn: rel.SourceColumn,
					TargetTable:  rel.TargetTable,
					TargetColumn: rel.TargetColumn,
					Cardinality:  rel.Cardinality,
				})
			}
		}
	}
	return incoming
}

// linkedTables returns the two tables a join table connects, in relation order.
func linkedTables(t *schema.Table) (string, string) {
	return t.Relations[0].TargetTable, t.Relations[1].TargetTable
}

func columnConstraints(col schema.Column, t *schema.Table) []string {
	var constraints []string
	if t.IsPrimaryKey(col.Name) {
		constraints = append(constraints, "PK")
	}
	if t.IsForeignKey(col.Name) {
		constraints = append(constraints, "FK")
	}
	if col.IsUnique {
		constraints = append(constraints, "UNIQUE")
	}
	if !col.Nullable {
		constraints = append(constraints, "NOT NULL")
	}
	if col.DefaultValue != nil {
		constraints = append(constraints, fmt.Sprintf("DEFAULT %s", *col.DefaultValue))
	}
	return constraints
}
