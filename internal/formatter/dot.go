package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/holocron/internal/schema"
)

// DOTFormatter draws the schema as a Graphviz digraph of record nodes.
type DOTFormatter struct {
	writer io.Writer
	name   string
}

func NewDOTFormatter(w io.Writer) *DOTFormatter {
	return &DOTFormatter{writer: w, name: "catalog"}
}

// Format writes a node per table and an edge per foreign key. Join tables are dashed
// and additionally produce one dotted N:M edge between the two tables they link.
func (f *DOTFormatter) Format(s *schema.Schema) error {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", dotID(f.name))
	b.WriteString("  graph [rankdir=LR, fontname=\"Helvetica\"];\n")
	b.WriteString("  node [shape=record, fontname=\"Helvetica\", fontsize=10];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=9];\n\n")

	for i := range s.Tables {
		table := &s.Tables[i]
		style := ""
		if table.IsJoinTable() {
			style = ", style=dashed"
		}
		fmt.Fprintf(&b, "  %s [label=\"%s\"%s];\n", dotID(table.Name), dotRecordLabel(table), style)
	}
	b.WriteString("\n")

	for i := range s.Tables {
		table := &s.Tables[i]
		join := table.IsJoinTable()
		for _, rel := range table.Relations {
			label := fmt.Sprintf("%s (%s)", rel.SourceColumn, rel.Cardinality)
			attrs := fmt.Sprintf("label=%s", dotID(label))
			if col := table.Column(rel.SourceColumn); col != nil && col.Nullable {
				attrs += ", arrowhead=odiamond"
			}
			if join {
				attrs = fmt.Sprintf("label=%s, style=dashed", dotID(rel.SourceColumn))
			}
			fmt.Fprintf(&b, "  %s -> %s [%s];\n", dotID(table.Name), dotID(rel.TargetTable), attrs)
		}
		if join {
			a, c := linkedTables(table)
			label := fmt.Sprintf("%s via %s", schema.ManyToMany, table.Name)
			fmt.Fprintf(&b, "  %s -> %s [label=%s, dir=both, arrowhead=crow, arrowtail=crow, style=dotted, constraint=false];\n",
				dotID(a), dotID(c), dotID(label))
		}
	}

	b.WriteString("}\n")
	_, err := io.WriteString(f.writer, b.String())
	return err
}

func dotRecordLabel(table *schema.Table) string {
	var b strings.Builder
	b.WriteString("{")
	b.WriteString(escapeRecord(table.Name))
	b.WriteString("|")
	for _, col := range table.Columns {
		line := col.Name + " : " + col.Type
		if table.IsPrimaryKey(col.Name) {
			line += " PK"
		}
		if table.IsForeignKey(col.Name) {
			line += " FK"
		}
		if col.Nullable {
			line += " NULL"
		}
		b.WriteString(escapeRecord(line))
		b.WriteString(`\l`)
	}
	b.WriteString("}")
	return b.String()
}

var recordReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"{", `\{`,
	"}", `\}`,
	"|", `\|`,
	"<", `\<`,
	">", `\>`,
)

func escapeRecord(s string) string {
	return recordReplacer.Replace(s)
}

// dotID quotes s as a DOT string ID.
func dotID(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
