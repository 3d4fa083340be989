package formatter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tordrt/holocron/internal/schema"
)

// OverviewName is the base name of the index file written next to the table files.
const OverviewName = "_overview"

// MultiFileFormatter writes schema to multiple files in a directory
type MultiFileFormatter struct {
	OutputDir    string
	OutputFormat string // "text" or "markdown"
}

// NewMultiFileFormatter creates a new multi-file formatter
func NewMultiFileFormatter(outputDir, format string) *MultiFileFormatter {
	return &MultiFileFormatter{
		OutputDir:    outputDir,
		OutputFormat: format,
	}
}

// Format writes an overview file plus one file per table.
func (f *MultiFileFormatter) Format(s *schema.Schema) error {
	if f.OutputFormat != FormatMarkdown && f.OutputFormat != FormatText {
		return fmt.Errorf("multi-file output does not support format %q", f.OutputFormat)
	}
	if err := os.MkdirAll(f.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := f.writeFile(OverviewName, func(w io.Writer) { f.writeOverview(w, s) }); err != nil {
		return fmt.Errorf("failed to write overview: %w", err)
	}

	for i := range s.Tables {
		table := &s.Tables[i]
		err := f.writeFile(table.Name, func(w io.Writer) { f.writeTable(w, table, s) })
		if err != nil {
			return fmt.Errorf("failed to write table file for %s: %w", table.Name, err)
		}
	}

	return nil
}

func (f *MultiFileFormatter) writeFile(name string, write func(io.Writer)) error {
	file, err := os.Create(filepath.Join(f.OutputDir, name+f.fileExtension()))
	if err != nil {
		return err
	}
	write(file)
	return file.Close()
}

func (f *MultiFileFormatter) writeOverview(w io.Writer, s *schema.Schema) {
	sorted := make([]schema.Table, len(s.Tables))
	copy(sorted, s.Tables)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	if f.OutputFormat == FormatMarkdown {
		_, _ = fmt.Fprint(w, "# Schema Overview\n\n")
		_, _ = fmt.Fprintf(w, "Each table has a corresponding file: `<table_name>%s`\n\n", f.fileExtension())
		_, _ = fmt.Fprint(w, "## Tables\n\n")
	} else {
		_, _ = fmt.Fprintln(w, "SCHEMA OVERVIEW")
		_, _ = fmt.Fprintf(w, "Each table has a file: <table_name>%s\n\n", f.fileExtension())
	}

	for i := range sorted {
		table := &sorted[i]
		name := table.Name
		if f.OutputFormat == FormatMarkdown {
			name = "**" + name + "**"
			_, _ = fmt.Fprint(w, "- ")
		}
		_, _ = fmt.Fprint(w, name)
		if len(table.Relations) > 0 {
			targets := make([]string, 0, len(table.Relations))
			for _, rel := range table.Relations {
				targets = append(targets, rel.TargetTable)
			}
			label := "references"
			if table.IsJoinTable() {
				label = "links"
			}
			_, _ = fmt.Fprintf(w, " (%s: %s)", label, strings.Join(targets, ", "))
		}
		_, _ = fmt.Fprintln(w)
	}
}

func (f *MultiFileFormatter) writeTable(w io.Writer, table *schema.Table, s *schema.Schema) {
	incoming := FindIncomingRelations(table.Name, s)

	if f.OutputFormat == FormatMarkdown {
		md := NewMarkdownFormatter(w)
		md.FormatTable(table)
		md.FormatIncoming(incoming)
		return
	}

	_ = NewTextFormatter(w).FormatTable(table)
	if len(incoming) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "  REFERENCED BY:")
		for _, rel := range incoming {
			_, _ = fmt.Fprintf(w, "    %s.%s → %s (%s)\n", rel.SourceTable, rel.SourceColumn, rel.TargetColumn, rel.Cardinality)
		}
	}
}

func (f *MultiFileFormatter) fileExtension() string {
	if f.OutputFormat == FormatMarkdown {
		return ".md"
	}
	return ".txt"
}
