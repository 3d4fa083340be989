// Package schema holds the database-agnostic description of the catalog that every
// formatter renders, whether it came from the declared models or from a live database.
package schema

import "sort"

// Relation cardinalities
const (
	ManyToOne  = "N:1"
	OneToOne   = "1:1"
	ManyToMany = "N:M"
)

// Schema represents a complete database schema
type Schema struct {
	Tables []Table
}

// Table represents a database table
type Table struct {
	Name       string
	Columns    []Column
	Relations  []Relation
	Indexes    []Index
	PrimaryKey []string
	Checks     []string
}

// Column represents a table column
type Column struct {
	Name         string
	Type         string
	Nullable     bool
	DefaultValue *string
	IsUnique     bool
}

// Relation represents a foreign key relationship
type Relation struct {
	TargetTable  string
	TargetColumn string
	SourceColumn string
	Cardinality  string
}

// Index represents a database index
type Index struct {
	Name     string
	Columns  []string
	IsUnique bool
}

// Table returns the named table, or nil.
func (s *Schema) Table(name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}

// SortTables orders tables by name.
func (s *Schema) SortTables() {
	sort.Slice(s.Tables, func(i, j int) bool {
		return s.Tables[i].Name < s.Tables[j].Name
	})
}

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// IsPrimaryKey reports whether column is part of the table's primary key.
func (t *Table) IsPrimaryKey(column string) bool {
	for _, pk := range t.PrimaryKey {
		if pk == column {
			return true
		}
	}
	return false
}

// IsForeignKey reports whether column references another table.
func (t *Table) IsForeignKey(column string) bool {
	for _, rel := range t.Relations {
		if rel.SourceColumn == column {
			return true
		}
	}
	return false
}

// IsJoinTable reports whether the table only links two other tables: a two-column
// composite primary key where both columns are foreign keys.
func (t *Table) IsJoinTable() bool {
	if len(t.PrimaryKey) != 2 || len(t.Relations) != 2 {
		return false
	}
	for _, pk := range t.PrimaryKey {
		if !t.IsForeignKey(pk) {
			return false
		}
	}
	return true
}

// Filter keeps only the named tables. An empty list keeps everything.
func (s *Schema) Filter(include []string) {
	if len(include) == 0 {
		return
	}
	keep := make(map[string]bool, len(include))
	for _, name := range include {
		keep[name] = true
	}
	filtered := make([]Table, 0, len(s.Tables))
	for _, table := range s.Tables {
		if keep[table.Name] {
			filtered = append(filtered, table)
		}
	}
	s.Tables = filtered
}

// Exclude drops the named tables.
func (s *Schema) Exclude(exclude []string) {
	if len(exclude) == 0 {
		return
	}
	drop := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		drop[name] = true
	}
	filtered := make([]Table, 0, len(s.Tables))
	for _, table := range s.Tables {
		if !drop[table.Name] {
			filtered = append(filtered, table)
		}
	}
	s.Tables = filtered
}
