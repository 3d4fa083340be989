package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	gormschema "gorm.io/gorm/schema"

	"github.com/tordrt/holocron/internal/schema"
)

// Describe parses the declared models and returns the catalog schema without touching
// a database. Tables come back sorted by name.
func Describe() (*schema.Schema, error) {
	cache := &sync.Map{}
	namer := gormschema.NamingStrategy{}

	parsed := make([]*gormschema.Schema, 0, len(Models()))
	for _, model := range Models() {
		s, err := gormschema.Parse(model, cache, namer)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %T: %w", model, err)
		}
		parsed = append(parsed, s)
	}

	out := &schema.Schema{}
	byName := make(map[string]int, len(parsed))
	for _, s := range parsed {
		byName[s.Table] = len(out.Tables)
		out.Tables = append(out.Tables, describeTable(s, namer))
	}

	seen := make(map[string]bool)
	for _, s := range parsed {
		for _, rel := range sortedRelations(s) {
			for _, r := range relationsOf(rel) {
				key := r.table + "." + r.SourceColumn
				if seen[key] {
					continue
				}
				idx, ok := byName[r.table]
				if !ok {
					return nil, fmt.Errorf("relation %s.%s targets undeclared table %s", s.Name, rel.Name, r.table)
				}
				seen[key] = true
				out.Tables[idx].Relations = append(out.Tables[idx].Relations, r.Relation)
			}
		}
	}

	for i := range out.Tables {
		t := &out.Tables[i]
		sort.SliceStable(t.Relations, func(a, b int) bool {
			return columnOrder(t, t.Relations[a].SourceColumn) < columnOrder(t, t.Relations[b].SourceColumn)
		})
	}
	out.SortTables()
	return out, nil
}

func describeTable(s *gormschema.Schema, namer gormschema.Namer) schema.Table {
	t := schema.Table{Name: s.Table}

	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		t.Columns = append(t.Columns, schema.Column{
			Name:     f.DBName,
			Type:     columnType(f),
			Nullable: !f.NotNull && !f.PrimaryKey,
			IsUnique: f.Unique,
		})
	}
	t.PrimaryKey = append(t.PrimaryKey, s.PrimaryFieldDBNames...)
	t.Indexes = describeIndexes(s, namer)

	checks := s.ParseCheckConstraints()
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.Checks = append(t.Checks, checks[name].Constraint)
	}
	return t
}

func columnType(f *gormschema.Field) string {
	switch f.DataType {
	case gormschema.String:
		if f.Size > 0 {
			return fmt.Sprintf("varchar(%d)", f.Size)
		}
		return "text"
	case gormschema.Int, gormschema.Uint:
		return "integer"
	case gormschema.Float:
		return "real"
	case gormschema.Bool:
		return "boolean"
	case gormschema.Time:
		return "timestamp"
	case gormschema.Bytes:
		return "blob"
	default:
		return string(f.DataType)
	}
}

// describeIndexes reads index and uniqueIndex tags. Columns sharing an index name form
// one composite index, in field order.
func describeIndexes(s *gormschema.Schema, namer gormschema.Namer) []schema.Index {
	var indexes []schema.Index
	pos := make(map[string]int)

	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		for _, key := range []string{"INDEX", "UNIQUEINDEX"} {
			value, ok := f.TagSettings[key]
			if !ok {
				continue
			}
			name := strings.TrimSpace(strings.Split(value, ",")[0])
			if name == "" {
				name = namer.IndexName(s.Table, f.DBName)
			}
			if i, ok := pos[name]; ok {
				indexes[i].Columns = append(indexes[i].Columns, f.DBName)
				continue
			}
			pos[name] = len(indexes)
			indexes = append(indexes, schema.Index{
				Name:     name,
				Columns:  []string{f.DBName},
				IsUnique: key == "UNIQUEINDEX",
			})
		}
	}

	sort.Slice(indexes, func(i, j int) bool { return indexes[i].Name < indexes[j].Name })
	return indexes
}

type tableRelation struct {
	schema.Relation
	table string
}

// relationsOf turns a gorm relationship into the foreign keys it puts on the database.
// Many-to-many links yield the two foreign keys of their join table.
func relationsOf(rel *gormschema.Relationship) []tableRelation {
	var out []tableRelation

	if rel.Type == gormschema.Many2Many {
		if rel.JoinTable == nil {
			return nil
		}
		for _, ref := range rel.References {
			if ref.PrimaryKey == nil || ref.ForeignKey == nil {
				continue
			}
			target := rel.FieldSchema.Table
			if ref.OwnPrimaryKey {
				target = rel.Schema.Table
			}
			out = append(out, tableRelation{
				table: rel.JoinTable.Table,
				Relation: schema.Relation{
					SourceColumn: ref.ForeignKey.DBName,
					TargetTable:  target,
					TargetColumn: ref.PrimaryKey.DBName,
					Cardinality:  schema.ManyToOne,
				},
			})
		}
		return out
	}

	c := rel.ParseConstraint()
	if c == nil {
		return nil
	}
	for i, fk := range c.ForeignKeys {
		out = append(out, tableRelation{
			table: c.Schema.Table,
			Relation: schema.Relation{
				SourceColumn: fk.DBName,
				TargetTable:  c.ReferenceSchema.Table,
				TargetColumn: c.References[i].DBName,
				Cardinality:  schema.ManyToOne,
			},
		})
	}
	return out
}

func sortedRelations(s *gormschema.Schema) []*gormschema.Relationship {
	names := make([]string, 0, len(s.Relationships.Relations))
	for name := range s.Relationships.Relations {
		names = append(names, name)
	}
	sort.Strings(names)

	rels := make([]*gormschema.Relationship, 0, len(names))
	for _, name := range names {
		rels = append(rels, s.Relationships.Relations[name])
	}
	return rels
}

func columnOrder(t *schema.Table, column string) int {
	for i, col := range t.Columns {
		if col.Name == column {
			return i
		}
	}
	return len(t.Columns)
}
