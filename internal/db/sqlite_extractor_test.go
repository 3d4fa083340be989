package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tordrt/holocron/internal/catalog"
	"github.com/tordrt/holocron/internal/schema"
)

// migratedCatalog builds the catalog in a fresh SQLite file and returns its URL.
func migratedCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")

	gdb, err := gorm.Open(sqlite.Open(WithSQLiteForeignKeys(path)), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, catalog.Migrate(context.Background(), gdb))

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	return "sqlite://" + path
}

func extractCatalog(t *testing.T, tables []string) *schema.Schema {
	t.Helper()
	ctx := context.Background()

	conn, err := Connect(ctx, migratedCatalog(t), "")
	require.NoError(t, err)
	defer func() { _ = conn.Close(ctx) }()
	assert.Equal(t, SQLite, conn.Dialect)

	s, err := conn.ExtractSchema(ctx, tables)
	require.NoError(t, err)
	return s
}

func typeClass(sqlType string) string {
	t := strings.ToLower(sqlType)
	switch {
	case strings.Contains(t, "char"), strings.Contains(t, "text"):
		return "string"
	case strings.Contains(t, "int"):
		return "integer"
	default:
		return t
	}
}

func TestSQLiteExtractor_MatchesDeclaredCatalog(t *testing.T) {
	declared, err := catalog.Describe()
	require.NoError(t, err)
	live := extractCatalog(t, nil)

	require.Len(t, live.Tables, len(declared.Tables))

	for _, want := range declared.Tables {
		t.Run(want.Name, func(t *testing.T) {
			got := live.Table(want.Name)
			require.NotNil(t, got)

			assert.Equal(t, want.PrimaryKey, got.PrimaryKey)
			require.Len(t, got.Columns, len(want.Columns))
			for i, wc := range want.Columns {
				gc := got.Columns[i]
				assert.Equal(t, wc.Name, gc.Name)
				if want.IsPrimaryKey(wc.Name) {
					continue
				}
				assert.Equal(t, typeClass(wc.Type), typeClass(gc.Type), wc.Name)
				assert.Equal(t, wc.Nullable, gc.Nullable, wc.Name)
			}

			assert.Equal(t, want.Relations, got.Relations)
			assert.Equal(t, want.IsJoinTable(), got.IsJoinTable())
		})
	}
}

func TestSQLiteExtractor_Indexes(t *testing.T) {
	s := extractCatalog(t, []string{"favorites", "character"})
	require.Len(t, s.Tables, 2)

	favorites := s.Table("favorites")
	require.NotNil(t, favorites)
	var found bool
	for _, idx := range favorites.Indexes {
		if idx.Name == "idx_favorites_target" {
			found = true
			assert.True(t, idx.IsUnique)
			assert.Equal(t, []string{"user_id", "target_kind", "target_id"}, idx.Columns)
		}
	}
	assert.True(t, found, "unique favorites index not extracted")

	character := s.Table("character")
	require.NotNil(t, character)
	var names []string
	for _, idx := range character.Indexes {
		names = append(names, idx.Name)
	}
	assert.Contains(t, names, "idx_character_homeworld_id")
	assert.Contains(t, names, "idx_character_specie_id")
}

func TestSQLiteExtractor_UnknownTable(t *testing.T) {
	ctx := context.Background()
	conn, err := Connect(ctx, migratedCatalog(t), "")
	require.NoError(t, err)
	defer func() { _ = conn.Close(ctx) }()

	_, err = conn.ExtractSchema(ctx, []string{"sith_lords"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sith_lords")
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), "ftp://nowhere", "")
	assert.Error(t, err)
}
