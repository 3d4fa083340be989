package db

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/holocron/internal/schema"
)

func TestMySQLExtractor_ExtractSchema(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectQuery(`FROM information_schema.tables`).
		WithArgs("swapi").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("character"))

	mock.ExpectQuery(`FROM information_schema.columns`).
		WithArgs("swapi", "character").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "column_type", "is_nullable", "column_default", "is_unique"}).
			AddRow("id", "bigint", "NO", nil, false).
			AddRow("name", "varchar(250)", "NO", nil, false).
			AddRow("homeworld_id", "bigint", "NO", nil, false).
			AddRow("specie_id", "bigint", "YES", nil, false))

	mock.ExpectQuery(`constraint_name = 'PRIMARY'`).
		WithArgs("swapi", "character").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("id"))

	mock.ExpectQuery(`referenced_table_name IS NOT NULL`).
		WithArgs("swapi", "character").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "referenced_table_name", "referenced_column_name"}).
			AddRow("specie_id", "specie", "id").
			AddRow("homeworld_id", "planet", "id"))

	mock.ExpectQuery(`FROM information_schema.statistics`).
		WithArgs("swapi", "character").
		WillReturnRows(sqlmock.NewRows([]string{"index_name", "is_unique", "column_names"}).
			AddRow("idx_character_homeworld_id", false, "homeworld_id").
			AddRow("idx_character_specie_id", false, "specie_id"))

	s, err := NewMySQLExtractor(sqlDB, "swapi").ExtractSchema(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, s.Tables, 1)
	table := s.Tables[0]
	assert.Equal(t, "character", table.Name)
	assert.Equal(t, []string{"id"}, table.PrimaryKey)
	require.Len(t, table.Columns, 4)
	assert.Equal(t, "varchar(250)", table.Columns[1].Type)
	assert.False(t, table.Columns[2].Nullable)
	assert.True(t, table.Columns[3].Nullable)

	assert.Equal(t, []schema.Relation{
		{SourceColumn: "homeworld_id", TargetTable: "planet", TargetColumn: "id", Cardinality: schema.ManyToOne},
		{SourceColumn: "specie_id", TargetTable: "specie", TargetColumn: "id", Cardinality: schema.ManyToOne},
	}, table.Relations, "relations follow column order")

	require.Len(t, table.Indexes, 2)
	assert.Equal(t, []string{"homeworld_id"}, table.Indexes[0].Columns)
}

func TestMySQLExtractor_CompositeIndex(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectQuery(`FROM information_schema.columns`).
		WithArgs("swapi", "favorites").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "column_type", "is_nullable", "column_default", "is_unique"}).
			AddRow("id", "bigint", "NO", nil, false).
			AddRow("user_id", "bigint", "NO", nil, false).
			AddRow("target_kind", "varchar(16)", "NO", nil, false).
			AddRow("target_id", "bigint", "NO", nil, false))
	mock.ExpectQuery(`constraint_name = 'PRIMARY'`).
		WithArgs("swapi", "favorites").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("id"))
	mock.ExpectQuery(`referenced_table_name IS NOT NULL`).
		WithArgs("swapi", "favorites").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "referenced_table_name", "referenced_column_name"}).
			AddRow("user_id", "user", "id"))
	mock.ExpectQuery(`FROM information_schema.statistics`).
		WithArgs("swapi", "favorites").
		WillReturnRows(sqlmock.NewRows([]string{"index_name", "is_unique", "column_names"}).
			AddRow("idx_favorites_target", true, "user_id,target_kind,target_id"))

	s, err := NewMySQLExtractor(sqlDB, "swapi").ExtractSchema(context.Background(), []string{"favorites"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	table := s.Table("favorites")
	require.NotNil(t, table)
	require.Len(t, table.Indexes, 1)
	assert.True(t, table.Indexes[0].IsUnique)
	assert.Equal(t, []string{"user_id", "target_kind", "target_id"}, table.Indexes[0].Columns)
}

func TestMySQLExtractor_MissingTable(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectQuery(`FROM information_schema.columns`).
		WithArgs("swapi", "sith").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "column_type", "is_nullable", "column_default", "is_unique"}))

	_, err = NewMySQLExtractor(sqlDB, "swapi").ExtractSchema(context.Background(), []string{"sith"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table does not exist")
}
