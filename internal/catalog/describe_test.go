package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/holocron/internal/schema"
)

func TestDescribe_Tables(t *testing.T) {
	s, err := Describe()
	require.NoError(t, err)

	var names []string
	for _, table := range s.Tables {
		names = append(names, table.Name)
	}
	assert.ElementsMatch(t, TableNames(), names)
	assert.IsIncreasing(t, names, "tables are sorted by name")
}

func TestDescribe_Columns(t *testing.T) {
	s, err := Describe()
	require.NoError(t, err)

	tests := []struct {
		table    string
		column   string
		typ      string
		nullable bool
	}{
		{"character", "id", "integer", false},
		{"character", "name", "varchar(250)", false},
		{"character", "hair_color", "varchar(10)", false},
		{"character", "gender", "varchar(30)", false},
		{"character", "homeworld_id", "integer", false},
		{"character", "specie_id", "integer", true},
		{"film", "episode_id", "integer", false},
		{"film", "opening_crawl", "text", false},
		{"planet", "terrain", "varchar(10)", false},
		{"planet", "population", "integer", false},
		{"vehicle", "manufacturer", "text", false},
		{"vehicle", "consumables", "varchar(20)", false},
		{"starship", "manufacturer", "varchar(50)", false},
		{"starship", "mglt", "integer", false},
		{"specie", "homeworld", "text", false},
		{"user", "name", "varchar(250)", true},
		{"user", "email", "varchar(50)", true},
		{"user", "password", "varchar(50)", true},
		{"favorites", "user_id", "integer", false},
		{"favorites", "target_kind", "varchar(16)", false},
		{"favorites", "target_id", "integer", false},
	}

	for _, tt := range tests {
		t.Run(tt.table+"."+tt.column, func(t *testing.T) {
			table := s.Table(tt.table)
			require.NotNil(t, table)
			col := table.Column(tt.column)
			require.NotNil(t, col)
			assert.Equal(t, tt.typ, col.Type)
			assert.Equal(t, tt.nullable, col.Nullable)
		})
	}
}

func TestDescribe_ColumnSets(t *testing.T) {
	s, err := Describe()
	require.NoError(t, err)

	want := map[string][]string{
		"character": {"id", "name", "height", "mass", "hair_color", "skin_color", "eye_color", "birth_year", "gender", "homeworld_id", "specie_id"},
		"film":      {"episode_id", "title", "opening_crawl", "director", "producer", "release_date"},
		"planet":    {"id", "name", "rotation_period", "orbital_period", "diameter", "climate", "gravity", "terrain", "surface_water", "population"},
		"vehicle": {"id", "name", "model", "manufacturer", "cost_in_credits", "length", "max_atmosphering_speed",
			"crew", "passengers", "cargo_capacity", "consumables", "vehicle_class"},
		"starship": {"id", "name", "model", "manufacturer", "cost_in_credits", "length", "max_atmosphering_speed",
			"crew", "passengers", "cargo_capacity", "consumables", "hyperdrive_rating", "mglt", "starship_class"},
		"specie": {"id", "name", "classification", "designation", "average_height", "skin_colors", "hair_colors",
			"eye_colors", "average_lifespan", "homeworld", "language"},
		"user":      {"id", "name", "last_name", "email", "password"},
		"favorites": {"id", "user_id", "target_kind", "target_id"},
	}

	for table, columns := range want {
		tbl := s.Table(table)
		require.NotNil(t, tbl, table)
		var got []string
		for _, col := range tbl.Columns {
			got = append(got, col.Name)
		}
		assert.Equal(t, columns, got, table)
	}
}

func TestDescribe_Relations(t *testing.T) {
	s, err := Describe()
	require.NoError(t, err)

	character := s.Table("character")
	require.NotNil(t, character)
	assert.Equal(t, []schema.Relation{
		{SourceColumn: "homeworld_id", TargetTable: "planet", TargetColumn: "id", Cardinality: schema.ManyToOne},
		{SourceColumn: "specie_id", TargetTable: "specie", TargetColumn: "id", Cardinality: schema.ManyToOne},
	}, character.Relations)

	favorites := s.Table("favorites")
	require.NotNil(t, favorites)
	assert.Equal(t, []schema.Relation{
		{SourceColumn: "user_id", TargetTable: "user", TargetColumn: "id", Cardinality: schema.ManyToOne},
	}, favorites.Relations)

	for _, name := range []string{"film", "planet", "vehicle", "starship", "specie", "user"} {
		assert.Empty(t, s.Table(name).Relations, name)
	}
}

func TestDescribe_JoinTables(t *testing.T) {
	s, err := Describe()
	require.NoError(t, err)

	tests := []struct {
		table string
		pk    []string
		links map[string]string
	}{
		{"character_film", []string{"character_id", "film_id"}, map[string]string{"character_id": "character", "film_id": "film"}},
		{"film_planet", []string{"film_id", "planet_id"}, map[string]string{"film_id": "film", "planet_id": "planet"}},
		{"film_vehicle", []string{"film_id", "vehicle_id"}, map[string]string{"film_id": "film", "vehicle_id": "vehicle"}},
		{"film_starship", []string{"film_id", "starship_id"}, map[string]string{"film_id": "film", "starship_id": "starship"}},
		{"film_specie", []string{"film_id", "specie_id"}, map[string]string{"film_id": "film", "specie_id": "specie"}},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			table := s.Table(tt.table)
			require.NotNil(t, table)
			assert.Equal(t, tt.pk, table.PrimaryKey)
			assert.True(t, table.IsJoinTable())

			got := make(map[string]string)
			for _, rel := range table.Relations {
				got[rel.SourceColumn] = rel.TargetTable
			}
			assert.Equal(t, tt.links, got)
		})
	}

	for _, name := range []string{"character", "film", "favorites"} {
		assert.False(t, s.Table(name).IsJoinTable(), name)
	}
}

func TestDescribe_FavoritesConstraints(t *testing.T) {
	s, err := Describe()
	require.NoError(t, err)

	favorites := s.Table("favorites")
	require.NotNil(t, favorites)

	require.Len(t, favorites.Checks, 1)
	for _, kind := range Kinds() {
		assert.Contains(t, favorites.Checks[0], "'"+string(kind)+"'")
	}

	var target *schema.Index
	for i := range favorites.Indexes {
		if favorites.Indexes[i].Name == "idx_favorites_target" {
			target = &favorites.Indexes[i]
		}
	}
	require.NotNil(t, target)
	assert.True(t, target.IsUnique)
	assert.Equal(t, []string{"user_id", "target_kind", "target_id"}, target.Columns)
}
