//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/holocron/internal/catalog"
	"github.com/tordrt/holocron/internal/db"
	"github.com/tordrt/holocron/internal/testutil"
)

// openServerStore opens a clean catalog on the server named by envVar, skipping the
// test when the variable is unset.
func openServerStore(t *testing.T, envVar string) *Store {
	t.Helper()
	url := os.Getenv(envVar)
	if url == "" {
		t.Skipf("%s not set", envVar)
	}
	ctx := context.Background()

	s, err := Open(ctx, url, testutil.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	models := catalog.Models()
	for i := len(models) - 1; i >= 0; i-- {
		require.NoError(t, s.DB().Migrator().DropTable(models[i]))
	}
	require.NoError(t, s.Migrate(ctx))
	return s
}

func testServer(t *testing.T, envVar string) {
	s := openServerStore(t, envVar)
	ctx := context.Background()

	t.Run("foreign keys enforced", func(t *testing.T) {
		require.Error(t, s.Create(ctx, luke(99)))
		require.NoError(t, s.Create(ctx, tatooine(), luke(1), aNewHope()))
		require.Error(t, s.Link(ctx, &catalog.CharacterFilm{CharacterID: 1, FilmID: 7}))
		require.NoError(t, s.Link(ctx, &catalog.CharacterFilm{CharacterID: 1, FilmID: 4}))
	})

	t.Run("favorites kind is checked", func(t *testing.T) {
		require.NoError(t, s.Create(ctx, &catalog.User{ID: 1}))
		require.Error(t, s.Create(ctx, &catalog.Favorite{UserID: 1, TargetKind: "droid", TargetID: 1}))
		_, err := s.AddFavorite(ctx, 1, catalog.FavoriteRef{Kind: catalog.KindFilm, ID: 4})
		require.NoError(t, err)
	})

	t.Run("extracted schema matches declared relations", func(t *testing.T) {
		declared, err := catalog.Describe()
		require.NoError(t, err)

		conn, err := db.Connect(ctx, s.URL(), "")
		require.NoError(t, err)
		defer func() { _ = conn.Close(ctx) }()

		live, err := conn.ExtractSchema(ctx, catalog.TableNames())
		require.NoError(t, err)

		for _, want := range declared.Tables {
			got := live.Table(want.Name)
			require.NotNil(t, got, want.Name)
			assert.Equal(t, want.PrimaryKey, got.PrimaryKey, want.Name)
			assert.Equal(t, want.Relations, got.Relations, want.Name)
			for _, col := range want.Columns {
				gc := got.Column(col.Name)
				require.NotNil(t, gc, "%s.%s", want.Name, col.Name)
				if !want.IsPrimaryKey(col.Name) {
					assert.Equal(t, col.Nullable, gc.Nullable, "%s.%s", want.Name, col.Name)
				}
			}
		}
	})
}

func TestPostgresCatalog(t *testing.T) {
	testServer(t, "HOLOCRON_TEST_POSTGRES_URL")
}

func TestMySQLCatalog(t *testing.T) {
	testServer(t, "HOLOCRON_TEST_MYSQL_URL")
}
