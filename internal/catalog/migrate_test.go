package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "catalog.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestModelsMatchTableNames(t *testing.T) {
	models := Models()
	names := TableNames()
	require.Len(t, names, len(models))
	for i, model := range models {
		tabler, ok := model.(interface{ TableName() string })
		require.True(t, ok, "%T has no TableName", model)
		assert.Equal(t, names[i], tabler.TableName())
	}
}

func TestMigrate_CreatesEveryTable(t *testing.T) {
	db := openSQLite(t)

	require.NoError(t, Migrate(context.Background(), db))

	for _, name := range TableNames() {
		assert.True(t, db.Migrator().HasTable(name), "missing table %s", name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))
}

func TestDeclaringModelsCreatesNothing(t *testing.T) {
	db := openSQLite(t)

	_, err := Describe()
	require.NoError(t, err)
	require.NoError(t, SetupJoinTables(db))

	for _, name := range TableNames() {
		assert.False(t, db.Migrator().HasTable(name), "table %s exists before Migrate", name)
	}
}
