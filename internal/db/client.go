// Package db reads the schema of a live PostgreSQL, MySQL or SQLite database back into
// the catalog's schema description.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tordrt/holocron/internal/schema"
)

// DefaultPostgresSchema is the schema read when none is named.
const DefaultPostgresSchema = "public"

// Extractor reads table metadata from one database.
type Extractor interface {
	// ExtractSchema extracts the named tables, or every table when tables is empty.
	ExtractSchema(ctx context.Context, tables []string) (*schema.Schema, error)
}

// Conn is an open extractor that owns its connection.
type Conn struct {
	Extractor
	Dialect Dialect
	close   func(context.Context) error
}

// Close closes the underlying connection.
func (c *Conn) Close(ctx context.Context) error {
	return c.close(ctx)
}

// Connect opens a connection for the database URL and wraps it in the extractor of its
// dialect. schemaName selects the PostgreSQL schema or MySQL database; it may be empty.
func Connect(ctx context.Context, url, schemaName string) (*Conn, error) {
	dialect, connStr, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case Postgres:
		conn, err := connectPostgres(ctx, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if schemaName == "" {
			schemaName = DefaultPostgresSchema
		}
		return &Conn{
			Extractor: NewPostgresExtractor(conn, schemaName),
			Dialect:   dialect,
			close:     conn.Close,
		}, nil

	case MySQL:
		if schemaName == "" {
			schemaName, err = ParseDatabaseName(connStr)
			if err != nil {
				return nil, fmt.Errorf("failed to determine database name: %w", err)
			}
		}
		sqlDB, err := openSQL(ctx, "mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
		}
		return &Conn{
			Extractor: NewMySQLExtractor(sqlDB, schemaName),
			Dialect:   dialect,
			close:     func(context.Context) error { return sqlDB.Close() },
		}, nil

	case SQLite:
		sqlDB, err := openSQL(ctx, "sqlite3", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
		}
		return &Conn{
			Extractor: NewSQLiteExtractor(sqlDB),
			Dialect:   dialect,
			close:     func(context.Context) error { return sqlDB.Close() },
		}, nil
	}

	return nil, fmt.Errorf("unsupported database type: %s", dialect)
}

func connectPostgres(ctx context.Context, connString string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

func openSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return sqlDB, nil
}

// extractTables runs extract for each table name, in order.
func extractTables(ctx context.Context, names []string, extract func(context.Context, string) (*schema.Table, error)) (*schema.Schema, error) {
	tables := make([]schema.Table, 0, len(names))
	for _, name := range names {
		table, err := extract(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to extract table %s: %w", name, err)
		}
		tables = append(tables, *table)
	}
	return &schema.Schema{Tables: tables}, nil
}

// sortRelations orders foreign keys by the position of their source column.
func sortRelations(t *schema.Table) {
	pos := make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		pos[col.Name] = i
	}
	sort.SliceStable(t.Relations, func(i, j int) bool {
		return pos[t.Relations[i].SourceColumn] < pos[t.Relations[j].SourceColumn]
	})
}

func sortIndexes(indexes []schema.Index) {
	sort.Slice(indexes, func(i, j int) bool { return indexes[i].Name < indexes[j].Name })
}
