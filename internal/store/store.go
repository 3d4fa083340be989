// Package store persists the catalog through gorm on SQLite, PostgreSQL or MySQL.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tordrt/holocron/internal/catalog"
	"github.com/tordrt/holocron/internal/db"
	"github.com/tordrt/holocron/internal/logging"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// Store wraps a gorm handle configured for the catalog.
type Store struct {
	db      *gorm.DB
	dialect db.Dialect
	url     string
	logger  *slog.Logger
}

// Open connects to the database URL. The catalog's join records are registered on the
// returned handle; tables are not created until Migrate runs.
func Open(ctx context.Context, url string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dialect, connStr, err := db.ParseURL(url)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch dialect {
	case db.Postgres:
		dialector = postgres.Open(connStr)
	case db.MySQL:
		dialector = mysql.Open(connStr)
	case db.SQLite:
		dialector = sqlite.Open(db.WithSQLiteForeignKeys(connStr))
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dialect)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logging.NewGormLogger(logger),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dialect, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := catalog.SetupJoinTables(gdb); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logger.Debug("database opened", "dialect", dialect)
	return &Store{db: gdb, dialect: dialect, url: url, logger: logger}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the underlying gorm handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Dialect reports the database engine.
func (s *Store) Dialect() db.Dialect {
	return s.dialect
}

// URL returns the database URL the store was opened with.
func (s *Store) URL() string {
	return s.url
}

// Migrate creates or updates every catalog table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := catalog.Migrate(ctx, s.db); err != nil {
		return err
	}
	s.logger.Info("catalog schema ready", "dialect", s.dialect, "tables", len(catalog.TableNames()))
	return nil
}

// Create inserts records as-is. Associations on the records are not followed: link
// records through their join records instead.
func (s *Store) Create(ctx context.Context, records ...any) error {
	for _, record := range records {
		if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error; err != nil {
			return fmt.Errorf("failed to create %T: %w", record, err)
		}
	}
	return nil
}

// Transaction runs fn against a store bound to one database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, dialect: s.dialect, url: s.url, logger: s.logger})
	})
}

func (s *Store) first(ctx context.Context, dest any, preloads []string, conds ...any) error {
	tx := s.db.WithContext(ctx)
	for _, p := range preloads {
		tx = tx.Preload(p)
	}
	if err := tx.First(dest, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %T %v", ErrNotFound, dest, conds)
		}
		return fmt.Errorf("failed to load %T: %w", dest, err)
	}
	return nil
}
