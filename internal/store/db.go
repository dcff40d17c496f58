// Package store bootstraps the local SQLite database: it opens the file,
// applies the embedded goose migrations and wires the repositories.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/adhdo-app/adhdo/internal/repositories/bookmarks"
	"github.com/adhdo-app/adhdo/internal/repositories/categories"
	"github.com/adhdo-app/adhdo/internal/repositories/settings"
	"github.com/adhdo-app/adhdo/internal/repositories/tasks"
	"github.com/adhdo-app/adhdo/internal/store/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories bundles the repositories backed by one database handle.
type Repositories struct {
	DB         *sql.DB
	Tasks      tasks.Repository
	Categories categories.Repository
	Bookmarks  bookmarks.Repository
	Settings   settings.Repository
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// RunMigrations applies all pending migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens the SQLite database at dsn (":memory:" works for tests),
// migrates it and returns the repositories.
//
// The pool is limited to a single connection: SQLite allows one writer, and an
// in-memory database exists only on the connection that created it.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		DB:         db,
		Tasks:      tasks.NewSQLiteRepository(db),
		Categories: categories.NewSQLiteRepository(db),
		Bookmarks:  bookmarks.NewSQLiteRepository(db),
		Settings:   settings.NewSQLiteRepository(db),
	}, nil
}
