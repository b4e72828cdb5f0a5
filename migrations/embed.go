// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests, the migrate CLI, and server bootstrap.
// Postgres and SQLite keep separate migration sets because their column types differ.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Postgres holds the *.sql migrations for the Postgres store.
var Postgres = mustSub("postgres")

// SQLite holds the *.sql migrations for the SQLite store.
var SQLite = mustSub("sqlite")

// NewProvider returns a goose provider for db using the migration set that
// matches dialect. Only goose.DialectPostgres and goose.DialectSQLite3 are supported.
func NewProvider(dialect goose.Dialect, db *sql.DB) (*goose.Provider, error) {
	var fsys fs.FS
	switch dialect {
	case goose.DialectPostgres:
		fsys = Postgres
	case goose.DialectSQLite3:
		fsys = SQLite
	default:
		return nil, fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}
	return goose.NewProvider(dialect, db, fsys)
}

// Up applies every pending migration for dialect.
func Up(ctx context.Context, dialect goose.Dialect, db *sql.DB) error {
	provider, err := NewProvider(dialect, db)
	if err != nil {
		return err
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrations: up: %w", err)
	}
	return nil
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		panic("migrations: " + err.Error())
	}
	return sub
}
