package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed migrations
var migrationsFS embed.FS

// EventMigrations returns the schema of the event service database.
func EventMigrations() fs.FS {
	sub, _ := fs.Sub(migrationsFS, "migrations/event")
	return sub
}

// IdentityMigrations returns the schema of the identity service database.
func IdentityMigrations() fs.FS {
	sub, _ := fs.Sub(migrationsFS, "migrations/identity")
	return sub
}

// Migrator applies *.sql files in lexical order, once each, recording them in schema_migrations.
type Migrator struct {
	DB    *sql.DB
	files fs.FS
}

func NewMigrator(db *sql.DB, files fs.FS) *Migrator {
	return &Migrator{DB: db, files: files}
}

func (m *Migrator) Migrate(ctx context.Context) error {
	if _, err := m.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := fs.ReadDir(m.files, ".")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".sql" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		version := strings.TrimSuffix(name, ".sql")
		if err := m.apply(ctx, name, version); err != nil {
			return fmt.Errorf("migration %s: %w", version, err)
		}
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, name, version string) error {
	var applied bool
	err := m.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&applied)
	if err != nil {
		return err
	}
	if applied {
		return nil
	}

	body, err := fs.ReadFile(m.files, name)
	if err != nil {
		return err
	}
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
