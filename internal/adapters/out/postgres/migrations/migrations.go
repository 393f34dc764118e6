// Package migrations applies the embedded SQL schema with golang-migrate.
//
// Files under sql/ follow the golang-migrate naming scheme
// (NNNNNN_name.up.sql / NNNNNN_name.down.sql) and are compiled into the
// binary, so the migrate command needs nothing but a database URL.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// database/sql driver used by the migration runner.
	_ "github.com/lib/pq"
)

//go:embed sql/*.sql
var files embed.FS

// Migrator wraps a golang-migrate instance bound to the embedded files.
type Migrator struct {
	m *migrate.Migrate
}

// New opens dsn with lib/pq and prepares the embedded migrations.
// Close must be called when done.
func New(dsn string) (*Migrator, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	m, err := newMigrate(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Migrator{m: m}, nil
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("init migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}

	return m, nil
}

// Up applies all pending migrations. Being already up to date is not an error.
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back every applied migration.
func (m *Migrator) Down() error {
	if err := m.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version reports the current schema version; ok is false on an empty database.
func (m *Migrator) Version() (version uint, dirty bool, ok bool, err error) {
	version, dirty, err = m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, err
	}
	return version, dirty, true, nil
}

// Close releases the migrate instance; the driver closes the database handle.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}
