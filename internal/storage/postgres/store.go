// Package postgres is the shared-database backend, for users who sync one
// account across machines.
package postgres

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"

	"github.com/emberhabits/ember/internal/migration"
	"github.com/emberhabits/ember/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
}

func NewStore(connStr string) *Store {
	return &Store{connStr: connStr}
}

func (s *Store) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	runner := migration.NewRunner(s.db, migrationFS())
	if _, err := runner.Apply(nil); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}
	runner := migration.NewRunner(s.db, migrationFS())
	return runner.ValidateVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetConfigPath returns the local config dir; with a remote database the
// logs, key-value store and keyring entries still live on this machine.
func (s *Store) GetConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(configDir, "ember")
}

// GetDB exposes the handle for diagnostics and tests.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// ApplyMigrations applies pending migrations, reporting progress through
// logFn. Used by the migrate command.
func (s *Store) ApplyMigrations(logFn func(string)) (int, error) {
	runner := migration.NewRunner(s.db, migrationFS())
	return runner.Apply(logFn)
}

func migrationFS() fs.FS {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		panic(fmt.Sprintf("postgres migrations missing from embed: %v", err))
	}
	return subFS
}
