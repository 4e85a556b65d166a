// Package sqlite is the default storage backend: a single-file database
// under the config dir, schema managed by embedded migrations.
package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/emberhabits/ember/internal/migration"
	"github.com/emberhabits/ember/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'ember init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, s.migrationFS())
	return runner.ValidateVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return filepath.Dir(s.path)
}

// GetDB exposes the handle for diagnostics and tests.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

func (s *Store) migrationFS() fs.FS {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		// The sub-directory is embedded at build time; failure here means a
		// broken build.
		panic(fmt.Sprintf("sqlite migrations missing from embed: %v", err))
	}
	return subFS
}

func (s *Store) runMigrations() error {
	runner := migration.NewRunner(s.db, s.migrationFS())
	_, err := runner.Apply(nil)
	return err
}

// ApplyMigrations applies pending migrations, reporting progress through
// logFn. Used by the migrate command.
func (s *Store) ApplyMigrations(logFn func(string)) (int, error) {
	runner := migration.NewRunner(s.db, s.migrationFS())
	return runner.Apply(logFn)
}
