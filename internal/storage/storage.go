package storage

import (
	"net/url"
	"os"
	"strings"

	"github.com/emberhabits/ember/internal/keyring"
	"github.com/emberhabits/ember/internal/storage/postgres"
	"github.com/emberhabits/ember/internal/storage/sqlite"
)

// ConnectionEnvVar overrides the connection string when set, taking
// precedence over the OS keyring.
const ConnectionEnvVar = "EMBER_DB_CONNECTION"

// NewSQLiteStore creates a SQLite-backed provider at the given file path.
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(path)
}

// NewPostgresStore creates a PostgreSQL-backed provider for the given
// connection string.
func NewPostgresStore(connStr string) Provider {
	return postgres.NewStore(connStr)
}

// IsPostgresURL reports whether the config value looks like a PostgreSQL
// connection string rather than a file path.
func IsPostgresURL(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password inline. Those are rejected; credentials belong in the keyring,
// the environment, or .pgpass.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

// ResolveConnectionString picks the effective PostgreSQL connection string:
// environment first, then OS keyring, then the bare config value.
func ResolveConnectionString(config string) string {
	if env := os.Getenv(ConnectionEnvVar); env != "" {
		return env
	}
	if stored, err := keyring.GetConnectionString(); err == nil && stored != "" {
		return stored
	}
	return config
}
