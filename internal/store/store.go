// Package store persists uploaded graph records for the local sink.
// It tracks nodes and edges keyed by generator-assigned ids so that
// replayed uploads land as idempotent upserts.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver (pure Go)
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// DefaultLimit is the default limit of items to return from list queries.
const DefaultLimit = 1000

// Store persists graph records using database/sql.
type Store struct {
	db     *sql.DB
	driver string
}

// Open opens a connection for the given driver and DSN. Use driver
// "sqlite" with ":memory:" for an in-memory database. The schema is
// not created here; call Migrate before first use.
func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	if driver == DriverSQLite && !strings.Contains(dsn, ":memory:") {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// A single connection avoids "database is locked" errors and
		// keeps ":memory:" pointing at one database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Driver reports which driver the store was opened with.
func (s *Store) Driver() string {
	return s.driver
}

// Query narrows list operations.
type Query struct {
	// Label filters to one label when non-empty.
	Label string
	// Limit is the max number of items to return. DefaultLimit when zero.
	Limit int
}

func (q Query) limit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}

// rebind rewrites ? placeholders to the $n form PostgreSQL expects.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
