package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound indicates a lookup matched no row.
var ErrNotFound = errors.New("not found")

// Querier abstracts *sql.DB and *sql.Tx so store methods work in both contexts.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store wraps a SQLite connection holding repositories, classes, functions
// and call-dependency edges.
type Store struct {
	db     *sql.DB
	q      Querier // active querier: db or tx
	dbPath string
}

// cacheDir returns the default directory for databases.
func cacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	dir := filepath.Join(home, ".cache", "autocontain")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir cache: %w", err)
	}
	return dir, nil
}

// Open opens or creates the default SQLite database.
func Open() (*Store, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return OpenPath(filepath.Join(dir, "autocontain.db"))
}

// OpenPath opens a SQLite database at the given path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &Store{db: db, dbPath: dbPath}
	s.q = s.db
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory SQLite database (for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	s := &Store{db: db, dbPath: ":memory:"}
	s.q = s.db
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// WithTransaction executes fn within a single SQLite transaction.
// The callback receives a transaction-scoped Store; the receiver's q field
// is never mutated, so callers holding the original Store are unaffected.
func (s *Store) WithTransaction(ctx context.Context, fn func(txStore *Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	txStore := &Store{db: s.db, q: tx, dbPath: s.dbPath}
	if err := fn(txStore); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying sql.DB (for advanced queries).
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS repositories (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT
	);

	CREATE TABLE IF NOT EXISTS classes (
		id INTEGER PRIMARY KEY,
		repo_id INTEGER,
		name TEXT NOT NULL,
		attributes TEXT,
		file_location TEXT,
		start_line INTEGER,
		end_line INTEGER,
		docstring TEXT,
		FOREIGN KEY(repo_id) REFERENCES repositories(id)
	);

	CREATE INDEX IF NOT EXISTS idx_classes_repo ON classes(repo_id);
	CREATE INDEX IF NOT EXISTS idx_classes_name ON classes(repo_id, name);

	CREATE TABLE IF NOT EXISTS functions (
		id INTEGER PRIMARY KEY,
		repo_id INTEGER,
		class_id INTEGER,
		name TEXT NOT NULL,
		parameters TEXT,
		return_type TEXT,
		file_location TEXT,
		start_line INTEGER,
		end_line INTEGER,
		docstring TEXT,
		FOREIGN KEY(repo_id) REFERENCES repositories(id),
		FOREIGN KEY(class_id) REFERENCES classes(id)
	);

	CREATE INDEX IF NOT EXISTS idx_functions_repo ON functions(repo_id);
	CREATE INDEX IF NOT EXISTS idx_functions_name ON functions(name, class_id);

	CREATE TABLE IF NOT EXISTS function_dependencies (
		function_name TEXT NOT NULL,
		dependency TEXT NOT NULL,
		class_id INTEGER,
		FOREIGN KEY(class_id) REFERENCES classes(id)
	);

	CREATE INDEX IF NOT EXISTS idx_deps_caller ON function_dependencies(function_name, class_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// nullString maps "" to SQL NULL so optional text columns stay NULL-clean.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullID maps a nil id pointer to SQL NULL.
func nullID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
