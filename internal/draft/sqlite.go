package draft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps drafts in a local SQLite file. It backs the eventctl
// command line tool.
type SQLiteStore struct {
	db *sql.DB
}

// DefaultSQLitePath returns ~/.config/courtside/drafts.db.
func DefaultSQLitePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "courtside", "drafts.db"), nil
}

// OpenSQLite opens (creating if needed) the draft database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create draft dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	createTable := `
CREATE TABLE IF NOT EXISTS drafts (
  scope TEXT NOT NULL,
  name TEXT NOT NULL,
  data TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  PRIMARY KEY (scope, name)
);`

	if _, err := db.Exec(createTable); err != nil {
		return fmt.Errorf("create drafts table: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context, key Key) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM drafts WHERE scope = ? AND name = ?", key.Scope, key.Name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

func (s *SQLiteStore) Save(ctx context.Context, key Key, data []byte) error {
	query := `
INSERT INTO drafts (scope, name, data, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(scope, name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at;`

	_, err := s.db.ExecContext(ctx, query, key.Scope, key.Name, string(data), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) Delete(ctx context.Context, key Key) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE scope = ? AND name = ?", key.Scope, key.Name)
	return err
}

// List returns the draft names stored for scope, most recently saved first.
func (s *SQLiteStore) List(ctx context.Context, scope string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM drafts WHERE scope = ? ORDER BY updated_at DESC, name", scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
