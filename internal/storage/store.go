// Package storage is the durable, transactional layer backing the jobs
// and dlq tables.
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the single-file embedded relational engine backing the queue.
type Store struct {
	Db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id text primary key,
	command text not null,
	state text not null,
	attempts integer not null default 0,
	run_at datetime not null,
	created_at datetime not null,
	updated_at datetime not null
);

CREATE TABLE IF NOT EXISTS dlq (
	id text primary key,
	command text not null,
	attempts integer not null,
	failed_at datetime not null,
	last_error text
);
`

// NewStore opens (creating if absent) the SQLite file at dbPath in WAL mode
// and ensures the schema exists.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=2000")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping store: %w", err)
	}

	store := &Store{Db: db}
	if err := store.init(); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *Store) init() error {
	_, err := s.Db.Exec(schema)
	return err
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.Db.Close()
}
