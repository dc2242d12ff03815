package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/inovacc/pplaces/internal/encoding"
	"github.com/inovacc/pplaces/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS repositories (
	position      INTEGER PRIMARY KEY,
	path          TEXT    NOT NULL UNIQUE,
	remotes       TEXT    NOT NULL,
	latest_commit TEXT
);
CREATE TABLE IF NOT EXISTS cache_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLite keeps the cache in a SQLite database, one row per repository.
type SQLite struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (or creates) the database at path and ensures the schema.
func NewSQLite(path string) (*SQLite, error) {
	if err := encoding.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db, path: path}, nil
}

func (s *SQLite) Read() (model.Cache, error) {
	var savedAt string

	err := s.db.QueryRow(`SELECT value FROM cache_meta WHERE key = 'saved_at'`).Scan(&savedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNoCache
	}

	if err != nil {
		return nil, fmt.Errorf("reading cache metadata: %w", err)
	}

	rows, err := s.db.Query(`SELECT path, remotes, latest_commit FROM repositories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying repositories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	c := model.Cache{}

	for rows.Next() {
		var (
			repo    model.Repository
			remotes string
			latest  sql.NullString
		)

		if err := rows.Scan(&repo.Path, &remotes, &latest); err != nil {
			return nil, fmt.Errorf("scanning repository: %w", err)
		}

		if err := json.Unmarshal([]byte(remotes), &repo.Remotes); err != nil {
			return nil, &CorruptError{Location: s.path + "#" + repo.Path, Err: err}
		}

		if latest.Valid {
			t, err := time.Parse(model.TimestampLayout, latest.String)
			if err != nil {
				return nil, &CorruptError{Location: s.path + "#" + repo.Path, Err: err}
			}

			ts := model.Timestamp(t)
			repo.LastCommit = &ts
		}

		c = append(c, repo)
	}

	return c, rows.Err()
}

func (s *SQLite) Write(c model.Cache) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM repositories`); err != nil {
		return fmt.Errorf("clearing repositories: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO repositories (position, path, remotes, latest_commit) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range c {
		remotes := c[i].Remotes
		if remotes == nil {
			remotes = []string{}
		}

		data, err := json.Marshal(remotes)
		if err != nil {
			return fmt.Errorf("encoding remotes of %s: %w", c[i].Path, err)
		}

		var latest sql.NullString
		if c[i].LastCommit != nil {
			latest = sql.NullString{String: c[i].LastCommit.Time().Format(model.TimestampLayout), Valid: true}
		}

		if _, err := stmt.Exec(i, c[i].Path, string(data), latest); err != nil {
			return fmt.Errorf("inserting %s: %w", c[i].Path, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO cache_meta (key, value) VALUES ('saved_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("updating cache metadata: %w", err)
	}

	return tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
