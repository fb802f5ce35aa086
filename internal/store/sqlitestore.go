package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"lifequest/finance-engine/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS finance_documents (
	user_key   TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLiteStore keeps one JSON document per user key in a sqlite table. It is
// a document store, not a row model: the engine always reads and writes the
// full state.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads and decodes the user's document.
func (s *SQLiteStore) Load(ctx context.Context, userKey string) (models.FinanceState, error) {
	var document string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM finance_documents WHERE user_key = ?`, userKey).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FinanceState{}, ErrNotFound
	}
	if err != nil {
		return models.FinanceState{}, fmt.Errorf("query finance document: %w", err)
	}

	var state models.FinanceState
	if err := json.Unmarshal([]byte(document), &state); err != nil {
		return models.FinanceState{}, fmt.Errorf("decode finance document: %w", err)
	}

	state.EnsureInitialized()
	log.WithField("user", userKey).Debug("Loaded finance document from sqlite")
	return state, nil
}

// Save upserts the full document for the user key.
func (s *SQLiteStore) Save(ctx context.Context, userKey string, state models.FinanceState) error {
	document, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode finance document: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO finance_documents (user_key, document, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_key) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		userKey, string(document), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write finance document: %w", err)
	}

	log.WithField("user", userKey).Debug("Saved finance document to sqlite")
	return nil
}

// UserKeys lists the user keys that have a stored document.
func (s *SQLiteStore) UserKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_key FROM finance_documents ORDER BY user_key`)
	if err != nil {
		return nil, fmt.Errorf("list user keys: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.WithError(err).Warn("Failed to close rows")
		}
	}()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan user key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
