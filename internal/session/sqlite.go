package session

import (
	"context"
	"database/sql"
	"fmt"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS session_kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteStore is the device-local key-value store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the table if needed.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create session table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (string, string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM session_kv WHERE key IN (?, ?)`, KeyAccessToken, KeyUser)
	if err != nil {
		return "", "", err
	}
	defer rows.Close()

	var token, userJSON string
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return "", "", err
		}
		switch k {
		case KeyAccessToken:
			token = v
		case KeyUser:
			userJSON = v
		}
	}
	return token, userJSON, rows.Err()
}

func (s *SQLiteStore) Save(ctx context.Context, token, userJSON string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO session_kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.ExecContext(ctx, upsert, KeyAccessToken, token); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, upsert, KeyUser, userJSON); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session_kv WHERE key IN (?, ?)`, KeyAccessToken, KeyUser)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
