package store

import (
	"context"
	"database/sql"
	"errors"
)

// MySQLStore keeps entries in the kv_entries table created by db.RunMigrations.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) Get(ctx context.Context, scope, key string) ([]byte, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, "SELECT v FROM kv_entries WHERE scope = ? AND k = ?", scope, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *MySQLStore) Set(ctx context.Context, scope, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO kv_entries (scope, k, v) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)",
		scope, key, value,
	)
	return err
}

func (s *MySQLStore) Delete(ctx context.Context, scope, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE scope = ? AND k = ?", scope, key)
	return err
}

func (s *MySQLStore) Close() error {
	return s.db.Close()
}
