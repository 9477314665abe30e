package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Entry is one (scope, key) row. Value holds the JSON document as-is.
type Entry struct {
	CreatedAt int `gorm:"autoCreateTime"`
	UpdatedAt int `gorm:"autoUpdateTime"`

	Scope string         `gorm:"primaryKey"`
	Key   string         `gorm:"primaryKey"`
	Value datatypes.JSON `gorm:"not null"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// GormStore is the SQLite backend.
type GormStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (and migrates) the SQLite database at path. Use
// ":memory:" for a throwaway database.
func NewSQLiteStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err = db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
	}
	return &GormStore{db: db}, nil
}

// entryKey uses a map condition so the empty global scope is not dropped the
// way zero fields of a struct condition are.
func entryKey(scope, key string) map[string]any {
	return map[string]any{"scope": scope, "key": key}
}

func (s *GormStore) Get(ctx context.Context, scope, key string) ([]byte, error) {
	var raw []byte
	row := s.db.WithContext(ctx).
		Model(&Entry{}).
		Select("value").
		Where(entryKey(scope, key)).
		Row()
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

func (s *GormStore) Set(ctx context.Context, scope, key string, value []byte) error {
	entry := Entry{
		Scope: scope,
		Key:   key,
		Value: datatypes.JSON(value),
	}
	return s.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		},
	).Create(&entry).Error
}

func (s *GormStore) Delete(ctx context.Context, scope, key string) error {
	return s.db.WithContext(ctx).
		Where(entryKey(scope, key)).
		Delete(&Entry{}).Error
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
