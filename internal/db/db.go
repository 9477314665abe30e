package db

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
)

func InitDB(dbURL string) (*sql.DB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("DB_URL is required for the mysql store")
	}

	db, err := sql.Open("mysql", dbURL)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database is not responding: %w", err)
	}

	log.Println("Connected to database")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS kv_entries (
			scope VARCHAR(64) NOT NULL,
			k VARCHAR(128) NOT NULL,
			v JSON NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (scope, k)
		);`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	log.Println("Migrations completed")
	return nil
}
