package core

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/employee-desk/v2/internal/auth"
)

const DatabaseFileName = "employee_desk.db"

// Database is a small key/value store kept in a local sqlite file.
type Database struct {
	dbFile string
	conn   *sql.DB
}

func NewDatabase(dataDir string) (*Database, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return &Database{
		dbFile: filepath.Join(dataDir, DatabaseFileName),
	}, nil
}

func (db *Database) Connect() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", db.dbFile)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("database not responding: %w", err)
	}
	db.conn = conn

	return db.initDatabase()
}

func (db *Database) initDatabase() error {
	query := `
    CREATE TABLE IF NOT EXISTS kv (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at TEXT NOT NULL
    )`
	_, err := db.conn.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

// Get returns the value stored under key and whether it exists.
func (db *Database) Get(key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (db *Database) Set(key, value string) error {
	query := `
    INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
    ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := db.conn.Exec(query, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (db *Database) Delete(key string) error {
	_, err := db.conn.Exec("DELETE FROM kv WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (db *Database) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// DatabaseTokenStore keeps the bearer token in the sqlite key/value table.
type DatabaseTokenStore struct {
	db *Database
}

func NewDatabaseTokenStore(db *Database) *DatabaseTokenStore {
	return &DatabaseTokenStore{db: db}
}

func (s *DatabaseTokenStore) Token() (string, error) {
	token, _, err := s.db.Get(auth.TokenKey)
	return token, err
}

func (s *DatabaseTokenStore) SaveToken(token string) error {
	return s.db.Set(auth.TokenKey, token)
}

func (s *DatabaseTokenStore) ClearToken() error {
	return s.db.Delete(auth.TokenKey)
}

func (s *DatabaseTokenStore) Close() error {
	return s.db.Close()
}
