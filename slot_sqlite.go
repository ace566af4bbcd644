package wallet

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultSlotKey is the key under which the wallet is stored in key-value slots.
const DefaultSlotKey = "cryptoWallet"

const slotSchema = `
CREATE TABLE IF NOT EXISTS slots (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);`

// SQLiteSlot stores the document as a row of a key-value table in a SQLite
// database, so that several wallets can share one database file.
type SQLiteSlot struct {
	db  *sql.DB
	key string
}

// NewSQLiteSlot opens (and creates if needed) the database at path.
func NewSQLiteSlot(path, key string) (*SQLiteSlot, error) {
	if key == "" {
		key = DefaultSlotKey
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(slotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create schema in %q: %w", path, err)
	}
	return &SQLiteSlot{db: db, key: key}, nil
}

func (s *SQLiteSlot) Read() ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, s.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("slot %q: %w", s.key, fs.ErrNotExist)
	}
	return data, err
}

func (s *SQLiteSlot) Write(data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO slots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		s.key, data,
	)
	return err
}

func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
