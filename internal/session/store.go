// Package session persists the drive API's session cookies between runs, so
// a login survives restarting the client. Cookies are stored per API host in
// a local SQLite database.
package session

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the session database at dbPath and brings
// its schema up to date.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping session database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// storedCookie is the subset of http.Cookie worth keeping across runs.
type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"http_only,omitempty"`
}

// Save upserts the cookies for host. Saving an empty set clears the host's
// session.
func (s *Store) Save(host string, cookies []*http.Cookie) error {
	if len(cookies) == 0 {
		return s.Clear(host)
	}

	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		})
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode cookies: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO sessions (host, cookies, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(host) DO UPDATE SET
			cookies    = excluded.cookies,
			updated_at = excluded.updated_at
	`, host, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the stored cookies for host, dropping any that have expired.
// A host with no session yields nil, nil.
func (s *Store) Load(host string) ([]*http.Cookie, error) {
	var payload string
	err := s.db.QueryRow(`SELECT cookies FROM sessions WHERE host = ?`, host).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var stored []storedCookie
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode cookies: %w", err)
	}

	now := time.Now()
	var cookies []*http.Cookie
	for _, c := range stored {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		})
	}
	return cookies, nil
}

// Clear forgets the session for host.
func (s *Store) Clear(host string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE host = ?`, host); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
