// Package session persists the client-side session: the bearer token the
// API client attaches to requests, and nothing else. It is the only
// durable state this program keeps.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrNoSession indicates that no token has been saved; requests go out
// unauthenticated and the server decides what to reject.
var ErrNoSession = errors.New("no saved session")

// Store is a SQLite-backed session store. It implements the TokenSource
// the API client consumes.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the session database location, honoring
// XDG_DATA_HOME and falling back to ~/.local/share.
func DefaultPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataDir, "tally", "session.db"), nil
}

// Open opens (creating if needed) the session database at path and brings
// the schema up to date.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("session path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping session database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveToken stores the bearer token for email, replacing any prior
// session. A single row holds the whole session.
func (s *Store) SaveToken(tok *oauth2.Token, email string) error {
	if tok == nil || tok.AccessToken == "" {
		return errors.New("token must not be empty")
	}

	var expiry any
	if !tok.Expiry.IsZero() {
		expiry = tok.Expiry.UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO session (id, access_token, token_type, email, expiry, logged_in_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			token_type = excluded.token_type,
			email = excluded.email,
			expiry = excluded.expiry,
			logged_in_at = excluded.logged_in_at`,
		tok.AccessToken, tok.TokenType, email, expiry, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Token returns the saved bearer token, or ErrNoSession when none exists.
// Satisfies the API client's TokenSource.
func (s *Store) Token() (*oauth2.Token, error) {
	var (
		tok       oauth2.Token
		tokenType sql.NullString
		expiry    sql.NullTime
	)

	err := s.db.QueryRow(
		`SELECT access_token, token_type, expiry FROM session WHERE id = 1`,
	).Scan(&tok.AccessToken, &tokenType, &expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	tok.TokenType = tokenType.String
	if tok.TokenType == "" {
		tok.TokenType = "Bearer"
	}
	if expiry.Valid {
		tok.Expiry = expiry.Time
	}

	return &tok, nil
}

// Email returns the email the saved session belongs to, or ErrNoSession.
func (s *Store) Email() (string, error) {
	var email sql.NullString
	err := s.db.QueryRow(`SELECT email FROM session WHERE id = 1`).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return email.String, nil
}

// Clear removes the saved session. Clearing an empty store is fine.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
