// Package history records presented decks in a local SQLite database
// so decker can resume a deck at the slide it was left on and list
// recently presented decks.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"decker/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	deck_path   TEXT NOT NULL UNIQUE,
	title       TEXT NOT NULL DEFAULT '',
	last_slide  INTEGER NOT NULL DEFAULT 0,
	slide_count INTEGER NOT NULL DEFAULT 0,
	started_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at DESC);
`

// Session is one row of presentation history.
type Session struct {
	ID         string
	DeckPath   string
	Title      string
	LastSlide  int
	SlideCount int
	StartedAt  time.Time
	UpdatedAt  time.Time
}

// Store persists sessions in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// modernc's driver serializes writes itself; a single connection
	// avoids SQLITE_BUSY under the presenter's write pattern.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	logging.History("opened history db at %s", path)
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record upserts the session for a deck path, keyed by absolute path.
func (s *Store) Record(deckPath, title string, lastSlide, slideCount int) error {
	abs, err := filepath.Abs(deckPath)
	if err != nil {
		return fmt.Errorf("resolve deck path: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(`
		INSERT INTO sessions (id, deck_path, title, last_slide, slide_count, started_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(deck_path) DO UPDATE SET
			title = excluded.title,
			last_slide = excluded.last_slide,
			slide_count = excluded.slide_count,
			updated_at = excluded.updated_at`,
		uuid.NewString(), abs, title, lastSlide, slideCount, now, now)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}

	logging.History("recorded %s at slide %d/%d", abs, lastSlide+1, slideCount)
	return nil
}

// Resume returns the stored slide index for a deck, clamped to
// slideCount in case the deck shrank since it was last presented.
// Returns 0 when the deck has no history.
func (s *Store) Resume(deckPath string, slideCount int) (int, error) {
	abs, err := filepath.Abs(deckPath)
	if err != nil {
		return 0, fmt.Errorf("resolve deck path: %w", err)
	}

	var last int
	err = s.db.QueryRow(`SELECT last_slide FROM sessions WHERE deck_path = ?`, abs).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query session: %w", err)
	}

	if last >= slideCount {
		last = slideCount - 1
	}
	if last < 0 {
		last = 0
	}
	return last, nil
}

// Recent returns up to n sessions, most recently presented first.
func (s *Store) Recent(n int) ([]Session, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := s.db.Query(`
		SELECT id, deck_path, title, last_slide, slide_count, started_at, updated_at
		FROM sessions ORDER BY updated_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.DeckPath, &sess.Title, &sess.LastSlide,
			&sess.SlideCount, &sess.StartedAt, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Forget removes a deck's history, for decks deleted from disk.
func (s *Store) Forget(deckPath string) error {
	abs, err := filepath.Abs(deckPath)
	if err != nil {
		return fmt.Errorf("resolve deck path: %w", err)
	}
	_, err = s.db.Exec(`DELETE FROM sessions WHERE deck_path = ?`, abs)
	return err
}
