package transcript

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"LocalChat/internal/memory"
)

// Entry is one recorded turn of the current run.
type Entry struct {
	ID        int64
	SessionID string
	User      string
	Bot       string
	CreatedAt time.Time
}

// Store logs every completed turn of the current process run in an
// in-memory sqlite database. Nothing survives process exit.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates the in-memory database and its schema.
func Open(logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: gets its own database; pin the pool to one.
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		user_msg TEXT,
		bot_msg TEXT,
		created_at DATETIME
	);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create turns table: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Record appends a completed turn to the log.
func (s *Store) Record(sessionID string, t memory.Turn) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO turns (session_id, user_msg, bot_msg, created_at) VALUES (?, ?, ?, ?)",
		sessionID, t.User, t.Bot, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record turn: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debug("turn recorded", "session_id", sessionID)
	return nil
}

// Recent returns the newest n entries, ordered oldest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		"SELECT id, session_id, user_msg, bot_msg, created_at FROM turns ORDER BY id DESC LIMIT ?",
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load turns: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.User, &e.Bot, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate turns: %w", err)
	}

	// Reverse into chronological order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Count reports the number of turns recorded this run.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM turns").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return n, nil
}

// Close releases the database. All recorded turns are discarded.
func (s *Store) Close() error {
	return s.db.Close()
}
