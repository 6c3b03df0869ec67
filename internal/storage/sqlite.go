// Package storage provides SQLite-based persistence for match results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for match persistence.
type Store struct {
	db *sql.DB
}

// MatchResult is a single finished match record.
type MatchResult struct {
	ID          int64
	MapName     string
	Strategy1   string
	Strategy2   string
	Winner      int // 1 or 2, 0 for a tie
	Reason      string
	Ticks       int
	Tanks1Alive int
	Tanks2Alive int
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			map_name TEXT NOT NULL,
			strategy1 TEXT NOT NULL,
			strategy2 TEXT NOT NULL,
			winner INTEGER NOT NULL,
			reason TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			tanks1_alive INTEGER NOT NULL DEFAULT 0,
			tanks2_alive INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_map ON matches(map_name);
		CREATE INDEX IF NOT EXISTS idx_matches_recent ON matches(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match. Returns the ID of the inserted row.
func (s *Store) SaveMatch(m MatchResult) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO matches
		 (map_name, strategy1, strategy2, winner, reason, ticks, tanks1_alive, tanks2_alive)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MapName, m.Strategy1, m.Strategy2, m.Winner, m.Reason, m.Ticks, m.Tanks1Alive, m.Tanks2Alive,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, map_name, strategy1, strategy2, winner, reason, ticks,
		        tanks1_alive, tanks2_alive, created_at
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		var m MatchResult
		var createdAt any
		if err := rows.Scan(
			&m.ID, &m.MapName, &m.Strategy1, &m.Strategy2, &m.Winner,
			&m.Reason, &m.Ticks, &m.Tanks1Alive, &m.Tanks2Alive, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.CreatedAt = parseTimestamp(createdAt)
		results = append(results, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// MapStats contains aggregated results for one map.
type MapStats struct {
	MapName string
	Matches int
	Wins1   int
	Wins2   int
	Ties    int
}

// StatsByMap retrieves win/tie counts grouped by map.
func (s *Store) StatsByMap() ([]MapStats, error) {
	rows, err := s.db.Query(
		`SELECT map_name,
		        COUNT(*),
		        SUM(CASE WHEN winner = 1 THEN 1 ELSE 0 END),
		        SUM(CASE WHEN winner = 2 THEN 1 ELSE 0 END),
		        SUM(CASE WHEN winner = 0 THEN 1 ELSE 0 END)
		 FROM matches
		 GROUP BY map_name
		 ORDER BY map_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	var stats []MapStats
	for rows.Next() {
		var st MapStats
		if err := rows.Scan(&st.MapName, &st.Matches, &st.Wins1, &st.Wins2, &st.Ties); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTimestamp handles the driver returning either time.Time or string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
