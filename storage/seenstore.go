// Package storage provides the optional cross-run seen-race store. Without
// it the dedup set lives only for one pipeline execution, so re-running the
// pipeline on the same day re-reports the same races.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"galop-watch/utils"

	_ "github.com/lib/pq"
)

// SeenStore persists (race URL, calendar day) pairs in Postgres.
type SeenStore struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewSeenStore connects, pings, and ensures the table exists.
func NewSeenStore(connStr string, logger *utils.Logger) (*SeenStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS seen_races (
		race_url  TEXT NOT NULL,
		race_date DATE NOT NULL,
		seen_at   TIMESTAMP NOT NULL DEFAULT NOW(),
		PRIMARY KEY (race_url, race_date)
	);`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	logger.Info("Connected to seen-race store")
	return &SeenStore{db: db, logger: logger}, nil
}

// MarkSeen records the race for the given day and reports whether it was
// new. A conflict means an earlier run already handled it.
func (s *SeenStore) MarkSeen(raceURL string, day time.Time) (bool, error) {
	res, err := s.db.Exec(`
		INSERT INTO seen_races (race_url, race_date)
		VALUES ($1, $2)
		ON CONFLICT (race_url, race_date) DO NOTHING
	`, raceURL, day.Format("2006-01-02"))
	if err != nil {
		return false, fmt.Errorf("failed to record race: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	return n > 0, nil
}

// Close closes the database connection.
func (s *SeenStore) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}
