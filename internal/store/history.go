package store

import (
	"time"

	"github.com/mseguy/aidesk/internal/domain"
	"github.com/mseguy/aidesk/internal/logging"
)

// HistoryStore is the SQLite-backed conversation history. Failures are
// logged and swallowed: a broken history store must never take a chat
// request down with it.
type HistoryStore struct {
	db  *DB
	log *logging.Logger
}

// NewHistoryStore creates a history store on an open database.
func NewHistoryStore(db *DB, log *logging.Logger) *HistoryStore {
	return &HistoryStore{db: db, log: log.Sub("history")}
}

// History returns the stored turns for a session in insertion order.
func (s *HistoryStore) History(sessionID string) []domain.Turn {
	rows, err := s.db.sql.Query(
		"SELECT role, content FROM turns WHERE session_id = ? ORDER BY id", sessionID,
	)
	if err != nil {
		s.log.Error().Err(err).Str("session", sessionID).Msg("loading history failed")
		return nil
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var t domain.Turn
		if err := rows.Scan(&t.Role, &t.Content); err != nil {
			s.log.Error().Err(err).Str("session", sessionID).Msg("scanning turn failed")
			return nil
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		s.log.Error().Err(err).Str("session", sessionID).Msg("iterating history failed")
		return nil
	}
	return turns
}

// Append adds turns to the end of a session's history.
func (s *HistoryStore) Append(sessionID string, turns ...domain.Turn) {
	if len(turns) == 0 {
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.sql.Begin()
	if err != nil {
		s.log.Error().Err(err).Str("session", sessionID).Msg("begin append failed")
		return
	}

	if _, err := tx.Exec(`
		INSERT INTO sessions (id, created_at, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at
	`, sessionID, now, now); err != nil {
		tx.Rollback()
		s.log.Error().Err(err).Str("session", sessionID).Msg("upserting session failed")
		return
	}

	for _, t := range turns {
		if _, err := tx.Exec(
			"INSERT INTO turns (session_id, role, content, created_at) VALUES (?, ?, ?, ?)",
			sessionID, string(t.Role), t.Content, now,
		); err != nil {
			tx.Rollback()
			s.log.Error().Err(err).Str("session", sessionID).Msg("inserting turn failed")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		s.log.Error().Err(err).Str("session", sessionID).Msg("commit append failed")
	}
}

// Trim drops the oldest turns beyond max.
func (s *HistoryStore) Trim(sessionID string, max int) {
	if _, err := s.db.sql.Exec(`
		DELETE FROM turns WHERE session_id = ? AND id NOT IN (
			SELECT id FROM turns WHERE session_id = ? ORDER BY id DESC LIMIT ?
		)
	`, sessionID, sessionID, max); err != nil {
		s.log.Error().Err(err).Str("session", sessionID).Msg("trimming history failed")
	}
}

// Reset clears a session's history.
func (s *HistoryStore) Reset(sessionID string) {
	if _, err := s.db.sql.Exec("DELETE FROM sessions WHERE id = ?", sessionID); err != nil {
		s.log.Error().Err(err).Str("session", sessionID).Msg("resetting session failed")
	}
}
