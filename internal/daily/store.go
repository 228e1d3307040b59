package daily

import (
	"context"
	"database/sql"
	"errors"
)

// Result is one player's finished daily attempt.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Seed      int64  `json:"seed"`
	Score     int    `json:"score"`
	Moves     int    `json:"moves"`
	Outcome   string `json:"outcome"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Store persists daily results and in-flight daily games in SQLite.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID has a finished result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a finished attempt. A second result for the same
// user and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, seed, score, moves, outcome, elapsed_ms)
		VALUES(?,?,?,?,?,?,?)`, r.UserID, r.Date, r.Seed, r.Score, r.Moves, r.Outcome, r.ElapsedMs,
	)
	return err
}

// GameFor returns the game id bound to userID for date, or "" when none.
func (s *Store) GameFor(ctx context.Context, userID, date string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT game_id FROM daily_sessions WHERE user_id=? AND date=?", userID, date,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return id, err
}

// BindGame records gameID as userID's daily game for date. The first
// binding wins; the bound id is returned.
func (s *Store) BindGame(ctx context.Context, userID, date, gameID string) (string, error) {
	if _, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO daily_sessions(user_id, date, game_id) VALUES(?,?,?)",
		userID, date, gameID,
	); err != nil {
		return "", err
	}
	return s.GameFor(ctx, userID, date)
}

// Rebind replaces userID's daily game for date.
func (s *Store) Rebind(ctx context.Context, userID, date, gameID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE daily_sessions SET game_id=? WHERE user_id=? AND date=?",
		gameID, userID, date,
	)
	return err
}

// Claim moves from's bindings and results onto to. Days to already has an
// entry for keep to's entry.
func (s *Store) Claim(ctx context.Context, from, to string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, q := range []string{
		"UPDATE OR IGNORE daily_sessions SET user_id=? WHERE user_id=?",
		"UPDATE OR IGNORE daily_results SET user_id=? WHERE user_id=?",
	} {
		if _, err := tx.ExecContext(ctx, q, to, from); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID    string `json:"userId"`
	Score     int    `json:"score"`
	Moves     int    `json:"moves"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Leaderboard returns wins for date: fewest moves first, then highest score,
// then fastest.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, score, moves, elapsed_ms
		FROM daily_results
		WHERE date=? AND outcome='win'
		ORDER BY moves ASC, score DESC, elapsed_ms ASC, created_at ASC
		LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Score, &r.Moves, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
