// internal/store/sqlite.go
//
// SQLite helpers and the SQLite-backed Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Persisting sessions as JSON in games, with one game_players row per
//     player for listings.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/assets"
	"github.com/robalobadob/wordgrid/internal/game"
)

// OpenSQLite opens (and creates if missing) a SQLite database file and
// applies the embedded migrations.
func OpenSQLite(dsn string) (*sql.DB, error) {
	if dir := filepath.Dir(dsn); dsn != ":memory:" && dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := Migrate(db, assets.Migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies every *.sql file in fsys in lexical order, skipping those
// already recorded in _migrations. Scripts that manage their own transaction
// or foreign-key pragma run outside the per-file transaction.
func Migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		b, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		text := string(b)
		upper := strings.ToUpper(text)
		selfManaged := strings.Contains(upper, "BEGIN TRANSACTION") ||
			strings.Contains(upper, "PRAGMA FOREIGN_KEYS=OFF") ||
			strings.Contains(upper, "PRAGMA FOREIGN_KEYS = OFF")

		if selfManaged {
			if _, err := db.Exec(text); err != nil {
				return fmt.Errorf("apply %s: %w", f, err)
			}
			if _, err := db.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
				return fmt.Errorf("record %s: %w", f, err)
			}
			log.Info().Str("migration", f).Msg("applied (self-managed)")
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(text); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// timeLayout is fixed-width so timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite is a Store over a migrated database. Moves are serialized per game
// inside this process; SQLite has a single writer anyway.
type SQLite struct {
	db     *sql.DB
	locker *keyedMutex
}

// NewSQLite wraps an open, migrated database.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, locker: newKeyedMutex()}
}

func (s *SQLite) Save(ctx context.Context, g *game.Session) error {
	data, err := encode(g)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO games (id, mode, outcome, moves_made, state, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            outcome=excluded.outcome, moves_made=excluded.moves_made,
            state=excluded.state, updated_at=excluded.updated_at`,
		g.ID, string(g.Mode), string(g.Outcome), g.MovesMade, string(data),
		g.CreatedAt.UTC().Format(timeLayout), g.UpdatedAt.UTC().Format(timeLayout),
	); err != nil {
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM game_players WHERE game_id=?`, g.ID); err != nil {
		return fmt.Errorf("save players %s: %w", g.ID, err)
	}
	for _, p := range g.Players {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO game_players (game_id, player_id, score) VALUES (?, ?, ?)
            ON CONFLICT(game_id, player_id) DO UPDATE SET score=excluded.score`,
			g.ID, p.ID, g.Scores[p.ID],
		); err != nil {
			return fmt.Errorf("save player %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) Get(ctx context.Context, id string) (*game.Session, error) {
	var state string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM games WHERE id=?`, id).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode([]byte(state))
}

func (s *SQLite) List(ctx context.Context, playerID string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT g.id, g.mode, g.outcome, g.moves_made, p.score, g.updated_at
        FROM games g JOIN game_players p ON p.game_id = g.id
        WHERE p.player_id=?
        ORDER BY g.updated_at DESC
        LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		var updated string
		if err := rows.Scan(&sm.ID, &sm.Mode, &sm.Outcome, &sm.MovesMade, &sm.Score, &updated); err != nil {
			return nil, err
		}
		sm.UpdatedAt, _ = time.Parse(timeLayout, updated)
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (s *SQLite) Lock(ctx context.Context, id string) (UnlockFunc, error) {
	return s.locker.lock(ctx, id)
}

// Close is a no-op: the database handle is shared and owned by the caller.
func (s *SQLite) Close() error { return nil }
