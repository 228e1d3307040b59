// internal/daily/daily.go
//
// Daily challenge: one procedural board per UTC day, shared by every player.
// The board seed is HMAC(salt, YYYY-MM-DD), so the puzzle cannot be guessed
// ahead of time without the salt but every server instance agrees on it.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/robalobadob/wordgrid/internal/generator"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns the deterministic board seed for a date.
func Seed(date time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// top bit cleared so the seed is non-negative
	return int64(binary.BigEndian.Uint64(sum[:8]) >> 1)
}

// Puzzle is the daily board definition.
type Puzzle struct {
	Date  string `json:"date"`
	Seed  int64  `json:"seed"`
	Size  int    `json:"size"`
	Turns int    `json:"turns"`
}

// For returns the puzzle for date.
func For(date time.Time, salt string, size, turns int) Puzzle {
	return Puzzle{Date: DateKey(date), Seed: Seed(date, salt), Size: size, Turns: turns}
}

// Setup builds the playable board for p.
func (p Puzzle) Setup(g *generator.Generator) (*generator.Setup, error) {
	s, err := g.Build(generator.Procedural{Size: p.Size, Seed: p.Seed})
	if err != nil {
		return nil, fmt.Errorf("daily %s: %w", p.Date, err)
	}
	s.Turns = p.Turns
	s.Difficulty = "daily"
	s.Tags = []string{"daily", p.Date}
	return s, nil
}
