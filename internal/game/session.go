package game

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/generator"
	"github.com/robalobadob/wordgrid/internal/progress"
	"github.com/robalobadob/wordgrid/internal/words"
)

// Session errors.
var (
	ErrFinished      = errors.New("game finished")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrUnknownPlayer = errors.New("player not in game")
	ErrNoPlayers     = errors.New("game needs at least one player")
)

// New constructs a session from a generated setup. One player makes a solo
// game; more make a multiplayer match that rotates turns. Multiplayer
// sessions refill played tiles when refill is set.
func New(setup *generator.Setup, players []board.Player, refill bool) (*Session, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		LayoutID:  setup.LayoutID,
		Seed:      setup.Seed,
		Mode:      setup.Mode,
		Condition: setup.Condition,
		GameMode:  progress.Solo,
		Board:     setup.Board,
		Scores:    make(map[string]int, len(players)),
		TurnLimit: setup.Turns,
		TurnsLeft: progress.Unlimited,
		Outcome:   progress.Ongoing,
		History:   []Play{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.TurnLimit > 0 {
		s.TurnsLeft = s.TurnLimit
	}
	seen := map[string]bool{}
	for _, p := range players {
		if p.ID == "" || seen[p.ID] {
			return nil, ErrUnknownPlayer
		}
		seen[p.ID] = true
		s.Players = append(s.Players, p.WithColor())
		s.Scores[p.ID] = 0
	}
	if len(players) > 1 {
		// Matches run until someone reaches the objective.
		s.GameMode = progress.Multiplayer
		s.Refill = refill
		s.TurnLimit, s.TurnsLeft = 0, progress.Unlimited
	}
	s.Progress = progress.Evaluate(s.evalInput(s.Players[0].ID)).Progress
	return s, nil
}

// ApplyMove plays positions for playerID. A rejected word leaves the
// session untouched and does not consume a turn; the returned Result
// carries the reason.
func (s *Session) ApplyMove(dict *words.Dictionary, playerID string, ps []board.Position) (Result, error) {
	if s.Finished() {
		return Result{}, ErrFinished
	}
	idx := s.playerIndex(playerID)
	if idx < 0 {
		return Result{}, ErrUnknownPlayer
	}
	if s.GameMode == progress.Multiplayer && idx != s.Turn {
		return Result{}, ErrNotYourTurn
	}

	res, err := SubmitMove(dict, MoveInput{
		Board:     s.Board,
		Positions: ps,
		Mode:      s.Mode,
		Condition: s.Condition,
		Player:    s.Players[idx],
		Previous:  s.Previous,
		Score:     s.Scores[playerID],
		MovesMade: s.MovesMade,
		GameMode:  s.GameMode,
		TurnsLeft: s.TurnsLeft,
	})
	if err != nil || !res.Accepted {
		return res, err
	}

	s.Board = res.Board
	s.Scores[playerID] += res.Score
	s.MovesMade++
	s.TurnsLeft = res.TurnsLeft
	s.Previous = res.Primary
	s.Progress = res.Progress
	s.History = append(s.History, Play{
		PlayerID:  playerID,
		Word:      res.Word,
		Positions: append([]board.Position(nil), ps...),
		Score:     res.Score,
		Effects:   res.Effects,
		Clamped:   res.Clamped,
	})
	if res.Outcome != progress.Ongoing {
		s.Outcome = res.Outcome
		if res.Outcome == progress.Win {
			s.Winner = playerID
		}
	}

	if s.GameMode == progress.Multiplayer {
		if s.Refill && !s.Finished() {
			s.Board = generator.Refill(s.Board, ps, s.Seed+int64(s.MovesMade), s.trailing(playerID))
			res.Board = s.Board
		}
		s.Turn = (s.Turn + 1) % len(s.Players)
	}
	s.UpdatedAt = time.Now().UTC()
	return res, nil
}

// Current returns the player expected to move next.
func (s *Session) Current() board.Player { return s.Players[s.Turn] }

// HasPlayer reports whether id takes part in the session.
func (s *Session) HasPlayer(id string) bool { return s.playerIndex(id) >= 0 }

// RenamePlayer moves everything recorded for player from onto player to:
// seat, score, history, winner and owned tiles. Colours are kept. It reports
// false when from is absent or to already plays in the session.
func (s *Session) RenamePlayer(from, to string) bool {
	i := s.playerIndex(from)
	if i < 0 || to == "" || s.HasPlayer(to) {
		return false
	}
	s.Players[i].ID = to
	s.Scores[to] = s.Scores[from]
	delete(s.Scores, from)
	for j := range s.History {
		if s.History[j].PlayerID == from {
			s.History[j].PlayerID = to
		}
	}
	if s.Winner == from {
		s.Winner = to
	}
	s.Board.Each(func(t *board.Tile) {
		if t.OwnerID == from {
			t.OwnerID = to
		}
	})
	return true
}

func (s *Session) playerIndex(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// trailing reports whether id is strictly behind the best score.
func (s *Session) trailing(id string) bool {
	best := 0
	for _, v := range s.Scores {
		best = max(best, v)
	}
	return s.Scores[id] < best
}

func (s *Session) evalInput(playerID string) progress.Input {
	return progress.Input{
		Board:     s.Board,
		Mode:      s.Mode,
		Condition: s.Condition,
		Score:     s.Scores[playerID],
		MovesMade: s.MovesMade,
		GameMode:  s.GameMode,
		TurnsLeft: s.TurnsLeft,
		PlayerID:  playerID,
	}
}
