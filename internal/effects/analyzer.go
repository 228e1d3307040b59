package effects

import (
	"sort"
	"strings"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/progress"
	"github.com/robalobadob/wordgrid/internal/words"
)

// Move is the analyzer input: an accepted word and the board it was played on.
type Move struct {
	Word      string
	Positions []board.Position
	Board     *board.Board
	Mode      progress.Mode
	Previous  *Effect // primary effect of the previous move, if any
}

// Analysis is the ordered effect list plus the move's own length-tier effect.
type Analysis struct {
	Effects []Effect
	Primary Effect
}

// Reveal counts per tier for hidden_phrase.
var revealCounts = map[Tier]int{TierMinor: 1, TierModerate: 3, TierMajor: 8}

// LengthTier maps word length to severity.
func LengthTier(n int) Tier {
	switch {
	case n >= 7:
		return TierMajor
	case n >= 5:
		return TierModerate
	default:
		return TierMinor
	}
}

// Analyze derives the effects of m. Order: rare-letter break, length-tier
// effect, palindrome, all-vowel, category, repeated-letter duplicate. Only
// the first major effect survives; later majors become no-ops. A rare letter
// doubles the length and category effects; only those are marked Amplified.
func Analyze(m Move) Analysis {
	word := strings.ToUpper(m.Word)
	rare := hasRare(word)
	amp := 1
	if rare {
		amp = 2
	}

	var out []Effect
	if rare {
		if t := nearest(m.Board, m.Positions, 1, board.Tile.Locked); len(t) > 0 {
			out = append(out, Effect{Kind: KindBreak, Tier: TierMinor, Trigger: TriggerRare, Targets: t})
		}
	}

	primary := lengthEffect(m, LengthTier(len(word)), amp)
	out = append(out, primary)

	if isPalindrome(word) {
		r := bounds(m.Positions)
		out = append(out, Effect{Kind: KindReverse, Tier: TierModerate, Trigger: TriggerPalindrome, Region: &r})
	}
	if allVowels(word) {
		out = append(out, Effect{Kind: KindReveal, Tier: TierModerate, Trigger: TriggerVowels,
			Targets: nearest(m.Board, m.Positions, -1, fogged)})
	}
	if e, ok := categoryEffect(m, word, amp); ok {
		out = append(out, e)
	}
	if repeated(word) && m.Previous != nil && !m.Previous.Duplicate && m.Previous.Kind != KindNoop {
		dup := m.Previous.Clone()
		dup.Duplicate = true
		dup.Trigger = TriggerRepeat
		out = append(out, dup)
	}

	seenMajor := false
	for i := range out {
		if !out[i].Major() {
			continue
		}
		if seenMajor {
			out[i] = noop(out[i])
		}
		seenMajor = true
	}
	return Analysis{Effects: out, Primary: out[primaryIndex(out)]}
}

func primaryIndex(es []Effect) int {
	for i, e := range es {
		if e.Trigger == TriggerLength {
			return i
		}
	}
	return 0
}

// lengthEffect picks the move's own effect from its tier and the puzzle mode.
func lengthEffect(m Move, tier Tier, amp int) Effect {
	e := Effect{Tier: tier, Trigger: TriggerLength, Amplified: amp > 1}
	n := m.Board.Size
	switch m.Mode {
	case progress.VaultBreak:
		vault := func(t board.Tile) bool { return t.Vault() && t.Locked() }
		switch tier {
		case TierMajor:
			e.Kind, e.Targets = KindBreak, nearest(m.Board, m.Positions, amp, vault)
		case TierModerate:
			e.Kind, e.Amount, e.Targets = KindWeaken, 2*amp, nearest(m.Board, m.Positions, 1, vault)
		default:
			e.Kind, e.Amount, e.Targets = KindWeaken, amp, nearest(m.Board, m.Positions, 1, vault)
		}
	case progress.HiddenPhrase:
		e.Kind = KindReveal
		e.Targets = nearest(m.Board, m.Positions, revealCounts[tier]*amp, fogged)
	case progress.TerritoryControl:
		e.Kind = KindClaim
		grow := map[Tier]int{TierMinor: 0, TierModerate: 1, TierMajor: 2}[tier] + amp - 1
		e.Targets = claimable(m.Board, bounds(m.Positions).Grow(grow, n), m.Positions, grow == 0)
	default:
		switch tier {
		case TierMajor:
			r := section(centre(m.Positions), n)
			e.Kind, e.Region, e.Amount = KindRotate, &r, amp
		case TierModerate:
			e.Kind, e.Amount = KindWeaken, 2*amp
			e.Targets = nearest(m.Board, m.Positions, 1, board.Tile.Locked)
		default:
			e.Kind, e.Direction, e.Line, e.Amount = KindShift, board.East, m.Positions[0].Row, amp
		}
	}
	return e
}

// categoryEffect maps action, emotion and direction words to effects.
func categoryEffect(m Move, word string, amp int) (Effect, bool) {
	first := m.Positions[0]
	e := Effect{Tier: TierModerate, Trigger: TriggerCategory, Amplified: amp > 1}
	switch words.Classify(word) {
	case words.CategoryDirection:
		d, _ := words.DirectionOf(word)
		e.Kind, e.Direction, e.Amount = KindShift, d, amp
		e.Line = first.Row
		if d.Vertical() {
			e.Line = first.Col
		}
	case words.CategoryAction:
		r := section(first, m.Board.Size)
		e.Kind, e.Region, e.Amount = KindRotate, &r, amp
	case words.CategoryEmotion:
		e.Kind = KindClaim
		e.Targets = claimable(m.Board, bounds(m.Positions).Grow(amp-1, m.Board.Size), m.Positions, amp == 1)
	default:
		return Effect{}, false
	}
	return e, true
}

func fogged(t board.Tile) bool { return t.Fogged }

// nearest returns up to k tiles (all when k < 0) matching pred, ordered by
// Chebyshev distance to the closest selected position, then row-major.
func nearest(b *board.Board, ps []board.Position, k int, pred func(board.Tile) bool) []board.Position {
	type cand struct {
		p board.Position
		d int
	}
	var cs []cand
	for _, row := range b.Tiles {
		for _, t := range row {
			if !pred(t) {
				continue
			}
			d := -1
			for _, p := range ps {
				if x := board.Distance(p, t.Pos()); d < 0 || x < d {
					d = x
				}
			}
			cs = append(cs, cand{t.Pos(), d})
		}
	}
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].d < cs[j].d })
	if k >= 0 && len(cs) > k {
		cs = cs[:k]
	}
	out := make([]board.Position, len(cs))
	for i, c := range cs {
		out[i] = c.p
	}
	return out
}

// claimable lists claimable tiles in r, or only the selected ones when
// selectedOnly is set.
func claimable(b *board.Board, r Rect, ps []board.Position, selectedOnly bool) []board.Position {
	cells := r.Positions()
	if selectedOnly {
		cells = ps
	}
	var out []board.Position
	for _, p := range cells {
		if b.At(p).Claimable() {
			out = append(out, p)
		}
	}
	return out
}

// bounds is the bounding box of ps.
func bounds(ps []board.Position) Rect {
	r := Rect{Top: ps[0].Row, Left: ps[0].Col, Bottom: ps[0].Row, Right: ps[0].Col}
	for _, p := range ps[1:] {
		r.Top, r.Bottom = min(r.Top, p.Row), max(r.Bottom, p.Row)
		r.Left, r.Right = min(r.Left, p.Col), max(r.Right, p.Col)
	}
	return r
}

func centre(ps []board.Position) board.Position {
	r := bounds(ps)
	return board.Position{Row: (r.Top + r.Bottom) / 2, Col: (r.Left + r.Right) / 2}
}

// section is the 3×3 square around p, slid inside an n×n board.
func section(p board.Position, n int) Rect {
	k := min(3, n)
	top := min(max(p.Row-1, 0), n-k)
	left := min(max(p.Col-1, 0), n-k)
	return Rect{Top: top, Left: left, Bottom: top + k - 1, Right: left + k - 1}
}

func hasRare(w string) bool { return strings.ContainsAny(w, "QZXJ") }

func isPalindrome(w string) bool {
	for i, j := 0, len(w)-1; i < j; i, j = i+1, j-1 {
		if w[i] != w[j] {
			return false
		}
	}
	return len(w) > 0
}

func allVowels(w string) bool {
	for _, r := range w {
		if !board.IsVowel(r) {
			return false
		}
	}
	return len(w) > 0
}

func repeated(w string) bool {
	var seen [256]bool
	for i := 0; i < len(w); i++ {
		if seen[w[i]] {
			return true
		}
		seen[w[i]] = true
	}
	return false
}
