// Package effects derives board-altering effects from a word and applies
// them to a board.
//
// The analyzer (Analyze) is pure: it resolves every effect to concrete
// targets against the pre-move board. The mutator (Apply) then executes the
// list in order on a fresh copy of that board.
package effects

import (
	"errors"

	"github.com/robalobadob/wordgrid/internal/board"
)

// ErrInvariant marks an effect that does not fit the board it is applied to.
var ErrInvariant = errors.New("effect invariant violated")

// Kind is what an effect does to the board.
type Kind string

const (
	KindReveal  Kind = "reveal"  // clear fog on Targets
	KindBreak   Kind = "break"   // unlock Targets outright
	KindWeaken  Kind = "weaken"  // reduce lock strength on Targets by Amount
	KindClaim   Kind = "claim"   // set ownership of claimable Targets
	KindShift   Kind = "shift"   // rotate content of row/column Line by Amount steps
	KindRotate  Kind = "rotate"  // turn content of square Region clockwise Amount times
	KindReverse Kind = "reverse" // reverse content of Region in row-major order
	KindNoop    Kind = "noop"
)

// Tier bounds how much state one effect may change.
type Tier string

const (
	TierNone     Tier = "none"
	TierMinor    Tier = "minor"
	TierModerate Tier = "moderate"
	TierMajor    Tier = "major"
)

// Trigger names the word property that produced an effect.
type Trigger string

const (
	TriggerLength     Trigger = "length"
	TriggerRare       Trigger = "rare_letter"
	TriggerPalindrome Trigger = "palindrome"
	TriggerVowels     Trigger = "all_vowel"
	TriggerCategory   Trigger = "category"
	TriggerRepeat     Trigger = "repeated_letter"
)

// Rect is an inclusive rectangular region.
type Rect struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

// Height and Width of the region.
func (r Rect) Height() int { return r.Bottom - r.Top + 1 }
func (r Rect) Width() int  { return r.Right - r.Left + 1 }

// Grow expands r by k on every side, clipped to an n×n board.
func (r Rect) Grow(k, n int) Rect {
	return Rect{
		Top:    max(r.Top-k, 0),
		Left:   max(r.Left-k, 0),
		Bottom: min(r.Bottom+k, n-1),
		Right:  min(r.Right+k, n-1),
	}
}

// Positions lists the cells of r in row-major order.
func (r Rect) Positions() []board.Position {
	var out []board.Position
	for row := r.Top; row <= r.Bottom; row++ {
		for col := r.Left; col <= r.Right; col++ {
			out = append(out, board.Position{Row: row, Col: col})
		}
	}
	return out
}

func (r Rect) within(n int) bool {
	return r.Top >= 0 && r.Left >= 0 && r.Bottom < n && r.Right < n && r.Top <= r.Bottom && r.Left <= r.Right
}

// Effect is one discrete board transformation.
type Effect struct {
	Kind      Kind             `json:"kind"`
	Tier      Tier             `json:"tier"`
	Trigger   Trigger          `json:"trigger"`
	Targets   []board.Position `json:"targets,omitempty"`
	Region    *Rect            `json:"region,omitempty"`
	Direction board.Direction  `json:"direction,omitempty"`
	Line      int              `json:"line,omitempty"`
	Amount    int              `json:"amount,omitempty"`
	Amplified bool             `json:"amplified,omitempty"`
	Duplicate bool             `json:"duplicate,omitempty"`
}

// Major reports whether e is a major effect.
func (e Effect) Major() bool { return e.Tier == TierMajor }

// Clone returns a copy of e that shares no slices or pointers.
func (e Effect) Clone() Effect {
	out := e
	out.Targets = append([]board.Position(nil), e.Targets...)
	if e.Region != nil {
		r := *e.Region
		out.Region = &r
	}
	return out
}

func noop(e Effect) Effect {
	return Effect{Kind: KindNoop, Tier: TierNone, Trigger: e.Trigger, Duplicate: e.Duplicate}
}
