package words

import "github.com/robalobadob/wordgrid/internal/board"

// Category is a semantic word class that triggers a board effect.
type Category string

const (
	CategoryNone      Category = ""
	CategoryAction    Category = "action"
	CategoryEmotion   Category = "emotion"
	CategoryDirection Category = "direction"
)

var actionVerbs = set(
	"MOVE", "TURN", "SPIN", "ROLL", "PUSH", "PULL", "FLIP", "TWIST", "SLIDE",
	"ROTATE", "SWAP", "SHIFT", "JUMP", "LIFT", "DRAG", "SWING", "WHIRL",
	"STIR", "SHOVE", "TOSS", "THROW", "CARRY", "REVOLVE", "TWIRL",
)

var emotionWords = set(
	"LOVE", "HATE", "JOY", "FEAR", "RAGE", "CALM", "HAPPY", "SAD", "ANGER",
	"ENVY", "HOPE", "GRIEF", "PRIDE", "SHAME", "BLISS", "DREAD", "GLEE",
	"SORROW", "DELIGHT", "FURY", "PANIC", "ADORE", "SCORN", "TRUST",
)

var directionWords = map[string]board.Direction{
	"NORTH": board.North, "UPWARD": board.North, "ABOVE": board.North, "RISE": board.North,
	"SOUTH": board.South, "DOWN": board.South, "BELOW": board.South, "DOWNWARD": board.South,
	"EAST": board.East, "RIGHT": board.East, "EASTWARD": board.East,
	"WEST": board.West, "LEFT": board.West, "WESTWARD": board.West,
}

// Classify returns the category of w, checking directions first.
func Classify(w string) Category {
	w = normalize(w)
	if _, ok := directionWords[w]; ok {
		return CategoryDirection
	}
	if _, ok := actionVerbs[w]; ok {
		return CategoryAction
	}
	if _, ok := emotionWords[w]; ok {
		return CategoryEmotion
	}
	return CategoryNone
}

// DirectionOf returns the compass direction named by w.
func DirectionOf(w string) (board.Direction, bool) {
	d, ok := directionWords[normalize(w)]
	return d, ok
}

func set(ws ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ws))
	for _, w := range ws {
		m[w] = struct{}{}
	}
	return m
}
