package board

import "strings"

// letterValues follows the classic crossword tile values.
var letterValues = map[byte]int{
	'A': 1, 'B': 3, 'C': 3, 'D': 2, 'E': 1, 'F': 4, 'G': 2, 'H': 4, 'I': 1,
	'J': 8, 'K': 5, 'L': 1, 'M': 3, 'N': 1, 'O': 1, 'P': 3, 'Q': 10, 'R': 1,
	'S': 1, 'T': 1, 'U': 1, 'V': 4, 'W': 4, 'X': 8, 'Y': 4, 'Z': 10,
}

// LetterValue returns the point value of a letter; unknown letters score 0.
func LetterValue(letter string) int {
	if letter == "" {
		return 0
	}
	return letterValues[strings.ToUpper(letter)[0]]
}

// IsVowel reports whether r is one of A, E, I, O, U (either case).
func IsVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U', 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// Direction is a compass direction for row/column shifts.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Vertical reports whether d moves content along a column.
func (d Direction) Vertical() bool { return d == North || d == South }
