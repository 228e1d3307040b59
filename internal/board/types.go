// internal/board/types.go
//
// Core type definitions for the letter grid.
// Defines:
//   - Kind: the tile variant tag (letter, locked, vault, fog, territory).
//   - Special: multiplier specials carried by tile content.
//   - Tile, Board, Position, Player.
//
// A tile is a tagged variant: Kind decides which of the state fields carry
// meaning. Board.Validate rejects combinations that do not fit the tag.

package board

// Kind tags the structural variant of a tile.
type Kind string

const (
	KindLetter    Kind = "letter"    // plain playable letter
	KindLocked    Kind = "locked"    // obstacle; unplayable while Locks > 0
	KindVault     Kind = "vault"     // vault_break objective; unplayable while Locks > 0
	KindFog       Kind = "fog"       // hidden tile; Phrase marks hidden_phrase letters
	KindTerritory Kind = "territory" // claimable; OwnerID/OwnerColor set once claimed
)

// Special is a multiplier carried by tile content.
type Special string

const (
	SpecialNone     Special = ""
	SpecialDouble   Special = "double"
	SpecialTriple   Special = "triple"
	SpecialWildcard Special = "wildcard"
)

// Position identifies a cell on the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Tile is one board cell.
//
// Content (Letter, Value, Special) can move between cells when an effect
// shifts, rotates or reverses a region. Structural state (Kind, Locks,
// Fogged, Phrase, Revealed, OwnerID, OwnerColor) is bound to the position.
type Tile struct {
	Letter  string  `json:"letter"`
	Value   int     `json:"value"`
	Row     int     `json:"row"`
	Col     int     `json:"col"`
	Special Special `json:"special,omitempty"`

	Kind Kind `json:"kind"`

	// locked / vault
	Locks int `json:"locks,omitempty"`

	// fog
	Fogged   bool `json:"fogged,omitempty"`
	Phrase   bool `json:"phrase,omitempty"`
	Revealed bool `json:"revealed,omitempty"`

	// territory
	OwnerID    string `json:"ownerId,omitempty"`
	OwnerColor string `json:"ownerColor,omitempty"`
}

// Locked reports whether the tile currently refuses selection.
func (t Tile) Locked() bool {
	return (t.Kind == KindLocked || t.Kind == KindVault) && t.Locks > 0
}

// Vault reports whether the tile is a vault objective.
func (t Tile) Vault() bool { return t.Kind == KindVault }

// Claimable reports whether the tile counts toward territory control.
func (t Tile) Claimable() bool { return t.Kind == KindTerritory }

// Pos returns the tile's position.
func (t Tile) Pos() Position { return Position{Row: t.Row, Col: t.Col} }

// Board is a square grid of tiles, indexed Tiles[row][col].
type Board struct {
	Size  int      `json:"size"`
	Tiles [][]Tile `json:"tiles"`
}

// Player is the acting participant of a move.
type Player struct {
	ID    string `json:"id"`
	Color string `json:"color,omitempty"`
}
