package models

// Side identifies one of the two teams on the floor
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Sides lists both sides in display order
var Sides = []Side{SideHome, SideAway}

// Valid reports whether s is home or away
func (s Side) Valid() bool {
	return s == SideHome || s == SideAway
}

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// Position represents a player's listed position
type Position string

const (
	PositionPointGuard    Position = "PG"
	PositionShootingGuard Position = "SG"
	PositionSmallForward  Position = "SF"
	PositionPowerForward  Position = "PF"
	PositionCenter        Position = "C"
	PositionNone          Position = "-"
)

// Valid reports whether p is one of the known positions
func (p Position) Valid() bool {
	switch p {
	case PositionPointGuard, PositionShootingGuard, PositionSmallForward,
		PositionPowerForward, PositionCenter, PositionNone:
		return true
	}
	return false
}

// Player is a rostered player. ID is opaque; older saves use short base36 ids.
type Player struct {
	ID       string   `json:"id"`
	Number   string   `json:"num"`
	Name     string   `json:"name"`
	Position Position `json:"pos"`
}
