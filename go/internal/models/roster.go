package models

// Roster holds the ordered players of both sides
type Roster struct {
	Home []Player `json:"home"`
	Away []Player `json:"away"`
}

// NewRoster returns an empty roster with non-nil slices
func NewRoster() Roster {
	return Roster{Home: []Player{}, Away: []Player{}}
}

// Players returns the players on side
func (r *Roster) Players(side Side) []Player {
	if side == SideAway {
		return r.Away
	}
	return r.Home
}

// SetPlayers replaces the players on side
func (r *Roster) SetPlayers(side Side, players []Player) {
	if side == SideAway {
		r.Away = players
		return
	}
	r.Home = players
}

// Find returns the player with id on side
func (r *Roster) Find(side Side, id string) (Player, bool) {
	for _, p := range r.Players(side) {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}
