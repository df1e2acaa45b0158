package models

import "fmt"

// StatName names one of the eight per-player counters
type StatName string

const (
	StatPoints        StatName = "pts"
	StatRebounds      StatName = "reb"
	StatAssists       StatName = "ast"
	StatSteals        StatName = "stl"
	StatBlocks        StatName = "blk"
	StatTurnovers     StatName = "to"
	StatPersonalFouls StatName = "pf"
	StatMinutes       StatName = "min"
)

// StatNames lists every counter in box score order
var StatNames = []StatName{
	StatPoints, StatRebounds, StatAssists, StatSteals,
	StatBlocks, StatTurnovers, StatPersonalFouls, StatMinutes,
}

// StatLine is one player's counters for the current game
type StatLine struct {
	Points        int `json:"pts"`
	Rebounds      int `json:"reb"`
	Assists       int `json:"ast"`
	Steals        int `json:"stl"`
	Blocks        int `json:"blk"`
	Turnovers     int `json:"to"`
	PersonalFouls int `json:"pf"`
	Minutes       int `json:"min"`
}

func (s *StatLine) field(name StatName) (*int, error) {
	switch name {
	case StatPoints:
		return &s.Points, nil
	case StatRebounds:
		return &s.Rebounds, nil
	case StatAssists:
		return &s.Assists, nil
	case StatSteals:
		return &s.Steals, nil
	case StatBlocks:
		return &s.Blocks, nil
	case StatTurnovers:
		return &s.Turnovers, nil
	case StatPersonalFouls:
		return &s.PersonalFouls, nil
	case StatMinutes:
		return &s.Minutes, nil
	}
	return nil, fmt.Errorf("unknown stat %q", name)
}

// Get returns the named counter
func (s StatLine) Get(name StatName) (int, error) {
	f, err := s.field(name)
	if err != nil {
		return 0, err
	}
	return *f, nil
}

// Apply adds delta to the named counter, flooring at zero
func (s *StatLine) Apply(name StatName, delta int) error {
	f, err := s.field(name)
	if err != nil {
		return err
	}
	*f = max(0, *f+delta)
	return nil
}

// Add returns the element-wise sum of s and o
func (s StatLine) Add(o StatLine) StatLine {
	return StatLine{
		Points:        s.Points + o.Points,
		Rebounds:      s.Rebounds + o.Rebounds,
		Assists:       s.Assists + o.Assists,
		Steals:        s.Steals + o.Steals,
		Blocks:        s.Blocks + o.Blocks,
		Turnovers:     s.Turnovers + o.Turnovers,
		PersonalFouls: s.PersonalFouls + o.PersonalFouls,
		Minutes:       s.Minutes + o.Minutes,
	}
}

// Stats maps player id to stat line, per side
type Stats struct {
	Home map[string]StatLine `json:"home"`
	Away map[string]StatLine `json:"away"`
}

// NewStats returns an empty ledger with non-nil maps
func NewStats() Stats {
	return Stats{Home: map[string]StatLine{}, Away: map[string]StatLine{}}
}

// Lines returns the stat lines of side
func (s *Stats) Lines(side Side) map[string]StatLine {
	if side == SideAway {
		if s.Away == nil {
			s.Away = map[string]StatLine{}
		}
		return s.Away
	}
	if s.Home == nil {
		s.Home = map[string]StatLine{}
	}
	return s.Home
}

// Line returns the stat line for id, zeroed when missing
func (s *Stats) Line(side Side, id string) StatLine {
	return s.Lines(side)[id]
}

// Selection is the player that stat buttons currently apply to
type Selection struct {
	Side     Side   `json:"side"`
	PlayerID string `json:"id"`
}
