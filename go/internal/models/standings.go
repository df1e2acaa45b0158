package models

import (
	"encoding/json"
	"strconv"
)

// StreakKind is the kind of a team's current run of results
type StreakKind string

const (
	StreakWin  StreakKind = "W"
	StreakLoss StreakKind = "L"
	StreakNone StreakKind = ""
)

// MarshalJSON writes StreakNone as null to match stored records
func (k StreakKind) MarshalJSON() ([]byte, error) {
	if k == StreakNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(k))
}

// UnmarshalJSON accepts null as StreakNone
func (k *StreakKind) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*k = StreakNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k = StreakKind(s)
	return nil
}

// TeamRecord is one standings row. Name is the identity key.
type TeamRecord struct {
	Name          string     `json:"name"`
	Wins          int        `json:"w"`
	Losses        int        `json:"l"`
	PointsFor     int        `json:"pf"`
	PointsAgainst int        `json:"pa"`
	Streak        string     `json:"streak"`
	StreakKind    StreakKind `json:"streakType"`
	StreakLength  int        `json:"streakCount"`
}

// NewTeamRecord returns a record for a team with no games
func NewTeamRecord(name string) TeamRecord {
	return TeamRecord{Name: name, Streak: "W0"}
}

// GamesPlayed returns wins plus losses
func (t TeamRecord) GamesPlayed() int {
	return t.Wins + t.Losses
}

// Differential returns points for minus points against
func (t TeamRecord) Differential() int {
	return t.PointsFor - t.PointsAgainst
}

// WinPct returns wins over games played, 0 with no games
func (t TeamRecord) WinPct() float64 {
	gp := t.GamesPlayed()
	if gp == 0 {
		return 0
	}
	return float64(t.Wins) / float64(gp)
}

// StreakLabel renders the streak as e.g. "W3"; a team with no streak shows "W0"
func (t TeamRecord) StreakLabel() string {
	kind := t.StreakKind
	if kind == StreakNone {
		kind = StreakWin
	}
	return string(kind) + strconv.Itoa(t.StreakLength)
}
