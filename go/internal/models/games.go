package models

// BoxScoreEntry is a player snapshot with the stats recorded at save time
type BoxScoreEntry struct {
	Player
	Stats StatLine `json:"stats"`
}

// BoxScore holds both sides' player snapshots
type BoxScore struct {
	Home []BoxScoreEntry `json:"home"`
	Away []BoxScoreEntry `json:"away"`
}

// Entries returns the snapshot rows for side
func (b BoxScore) Entries(side Side) []BoxScoreEntry {
	if side == SideAway {
		return b.Away
	}
	return b.Home
}

// Totals sums every counter over side's players
func (b BoxScore) Totals(side Side) StatLine {
	var total StatLine
	for _, e := range b.Entries(side) {
		total = total.Add(e.Stats)
	}
	return total
}

// GameRecord is an immutable completed-game snapshot in the history log
type GameRecord struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"`
	HomeName   string   `json:"homeName"`
	AwayName   string   `json:"awayName"`
	HomeScore  int      `json:"homeScore"`
	AwayScore  int      `json:"awayScore"`
	BoxScore   BoxScore `json:"boxScore"`
	LeagueName string   `json:"leagueName"`
}

// UpcomingGame is a scheduled fixture
type UpcomingGame struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time,omitempty"`
	HomeName string `json:"homeName"`
	AwayName string `json:"awayName"`
	Venue    string `json:"venue,omitempty"`
}
