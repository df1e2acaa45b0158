package standings

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
)

// LeaderSentinel is what the leader shows in the games-behind column
const LeaderSentinel = "—"

// Compare orders records by win percentage, then point differential, both descending.
// Win percentages are compared by cross-multiplying so equal records compare equal.
func Compare(a, b models.TeamRecord) int {
	ga := max(a.GamesPlayed(), 1)
	gb := max(b.GamesPlayed(), 1)
	if c := cmp.Compare(b.Wins*ga, a.Wins*gb); c != 0 {
		return c
	}
	return cmp.Compare(b.Differential(), a.Differential())
}

// Sort orders records in place; equal records keep their relative order
func Sort(records []models.TeamRecord) {
	slices.SortStableFunc(records, Compare)
}

// GamesBehind is how far record trails leader in net wins, with one decimal.
// The leader itself gets LeaderSentinel.
func GamesBehind(leader, record models.TeamRecord) string {
	if record.Name == leader.Name {
		return LeaderSentinel
	}
	net := (leader.Wins - leader.Losses) - (record.Wins - record.Losses)
	return fmt.Sprintf("%.1f", float64(net)/2)
}

// Row is one rendered standings line
type Row struct {
	Rank         int    `json:"rank"`
	Name         string `json:"name"`
	Wins         int    `json:"w"`
	Losses       int    `json:"l"`
	WinPct       string `json:"pct"`
	GamesBehind  string `json:"gb"`
	Differential string `json:"diff"`
	Streak       string `json:"streak"`
	Leader       bool   `json:"leader"`
}

// Table renders already-sorted records; the first record is the leader
func Table(records []models.TeamRecord) []Row {
	rows := make([]Row, 0, len(records))
	if len(records) == 0 {
		return rows
	}
	leader := records[0]
	for i, t := range records {
		rows = append(rows, Row{
			Rank:         i + 1,
			Name:         t.Name,
			Wins:         t.Wins,
			Losses:       t.Losses,
			WinPct:       fmt.Sprintf("%.1f", t.WinPct()*100),
			GamesBehind:  gamesBehindAt(i, leader, t),
			Differential: fmt.Sprintf("%+d", t.Differential()),
			Streak:       t.StreakLabel(),
			Leader:       i == 0,
		})
	}
	return rows
}

func gamesBehindAt(i int, leader, t models.TeamRecord) string {
	if i == 0 {
		return LeaderSentinel
	}
	return GamesBehind(leader, t)
}
