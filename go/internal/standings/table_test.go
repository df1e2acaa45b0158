package standings

import (
	"testing"

	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByWinPctThenDifferential(t *testing.T) {
	records := []models.TeamRecord{
		{Name: "A", Wins: 3, Losses: 1, PointsFor: 300, PointsAgainst: 280},
		{Name: "B", Wins: 3, Losses: 1, PointsFor: 290, PointsAgainst: 300},
		{Name: "C", Wins: 4, Losses: 0, PointsFor: 320, PointsAgainst: 250},
	}
	Sort(records)

	names := []string{records[0].Name, records[1].Name, records[2].Name}
	assert.Equal(t, []string{"C", "A", "B"}, names)
}

func TestSortTreatsNoGamesAsZeroPct(t *testing.T) {
	records := []models.TeamRecord{
		models.NewTeamRecord("Fresh"),
		{Name: "Winless", Wins: 0, Losses: 2, PointsFor: 100, PointsAgainst: 150},
		{Name: "One", Wins: 1, Losses: 3},
	}
	Sort(records)
	assert.Equal(t, "One", records[0].Name)
	// equal 0% records fall back to differential: Fresh (0) before Winless (-50)
	assert.Equal(t, "Fresh", records[1].Name)
	assert.Equal(t, "Winless", records[2].Name)
}

func TestSortIsStable(t *testing.T) {
	records := []models.TeamRecord{
		{Name: "X", Wins: 1, Losses: 1},
		{Name: "Y", Wins: 2, Losses: 2},
		{Name: "Z", Wins: 1, Losses: 1},
	}
	Sort(records)
	assert.Equal(t, "X", records[0].Name)
	assert.Equal(t, "Y", records[1].Name)
	assert.Equal(t, "Z", records[2].Name)
}

func TestGamesBehind(t *testing.T) {
	leader := models.TeamRecord{Name: "C", Wins: 4, Losses: 0}

	assert.Equal(t, LeaderSentinel, GamesBehind(leader, leader))
	assert.Equal(t, "1.0", GamesBehind(leader, models.TeamRecord{Name: "A", Wins: 3, Losses: 1}))
	assert.Equal(t, "0.5", GamesBehind(leader, models.TeamRecord{Name: "D", Wins: 3, Losses: 0}))
	assert.Equal(t, "4.0", GamesBehind(leader, models.TeamRecord{Name: "E", Wins: 0, Losses: 4}))
	assert.Equal(t, "2.0", GamesBehind(leader, models.NewTeamRecord("F")))
}

func TestGamesBehindLeaderWithMoreLosses(t *testing.T) {
	leader := models.TeamRecord{Name: "L", Wins: 3, Losses: 3}

	assert.Equal(t, "-1.5", GamesBehind(leader, models.TeamRecord{Name: "A", Wins: 4, Losses: 1}))
	assert.Equal(t, "0.0", GamesBehind(leader, models.TeamRecord{Name: "B", Wins: 2, Losses: 2}))
	assert.Equal(t, "0.5", GamesBehind(models.TeamRecord{Name: "M", Wins: 2, Losses: 1}, models.TeamRecord{Name: "C", Wins: 1, Losses: 1}))

	// 5-1 outranks 9-3 on percentage but trails it on net wins
	records := []models.TeamRecord{
		{Name: "Deep", Wins: 9, Losses: 3},
		{Name: "Short", Wins: 5, Losses: 1},
	}
	Sort(records)
	rows := Table(records)
	require.Len(t, rows, 2)
	assert.Equal(t, "Short", rows[0].Name)
	assert.Equal(t, LeaderSentinel, rows[0].GamesBehind)
	assert.Equal(t, "-1.0", rows[1].GamesBehind)
}

func TestTable(t *testing.T) {
	records := []models.TeamRecord{
		{Name: "C", Wins: 4, Losses: 0, PointsFor: 320, PointsAgainst: 250, StreakKind: models.StreakWin, StreakLength: 4, Streak: "W4"},
		{Name: "B", Wins: 1, Losses: 2, PointsFor: 290, PointsAgainst: 300, StreakKind: models.StreakLoss, StreakLength: 2, Streak: "L2"},
		models.NewTeamRecord("New"),
	}

	rows := Table(records)
	require.Len(t, rows, 3)

	assert.Equal(t, Row{Rank: 1, Name: "C", Wins: 4, Losses: 0, WinPct: "100.0", GamesBehind: LeaderSentinel, Differential: "+70", Streak: "W4", Leader: true}, rows[0])
	assert.Equal(t, Row{Rank: 2, Name: "B", Wins: 1, Losses: 2, WinPct: "33.3", GamesBehind: "2.5", Differential: "-10", Streak: "L2"}, rows[1])
	assert.Equal(t, Row{Rank: 3, Name: "New", WinPct: "0.0", GamesBehind: "2.0", Differential: "+0", Streak: "W0"}, rows[2])

	assert.Empty(t, Table(nil))
}
