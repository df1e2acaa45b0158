package scoreboard

import (
	"fmt"

	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
)

const PenaltyLabel = "PENALTY"

// FormatClock renders centiseconds as mm:ss.cc
func FormatClock(cs int) string {
	cs = max(cs, 0)
	total := cs / 100
	return fmt.Sprintf("%02d:%02d.%02d", total/60, total%60, cs%100)
}

// ShotClockLevel is the urgency class for the shot clock display
func ShotClockLevel(seconds int) string {
	switch {
	case seconds <= 5:
		return "critical"
	case seconds <= 10:
		return "warning"
	}
	return ""
}

// FoulLabel shows the foul count, or PENALTY once a team reaches the limit
func FoulLabel(fouls int) string {
	if fouls >= MaxFouls {
		return PenaltyLabel
	}
	return fmt.Sprint(fouls)
}

// View is the scoreboard with its display strings worked out
type View struct {
	models.Scoreboard
	Clock          string `json:"clock"`
	ShotClockLevel string `json:"shotClockLevel"`
	HomeFoulLabel  string `json:"homeFoulLabel"`
	AwayFoulLabel  string `json:"awayFoulLabel"`
}

func NewView(sb models.Scoreboard) View {
	return View{
		Scoreboard:     sb,
		Clock:          FormatClock(sb.TimerCentiseconds),
		ShotClockLevel: ShotClockLevel(sb.ShotClockSeconds),
		HomeFoulLabel:  FoulLabel(sb.HomeFouls),
		AwayFoulLabel:  FoulLabel(sb.AwayFouls),
	}
}
