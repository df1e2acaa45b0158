package models

// Theme is the colour set a display renders the scoreboard with
type Theme struct {
	ID        string `json:"id,omitempty" yaml:"id"`
	Name      string `json:"name,omitempty" yaml:"name"`
	Accent    string `json:"accent" yaml:"accent"`
	HomeColor string `json:"homeColor" yaml:"home_color"`
	AwayColor string `json:"awayColor" yaml:"away_color"`
	Yellow    string `json:"yellow" yaml:"yellow"`
	Dark      string `json:"dark" yaml:"dark"`
	Panel     string `json:"panel" yaml:"panel"`
}

// Scoreboard is the live game state shared with viewers and overlays
type Scoreboard struct {
	HomeName   string `json:"homeName"`
	AwayName   string `json:"awayName"`
	LeagueName string `json:"leagueName"`

	HomeScore int `json:"homeScore"`
	AwayScore int `json:"awayScore"`
	HomeFouls int `json:"homeFouls"`
	AwayFouls int `json:"awayFouls"`

	Period      int    `json:"period"`
	PeriodLabel string `json:"periodLabel"`
	Possession  Side   `json:"possession"`

	MinutesPerQuarter int  `json:"minsPerQuarter"`
	TimerCentiseconds int  `json:"timerCentiseconds"`
	TimerRunning      bool `json:"timerRunning"`

	ShotClockSeconds int  `json:"shotClockSeconds"`
	ShotClockDefault int  `json:"shotClockDefault"`
	ShotClockRunning bool `json:"shotClockRunning"`

	HomeTimeouts int `json:"homeTimeouts"`
	AwayTimeouts int `json:"awayTimeouts"`
	MaxTimeouts  int `json:"maxTimeouts"`

	Theme Theme `json:"theme"`
}

// Score returns side's score
func (s *Scoreboard) Score(side Side) int {
	if side == SideAway {
		return s.AwayScore
	}
	return s.HomeScore
}

// TeamName returns side's display name
func (s *Scoreboard) TeamName(side Side) string {
	if side == SideAway {
		return s.AwayName
	}
	return s.HomeName
}
