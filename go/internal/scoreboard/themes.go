package scoreboard

import (
	"regexp"

	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
)

const CustomThemeID = "custom"

// Presets are the built-in themes; the first one is the default
var Presets = []models.Theme{
	{ID: "default", Name: "Fire", Accent: "#FF5E1A", HomeColor: "#FF5E1A", AwayColor: "#00C2FF", Yellow: "#FFD600", Dark: "#0D0D0D", Panel: "#161616"},
	{ID: "nba", Name: "NBA", Accent: "#C9082A", HomeColor: "#C9082A", AwayColor: "#1D428A", Yellow: "#FDB927", Dark: "#0A0A0A", Panel: "#141414"},
	{ID: "midnight", Name: "Night", Accent: "#7B2FBE", HomeColor: "#A855F7", AwayColor: "#22D3EE", Yellow: "#F0ABFC", Dark: "#05020D", Panel: "#0F0A1A"},
	{ID: "forest", Name: "Forest", Accent: "#16A34A", HomeColor: "#22C55E", AwayColor: "#FACC15", Yellow: "#BEF264", Dark: "#050D07", Panel: "#0C1610"},
	{ID: "ice", Name: "Ice", Accent: "#0EA5E9", HomeColor: "#38BDF8", AwayColor: "#F97316", Yellow: "#E0F2FE", Dark: "#020B12", Panel: "#071622"},
	{ID: "gold", Name: "Gold", Accent: "#CA8A04", HomeColor: "#EAB308", AwayColor: "#DC2626", Yellow: "#FEF08A", Dark: "#0C0900", Panel: "#1A1400"},
	{ID: "mono", Name: "Mono", Accent: "#E5E5E5", HomeColor: "#FFFFFF", AwayColor: "#999999", Yellow: "#D4D4D4", Dark: "#000000", Panel: "#111111"},
	{ID: "cherry", Name: "Cherry", Accent: "#E11D48", HomeColor: "#FB7185", AwayColor: "#FCD34D", Yellow: "#FCA5A5", Dark: "#0C0007", Panel: "#180010"},
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func findTheme(themes []models.Theme, id string) (models.Theme, bool) {
	for _, t := range themes {
		if t.ID == id {
			return t, true
		}
	}
	return models.Theme{}, false
}

func validTheme(t models.Theme) bool {
	for _, c := range []string{t.Accent, t.HomeColor, t.AwayColor, t.Yellow, t.Dark, t.Panel} {
		if !hexColor.MatchString(c) {
			return false
		}
	}
	return true
}
