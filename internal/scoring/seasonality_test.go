package scoring

import (
	"testing"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
)

func TestSeasonalityScoreThresholds(t *testing.T) {
	cases := []struct {
		avg  float64
		want int
	}{
		{2.5, 2},
		{1.01, 2},
		{1.0, 1}, // strict comparison: exactly 1.0 is one notch lower
		{0.51, 1},
		{0.5, 0},
		{0.0, 0},
		{-0.5, 0},
		{-0.51, -1},
		{-1.0, -1},
		{-1.01, -2},
		{-4.0, -2},
	}
	for _, tc := range cases {
		got := seasonalityScore(models.SeasonalityObservation{MonthAvgReturnPct: tc.avg})
		if got != tc.want {
			t.Errorf("avg %.2f: expected %d, got %d", tc.avg, tc.want, got)
		}
	}
}
