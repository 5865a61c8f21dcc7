package scoring

import "github.com/gman-top/Tradepilotx/internal/domain/models"

// seasonalityScore maps the current month's historical average return onto a
// fixed step function in {-2, -1, 0, 1, 2}. Comparisons are strict: exactly
// +1.0% yields +1, not +2.
func seasonalityScore(s models.SeasonalityObservation) int {
	avg := s.MonthAvgReturnPct
	switch {
	case avg > 1.0:
		return 2
	case avg > 0.5:
		return 1
	case avg < -1.0:
		return -2
	case avg < -0.5:
		return -1
	default:
		return 0
	}
}
