package scoring

import (
	"math"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
)

// technicalScore converts trend, SMA positioning and volatility into an
// integer in [-3, 3].
//
// Trend contributes ±2, each of the four SMA checks ±0.25 (net ±1). High
// volatility damps the running sum by 0.8 before rounding to reduce confidence
// in turbulent conditions. Rounding is half-away-from-zero (math.Round), then
// the result clamps to ±3. Absent fields are neutral: empty trend adds
// nothing, a period missing from the SMA map adds nothing, empty volatility
// means normal.
func technicalScore(t models.TechnicalObservation) int {
	score := 0.0

	switch t.Trend {
	case models.TrendBullish:
		score += 2
	case models.TrendBearish:
		score -= 2
	}

	for _, period := range models.SMAPeriods {
		above, ok := t.AboveSMA[period]
		if !ok {
			continue
		}
		if above {
			score += 0.25
		} else {
			score -= 0.25
		}
	}

	if t.Volatility == models.VolatilityHigh {
		score *= 0.8
	}

	return clamp(int(math.Round(score)), -3, 3)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
