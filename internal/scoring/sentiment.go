package scoring

import "github.com/gman-top/Tradepilotx/internal/domain/models"

// Crowd-positioning gates for the contrarian retail vote.
const (
	retailCrowdedLongPct  = 60.0
	retailCrowdedShortPct = 40.0
	cotWeeklyChangeGate   = 2.0
	retailBalancedPct     = 50.0
)

// sentimentScore combines institutional (COT) positioning with contrarian
// retail positioning into an integer in [-2, 2].
//
// Three independent ±1 votes are summed then clamped: positioning label,
// weekly positioning change beyond ±2%, and retail percent-long beyond the
// 60/40 gates read contrarian (a crowded long side votes bearish). This is a
// fixed three-term vote, not a weighted average; the first two votes can
// double-count institutional bias, which is a deliberate product rule.
func sentimentScore(inst models.InstitutionalObservation, retail models.RetailObservation) int {
	score := 0

	switch inst.Positioning {
	case models.PositioningBullish:
		score++
	case models.PositioningBearish:
		score--
	}

	if inst.WeeklyChangePct > cotWeeklyChangeGate {
		score++
	} else if inst.WeeklyChangePct < -cotWeeklyChangeGate {
		score--
	}

	longPct := resolveRetailLongPct(retail)
	if longPct > retailCrowdedLongPct {
		score--
	} else if longPct < retailCrowdedShortPct {
		score++
	}

	return clamp(score, -2, 2)
}

// resolveRetailLongPct applies the documented neutral default: no retail data
// reads as a balanced 50/50 crowd.
func resolveRetailLongPct(retail models.RetailObservation) float64 {
	if retail.LongPct == nil {
		return retailBalancedPct
	}
	return *retail.LongPct
}
