package scoring

import (
	"math"
	"strings"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
)

var canonicalMetrics = func() map[string]struct{} {
	m := make(map[string]struct{}, len(models.EconomicMetrics))
	for _, name := range models.EconomicMetrics {
		m[name] = struct{}{}
	}
	return m
}()

var smaPeriods = func() map[int]struct{} {
	m := make(map[int]struct{}, len(models.SMAPeriods))
	for _, p := range models.SMAPeriods {
		m[p] = struct{}{}
	}
	return m
}()

// validateObservation rejects malformed required input with a ValidationError.
// Absent optional fields pass: they take documented neutral defaults during
// scoring. Ambiguous shapes (unknown labels, non-canonical metric names,
// out-of-range or non-finite numbers) are rejected rather than guessed at.
func validateObservation(obs models.AssetObservation) error {
	if strings.TrimSpace(obs.Symbol) == "" {
		return invalidf("symbol", "symbol is required")
	}

	switch obs.Technical.Trend {
	case "", models.TrendBullish, models.TrendBearish, models.TrendNeutral:
	default:
		return invalidf("technical.trend", "unknown trend %q", obs.Technical.Trend)
	}

	switch obs.Technical.Volatility {
	case "", models.VolatilityLow, models.VolatilityNormal, models.VolatilityHigh:
	default:
		return invalidf("technical.volatility", "unknown volatility %q", obs.Technical.Volatility)
	}

	for period := range obs.Technical.AboveSMA {
		if _, ok := smaPeriods[period]; !ok {
			return invalidf("technical.above_sma", "unsupported SMA period %d", period)
		}
	}

	switch obs.Institutional.Positioning {
	case "", models.PositioningBullish, models.PositioningBearish, models.PositioningNeutral:
	default:
		return invalidf("institutional.positioning", "unknown positioning %q", obs.Institutional.Positioning)
	}

	if !isFinite(obs.Institutional.WeeklyChangePct) {
		return invalidf("institutional.weekly_change_pct", "value must be finite")
	}

	if lp := obs.Retail.LongPct; lp != nil {
		if !isFinite(*lp) || *lp < 0 || *lp > 100 {
			return invalidf("retail.long_pct", "value %v outside [0,100]", *lp)
		}
	}

	for name, surprise := range obs.Economic {
		if _, ok := canonicalMetrics[name]; !ok {
			return invalidf("economic", "unknown metric %q", name)
		}
		if !isFinite(surprise) {
			return invalidf("economic."+name, "surprise must be finite")
		}
	}

	if !isFinite(obs.Seasonality.MonthAvgReturnPct) {
		return invalidf("seasonality.month_avg_return_pct", "value must be finite")
	}

	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
