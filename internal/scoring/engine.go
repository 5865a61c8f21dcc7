package scoring

import (
	"sort"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
)

// Engine is the multi-factor conviction scoring model: four independently
// clamped sub-scores summed into one total with a derived bias label. It is a
// pure, synchronous computation with no I/O and no shared mutable state, safe
// to call concurrently for independent assets.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given weight configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// NewDefaultEngine creates an engine with unit weights.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultConfig())
}

// ScoreAsset computes one ScoreReport from one observation. It returns a
// ValidationError for malformed required input and never substitutes a zeroed
// report for a failure; only documented optional-field defaults produce
// neutral contributions.
func (e *Engine) ScoreAsset(obs models.AssetObservation) (*models.ScoreReport, error) {
	if err := validateObservation(obs); err != nil {
		return nil, err
	}

	technical := technicalScore(obs.Technical)
	sentiment := sentimentScore(obs.Institutional, obs.Retail)
	eco := ecoScore(obs.Economic)
	seasonality := seasonalityScore(obs.Seasonality)
	total := e.cfg.total(technical, sentiment, eco, seasonality)

	return &models.ScoreReport{
		Symbol:           obs.Symbol,
		TechnicalScore:   technical,
		SentimentScore:   sentiment,
		EcoScore:         eco,
		SeasonalityScore: seasonality,
		TotalScore:       total,
		Bias:             biasFor(total),
		Breakdown:        buildBreakdown(obs),
	}, nil
}

// Result is one slot of a batch ranking. A failed asset keeps its slot with
// Err set instead of aborting the whole batch.
type Result struct {
	Symbol string
	Report *models.ScoreReport
	Err    error
}

// RankAssets scores each observation independently and orders the results by
// total score descending. The sort is stable: ties keep input order. Errored
// slots sort after all scored slots, also in input order.
func (e *Engine) RankAssets(observations []models.AssetObservation) []Result {
	results := make([]Result, 0, len(observations))
	for _, obs := range observations {
		report, err := e.ScoreAsset(obs)
		results = append(results, Result{Symbol: obs.Symbol, Report: report, Err: err})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Err != nil {
			return false
		}
		if results[j].Err != nil {
			return true
		}
		return results[i].Report.TotalScore > results[j].Report.TotalScore
	})

	return results
}

// biasFor applies the bias threshold ladder, first match wins. The ladder
// keeps redundant rungs on purpose: the cut points are business rules carried
// over from the product rule set, including the sharp jump between +2
// ("Neutral") and +3 ("Bullish").
func biasFor(total int) string {
	switch {
	case total >= 8:
		return models.BiasVeryBullish
	case total >= 3:
		return models.BiasBullish
	case total > 0:
		return models.BiasNeutral
	case total == 0:
		return models.BiasNeutral
	case total > -3:
		return models.BiasNeutral
	case total > -5:
		return models.BiasBearish
	case total > -8:
		return models.BiasBearish
	default:
		return models.BiasVeryBearish
	}
}

// buildBreakdown copies the normalized inputs into the report. Maps are
// copied so the report never aliases caller-owned memory, and empty labels
// are resolved to their neutral defaults for auditability.
func buildBreakdown(obs models.AssetObservation) models.Breakdown {
	technical := models.TechnicalObservation{
		Trend:      obs.Technical.Trend,
		Volatility: obs.Technical.Volatility,
	}
	if technical.Trend == "" {
		technical.Trend = models.TrendNeutral
	}
	if technical.Volatility == "" {
		technical.Volatility = models.VolatilityNormal
	}
	if len(obs.Technical.AboveSMA) > 0 {
		technical.AboveSMA = make(map[int]bool, len(obs.Technical.AboveSMA))
		for period, above := range obs.Technical.AboveSMA {
			technical.AboveSMA[period] = above
		}
	}

	institutional := obs.Institutional
	if institutional.Positioning == "" {
		institutional.Positioning = models.PositioningNeutral
	}

	longPct := resolveRetailLongPct(obs.Retail)

	economic := make(map[string]float64, len(obs.Economic))
	for name, surprise := range obs.Economic {
		economic[name] = surprise
	}

	return models.Breakdown{
		Technical:     technical,
		Institutional: institutional,
		Retail: models.RetailBreakdown{
			LongPct:  longPct,
			ShortPct: 100 - longPct,
		},
		Economic:    economic,
		Seasonality: obs.Seasonality,
	}
}
