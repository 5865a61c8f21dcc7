package models

// Bias labels produced by the aggregator's threshold ladder.
const (
	BiasVeryBullish = "Very Bullish"
	BiasBullish     = "Bullish"
	BiasNeutral     = "Neutral"
	BiasBearish     = "Bearish"
	BiasVeryBearish = "Very Bearish"
)

// Breakdown echoes the normalized inputs a report was computed from, for
// auditability. Retail carries the resolved long percentage (defaulted to a
// balanced crowd when the feed had no data) plus the derived short side.
type Breakdown struct {
	Technical     TechnicalObservation     `json:"technical"`
	Institutional InstitutionalObservation `json:"institutional"`
	Retail        RetailBreakdown          `json:"retail"`
	Economic      map[string]float64       `json:"economic"`
	Seasonality   SeasonalityObservation   `json:"seasonality"`
}

// RetailBreakdown is the normalized retail slice of a report breakdown.
type RetailBreakdown struct {
	LongPct  float64 `json:"long_pct"`
	ShortPct float64 `json:"short_pct"`
}

// ScoreReport is the output of one scoring call. Sub-scores are independently
// clamped; with unit weights TotalScore is exactly their sum, while non-unit
// weights scale each factor's contribution to the total without touching the
// sub-scores themselves. The bias label derives from TotalScore alone. Reports
// are ephemeral value objects, constructed fresh per call and never mutated.
type ScoreReport struct {
	Symbol           string    `json:"symbol"`
	TechnicalScore   int       `json:"technical_score"`
	SentimentScore   int       `json:"sentiment_score"`
	EcoScore         int       `json:"eco_score"`
	SeasonalityScore int       `json:"seasonality_score"`
	TotalScore       int       `json:"total_score"`
	Bias             string    `json:"bias"`
	Breakdown        Breakdown `json:"breakdown"`
}
