package models

// Trend is the technical trend direction reported by the price feed.
type Trend string

const (
	TrendBullish Trend = "Bullish"
	TrendBearish Trend = "Bearish"
	TrendNeutral Trend = "Neutral"
)

// Volatility buckets current price turbulence.
type Volatility string

const (
	VolatilityLow    Volatility = "Low"
	VolatilityNormal Volatility = "Normal"
	VolatilityHigh   Volatility = "High"
)

// Positioning is the institutional (COT) net positioning label.
type Positioning string

const (
	PositioningBullish Positioning = "Bullish"
	PositioningBearish Positioning = "Bearish"
	PositioningNeutral Positioning = "Neutral"
)

// SMAPeriods are the moving-average lookbacks the technical score reads.
var SMAPeriods = []int{20, 50, 100, 200}

// EconomicMetrics is the canonical set of macro surprise indicators.
// Unknown metric names are rejected at validation rather than silently dropped.
var EconomicMetrics = []string{
	"gdp",
	"manufacturing_pmi",
	"services_pmi",
	"retail_sales",
	"cpi",
	"ppi",
	"pce",
	"interest_rates",
	"consumer_confidence",
	"nfp",
	"unemployment",
	"jobless_claims",
	"adp",
	"jolts",
}

// TechnicalObservation holds trend, SMA positioning and volatility for one asset.
// An empty Trend means neutral; a period missing from AboveSMA contributes nothing;
// an empty Volatility means normal. Those defaults are intentional, not error
// suppression.
type TechnicalObservation struct {
	Trend      Trend        `json:"trend,omitempty"`
	AboveSMA   map[int]bool `json:"above_sma,omitempty"`
	Volatility Volatility   `json:"volatility,omitempty"`
}

// InstitutionalObservation holds COT positioning and its week-over-week change.
type InstitutionalObservation struct {
	Positioning     Positioning `json:"positioning,omitempty"`
	WeeklyChangePct float64     `json:"weekly_change_pct"`
}

// RetailObservation holds the percent of retail accounts long (contrarian input).
// A nil LongPct means no data; the scorer treats it as a balanced 50/50 crowd.
type RetailObservation struct {
	LongPct *float64 `json:"long_pct,omitempty"`
}

// SeasonalityObservation holds the historical average return for the current
// calendar month.
type SeasonalityObservation struct {
	MonthAvgReturnPct float64 `json:"month_avg_return_pct"`
}

// AssetObservation is the full input to one scoring call. It is assembled by
// callers from the feed capabilities and never mutated after construction.
// Economic maps canonical metric names to signed surprise values; a missing
// metric means no data.
type AssetObservation struct {
	Symbol        string                   `json:"symbol"`
	Technical     TechnicalObservation     `json:"technical"`
	Institutional InstitutionalObservation `json:"institutional"`
	Retail        RetailObservation        `json:"retail"`
	Economic      map[string]float64       `json:"economic,omitempty"`
	Seasonality   SeasonalityObservation   `json:"seasonality"`
}
