package service

import (
	"context"
	"time"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
)

// Feed capabilities the observation builder assembles an AssetObservation
// from. The scoring core never calls these directly.

// PriceFeed returns current price and moving averages for a ticker.
type PriceFeed interface {
	Summary(ctx context.Context, ticker string) (models.PriceSummary, error)
}

// PositioningFeed returns institutional long/short positioning and its
// week-over-week change for an asset.
type PositioningFeed interface {
	Positioning(ctx context.Context, asset string) (models.InstitutionalPositioning, error)
}

// RetailSentimentFeed returns the percent of retail accounts long an asset.
type RetailSentimentFeed interface {
	LongPercent(ctx context.Context, asset string) (float64, error)
}

// MacroFeed returns named surprise values for the canonical macro indicators
// of a currency region. Indicators without a fresh reading are absent.
type MacroFeed interface {
	Surprises(ctx context.Context, currency string) (map[string]float64, error)
}

// SeasonalityFeed returns the historical average return of an asset for a
// calendar month.
type SeasonalityFeed interface {
	MonthAvgReturn(ctx context.Context, asset string, month time.Month) (float64, error)
}
