package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
	domsvc "github.com/gman-top/Tradepilotx/internal/domain/service"
	"github.com/gman-top/Tradepilotx/pkg/config"
	"github.com/gman-top/Tradepilotx/pkg/logger"
)

// Volatility buckets from the absolute daily change percent.
const (
	highVolChangePct   = 1.5
	normalVolChangePct = 0.5
)

// Institutional positioning bands on percent of contracts long.
const (
	positioningLongPct  = 60.0
	positioningShortPct = 40.0
)

// ObservationBuilder assembles a complete AssetObservation from the upstream
// feeds. The price feed is mandatory; the remaining feeds degrade to neutral
// defaults when unavailable, so one flaky source does not sink a whole scan.
type ObservationBuilder struct {
	price       domsvc.PriceFeed
	positioning domsvc.PositioningFeed
	retail      domsvc.RetailSentimentFeed
	macro       domsvc.MacroFeed
	seasonality domsvc.SeasonalityFeed
	log         *logger.Logger
	now         func() time.Time
}

func NewObservationBuilder(
	price domsvc.PriceFeed,
	positioning domsvc.PositioningFeed,
	retail domsvc.RetailSentimentFeed,
	macro domsvc.MacroFeed,
	seasonality domsvc.SeasonalityFeed,
	log *logger.Logger,
) *ObservationBuilder {
	return &ObservationBuilder{
		price:       price,
		positioning: positioning,
		retail:      retail,
		macro:       macro,
		seasonality: seasonality,
		log:         log,
		now:         time.Now,
	}
}

// Build fetches every slice of market intelligence for one asset and folds
// it into an observation ready for scoring.
func (b *ObservationBuilder) Build(ctx context.Context, asset config.Asset) (models.AssetObservation, error) {
	summary, err := b.price.Summary(ctx, asset.Ticker)
	if err != nil {
		return models.AssetObservation{}, fmt.Errorf("price summary %s: %w", asset.Symbol, err)
	}

	obs := models.AssetObservation{
		Symbol:    asset.Symbol,
		Technical: buildTechnical(summary),
	}

	if b.positioning != nil {
		pos, err := b.positioning.Positioning(ctx, asset.Symbol)
		if err != nil {
			b.warn(asset.Symbol, "positioning", err)
		} else {
			obs.Institutional = models.InstitutionalObservation{
				Positioning:     positioningLabel(pos.PercLong),
				WeeklyChangePct: pos.WeeklyChangePct,
			}
		}
	}

	if b.retail != nil {
		longPct, err := b.retail.LongPercent(ctx, asset.Symbol)
		if err != nil {
			b.warn(asset.Symbol, "retail", err)
		} else {
			obs.Retail = models.RetailObservation{LongPct: &longPct}
		}
	}

	if b.macro != nil && asset.Currency != "" {
		surprises, err := b.macro.Surprises(ctx, asset.Currency)
		if err != nil {
			b.warn(asset.Symbol, "macro", err)
		} else {
			obs.Economic = surprises
		}
	}

	if b.seasonality != nil {
		avg, err := b.seasonality.MonthAvgReturn(ctx, asset.Symbol, b.now().Month())
		if err != nil {
			b.warn(asset.Symbol, "seasonality", err)
		} else {
			obs.Seasonality = models.SeasonalityObservation{MonthAvgReturnPct: avg}
		}
	}

	return obs, nil
}

func (b *ObservationBuilder) warn(symbol, feed string, err error) {
	if b.log == nil {
		return
	}
	b.log.Warn("feed degraded to neutral",
		logger.String("symbol", symbol),
		logger.String("feed", feed),
		logger.Error(err),
	)
}

func buildTechnical(s models.PriceSummary) models.TechnicalObservation {
	t := models.TechnicalObservation{
		Trend:      trendLabel(s),
		Volatility: volatilityLabel(s.ChangePct),
	}
	if len(s.SMA) > 0 {
		t.AboveSMA = make(map[int]bool, len(s.SMA))
		for _, period := range models.SMAPeriods {
			v, ok := s.SMA[period]
			if !ok {
				continue
			}
			t.AboveSMA[period] = s.Price > v
		}
	}
	return t
}

// trendLabel derives the primary trend from price versus the 200-period SMA,
// confirmed by the 50/200 relationship. Without both SMAs the trend is
// unknown and stays neutral.
func trendLabel(s models.PriceSummary) models.Trend {
	sma50, ok50 := s.SMA[50]
	sma200, ok200 := s.SMA[200]
	if !ok50 || !ok200 {
		return models.TrendNeutral
	}
	switch {
	case s.Price > sma200 && sma50 > sma200:
		return models.TrendBullish
	case s.Price < sma200 && sma50 < sma200:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}

func volatilityLabel(changePct float64) models.Volatility {
	abs := changePct
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= highVolChangePct:
		return models.VolatilityHigh
	case abs >= normalVolChangePct:
		return models.VolatilityNormal
	default:
		return models.VolatilityLow
	}
}

func positioningLabel(percLong float64) models.Positioning {
	switch {
	case percLong >= positioningLongPct:
		return models.PositioningBullish
	case percLong <= positioningShortPct:
		return models.PositioningBearish
	default:
		return models.PositioningNeutral
	}
}
