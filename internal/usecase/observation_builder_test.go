package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
	"github.com/gman-top/Tradepilotx/pkg/config"
)

type stubPriceFeed struct {
	summary models.PriceSummary
	err     error
}

func (s *stubPriceFeed) Summary(_ context.Context, _ string) (models.PriceSummary, error) {
	return s.summary, s.err
}

type stubPositioningFeed struct {
	pos models.InstitutionalPositioning
	err error
}

func (s *stubPositioningFeed) Positioning(_ context.Context, _ string) (models.InstitutionalPositioning, error) {
	return s.pos, s.err
}

type stubRetailFeed struct {
	longPct float64
	err     error
}

func (s *stubRetailFeed) LongPercent(_ context.Context, _ string) (float64, error) {
	return s.longPct, s.err
}

type stubMacroFeed struct {
	surprises map[string]float64
	err       error
}

func (s *stubMacroFeed) Surprises(_ context.Context, _ string) (map[string]float64, error) {
	return s.surprises, s.err
}

type stubSeasonalityFeed struct {
	avg float64
	err error
}

func (s *stubSeasonalityFeed) MonthAvgReturn(_ context.Context, _ string, _ time.Month) (float64, error) {
	return s.avg, s.err
}

func bullishSummary() models.PriceSummary {
	return models.PriceSummary{
		Ticker:    "GC=F",
		Price:     2400,
		ChangePct: 0.8,
		SMA:       map[int]float64{20: 2380, 50: 2350, 100: 2300, 200: 2250},
	}
}

func testAsset() config.Asset {
	return config.Asset{Symbol: "XAUUSD", Ticker: "GC=F", Currency: "USD"}
}

func newTestBuilder(price *stubPriceFeed, pos *stubPositioningFeed, retail *stubRetailFeed, macro *stubMacroFeed, seas *stubSeasonalityFeed) *ObservationBuilder {
	return NewObservationBuilder(price, pos, retail, macro, seas, nil)
}

func TestBuildFullObservation(t *testing.T) {
	b := newTestBuilder(
		&stubPriceFeed{summary: bullishSummary()},
		&stubPositioningFeed{pos: models.InstitutionalPositioning{PercLong: 65, WeeklyChangePct: 3.1}},
		&stubRetailFeed{longPct: 35},
		&stubMacroFeed{surprises: map[string]float64{"cpi": 0.4, "nfp": -0.2}},
		&stubSeasonalityFeed{avg: 1.2},
	)

	obs, err := b.Build(context.Background(), testAsset())
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if obs.Symbol != "XAUUSD" {
		t.Errorf("symbol = %q, want XAUUSD", obs.Symbol)
	}
	if obs.Technical.Trend != models.TrendBullish {
		t.Errorf("trend = %q, want bullish", obs.Technical.Trend)
	}
	for _, p := range models.SMAPeriods {
		above, ok := obs.Technical.AboveSMA[p]
		if !ok || !above {
			t.Errorf("AboveSMA[%d] = %v,%v, want true,true", p, above, ok)
		}
	}
	if obs.Technical.Volatility != models.VolatilityNormal {
		t.Errorf("volatility = %q, want normal", obs.Technical.Volatility)
	}
	if obs.Institutional.Positioning != models.PositioningBullish {
		t.Errorf("positioning = %q, want bullish", obs.Institutional.Positioning)
	}
	if obs.Institutional.WeeklyChangePct != 3.1 {
		t.Errorf("weekly change = %v, want 3.1", obs.Institutional.WeeklyChangePct)
	}
	if obs.Retail.LongPct == nil || *obs.Retail.LongPct != 35 {
		t.Errorf("retail long pct = %v, want 35", obs.Retail.LongPct)
	}
	if obs.Economic["cpi"] != 0.4 {
		t.Errorf("cpi surprise = %v, want 0.4", obs.Economic["cpi"])
	}
	if obs.Seasonality.MonthAvgReturnPct != 1.2 {
		t.Errorf("seasonality = %v, want 1.2", obs.Seasonality.MonthAvgReturnPct)
	}
}

func TestBuildPriceFeedFailureIsFatal(t *testing.T) {
	b := newTestBuilder(
		&stubPriceFeed{err: errors.New("provider down")},
		&stubPositioningFeed{},
		&stubRetailFeed{},
		&stubMacroFeed{},
		&stubSeasonalityFeed{},
	)

	if _, err := b.Build(context.Background(), testAsset()); err == nil {
		t.Fatal("expected error when price feed fails")
	}
}

func TestBuildSecondaryFeedFailuresDegradeToNeutral(t *testing.T) {
	down := errors.New("provider down")
	b := newTestBuilder(
		&stubPriceFeed{summary: bullishSummary()},
		&stubPositioningFeed{err: down},
		&stubRetailFeed{err: down},
		&stubMacroFeed{err: down},
		&stubSeasonalityFeed{err: down},
	)

	obs, err := b.Build(context.Background(), testAsset())
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if obs.Institutional.Positioning != "" {
		t.Errorf("positioning = %q, want empty neutral default", obs.Institutional.Positioning)
	}
	if obs.Retail.LongPct != nil {
		t.Errorf("retail long pct = %v, want nil", obs.Retail.LongPct)
	}
	if obs.Economic != nil {
		t.Errorf("economic = %v, want nil", obs.Economic)
	}
	if obs.Seasonality.MonthAvgReturnPct != 0 {
		t.Errorf("seasonality = %v, want 0", obs.Seasonality.MonthAvgReturnPct)
	}
}

func TestTrendLabel(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		sma     map[int]float64
		want    models.Trend
	}{
		{"above both", 110, map[int]float64{50: 105, 200: 100}, models.TrendBullish},
		{"below both", 90, map[int]float64{50: 95, 200: 100}, models.TrendBearish},
		{"mixed", 110, map[int]float64{50: 95, 200: 100}, models.TrendNeutral},
		{"missing sma", 110, map[int]float64{50: 105}, models.TrendNeutral},
		{"no sma", 110, nil, models.TrendNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trendLabel(models.PriceSummary{Price: tt.price, SMA: tt.sma})
			if got != tt.want {
				t.Errorf("trendLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVolatilityLabel(t *testing.T) {
	tests := []struct {
		change float64
		want   models.Volatility
	}{
		{0.2, models.VolatilityLow},
		{-0.3, models.VolatilityLow},
		{0.5, models.VolatilityNormal},
		{-1.2, models.VolatilityNormal},
		{1.5, models.VolatilityHigh},
		{-2.4, models.VolatilityHigh},
	}
	for _, tt := range tests {
		if got := volatilityLabel(tt.change); got != tt.want {
			t.Errorf("volatilityLabel(%v) = %q, want %q", tt.change, got, tt.want)
		}
	}
}

func TestPositioningLabel(t *testing.T) {
	tests := []struct {
		percLong float64
		want     models.Positioning
	}{
		{65, models.PositioningBullish},
		{60, models.PositioningBullish},
		{59.9, models.PositioningNeutral},
		{50, models.PositioningNeutral},
		{40.1, models.PositioningNeutral},
		{40, models.PositioningBearish},
		{30, models.PositioningBearish},
	}
	for _, tt := range tests {
		if got := positioningLabel(tt.percLong); got != tt.want {
			t.Errorf("positioningLabel(%v) = %q, want %q", tt.percLong, got, tt.want)
		}
	}
}
