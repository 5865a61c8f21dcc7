package scoring

import (
	"testing"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
)

func allAbove() map[int]bool {
	return map[int]bool{20: true, 50: true, 100: true, 200: true}
}

func allBelow() map[int]bool {
	return map[int]bool{20: false, 50: false, 100: false, 200: false}
}

func TestTechnicalScoreBullishNormalVol(t *testing.T) {
	got := technicalScore(models.TechnicalObservation{
		Trend:      models.TrendBullish,
		AboveSMA:   allAbove(),
		Volatility: models.VolatilityNormal,
	})
	if got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestTechnicalScoreHighVolDamping(t *testing.T) {
	// raw 2 + 1 = 3, damped to 2.4, rounds to 2
	got := technicalScore(models.TechnicalObservation{
		Trend:      models.TrendBullish,
		AboveSMA:   allAbove(),
		Volatility: models.VolatilityHigh,
	})
	if got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestTechnicalScoreTable(t *testing.T) {
	cases := []struct {
		name string
		in   models.TechnicalObservation
		want int
	}{
		{"empty defaults to neutral", models.TechnicalObservation{}, 0},
		{"bearish all below", models.TechnicalObservation{Trend: models.TrendBearish, AboveSMA: allBelow()}, -3},
		{"bearish all below high vol", models.TechnicalObservation{Trend: models.TrendBearish, AboveSMA: allBelow(), Volatility: models.VolatilityHigh}, -2},
		{"neutral trend mixed smas", models.TechnicalObservation{Trend: models.TrendNeutral, AboveSMA: map[int]bool{20: true, 50: true, 100: false, 200: false}}, 0},
		{"smas only all above", models.TechnicalObservation{AboveSMA: allAbove()}, 1},
		{"partial sma map", models.TechnicalObservation{Trend: models.TrendBullish, AboveSMA: map[int]bool{200: true}}, 2},
		{"low vol no damping", models.TechnicalObservation{Trend: models.TrendBullish, Volatility: models.VolatilityLow}, 2},
	}
	for _, tc := range cases {
		if got := technicalScore(tc.in); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestTechnicalScoreBounds(t *testing.T) {
	ins := []models.TechnicalObservation{
		{Trend: models.TrendBullish, AboveSMA: allAbove()},
		{Trend: models.TrendBearish, AboveSMA: allBelow()},
		{Trend: models.TrendBullish, AboveSMA: allBelow(), Volatility: models.VolatilityHigh},
	}
	for _, in := range ins {
		got := technicalScore(in)
		if got < -3 || got > 3 {
			t.Fatalf("score %d outside [-3,3] for %+v", got, in)
		}
	}
}

func TestTechnicalScoreRoundsHalfAwayFromZero(t *testing.T) {
	// trend +2 with two SMAs below: 2 - 0.5 = 1.5 rounds to 2
	got := technicalScore(models.TechnicalObservation{
		Trend:    models.TrendBullish,
		AboveSMA: map[int]bool{20: false, 50: false},
	})
	if got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}
