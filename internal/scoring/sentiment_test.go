package scoring

import (
	"testing"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
)

func pct(v float64) *float64 { return &v }

func TestSentimentScoreAllBearish(t *testing.T) {
	got := sentimentScore(
		models.InstitutionalObservation{Positioning: models.PositioningBearish, WeeklyChangePct: -3.0},
		models.RetailObservation{LongPct: pct(75)},
	)
	if got != -2 {
		t.Fatalf("expected -2 (clamped from -3), got %d", got)
	}
}

func TestSentimentScoreTable(t *testing.T) {
	cases := []struct {
		name   string
		inst   models.InstitutionalObservation
		retail models.RetailObservation
		want   int
	}{
		{"all neutral", models.InstitutionalObservation{}, models.RetailObservation{}, 0},
		{"bullish positioning only", models.InstitutionalObservation{Positioning: models.PositioningBullish}, models.RetailObservation{}, 1},
		{"weekly change above gate", models.InstitutionalObservation{WeeklyChangePct: 2.5}, models.RetailObservation{}, 1},
		{"weekly change at gate is neutral", models.InstitutionalObservation{WeeklyChangePct: 2.0}, models.RetailObservation{}, 0},
		{"crowd short is bullish", models.InstitutionalObservation{}, models.RetailObservation{LongPct: pct(35)}, 1},
		{"crowd long is bearish", models.InstitutionalObservation{}, models.RetailObservation{LongPct: pct(61)}, -1},
		{"crowd at 60 is neutral", models.InstitutionalObservation{}, models.RetailObservation{LongPct: pct(60)}, 0},
		{"missing retail reads balanced", models.InstitutionalObservation{Positioning: models.PositioningBullish}, models.RetailObservation{}, 1},
		{"all bullish clamps at 2", models.InstitutionalObservation{Positioning: models.PositioningBullish, WeeklyChangePct: 4.2}, models.RetailObservation{LongPct: pct(20)}, 2},
	}
	for _, tc := range cases {
		if got := sentimentScore(tc.inst, tc.retail); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

// Raising the crowd's long side must never raise the score.
func TestSentimentScoreContrarianDirection(t *testing.T) {
	inst := models.InstitutionalObservation{Positioning: models.PositioningBullish}
	at59 := sentimentScore(inst, models.RetailObservation{LongPct: pct(59)})
	at61 := sentimentScore(inst, models.RetailObservation{LongPct: pct(61)})
	if at61 > at59 {
		t.Fatalf("score increased with crowd long: 59%%=%d 61%%=%d", at59, at61)
	}
}
