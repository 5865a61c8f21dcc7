package scoring

import "testing"

func TestEcoScoreMixedSurprises(t *testing.T) {
	// 4 beats, 2 misses, rest absent
	got := ecoScore(map[string]float64{
		"gdp":               1.2,
		"manufacturing_pmi": 0.4,
		"services_pmi":      2.0,
		"retail_sales":      0.1,
		"ppi":               -0.3,
		"nfp":               -1.5,
	})
	if got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestEcoScoreTable(t *testing.T) {
	cases := []struct {
		name string
		in   map[string]float64
		want int
	}{
		{"nil map", nil, 0},
		{"empty map", map[string]float64{}, 0},
		{"zero surprise contributes nothing", map[string]float64{"cpi": 0}, 0},
		{"single beat", map[string]float64{"jolts": 0.01}, 1},
		{"single miss", map[string]float64{"unemployment": -0.2}, -1},
		{"magnitude is ignored", map[string]float64{"gdp": 9.9, "cpi": -0.01}, 0},
	}
	for _, tc := range cases {
		if got := ecoScore(tc.in); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestEcoScoreClampsAtFive(t *testing.T) {
	all := map[string]float64{
		"gdp": 1, "manufacturing_pmi": 1, "services_pmi": 1, "retail_sales": 1,
		"cpi": 1, "ppi": 1, "pce": 1, "interest_rates": 1, "consumer_confidence": 1,
		"nfp": 1, "unemployment": 1, "jobless_claims": 1, "adp": 1, "jolts": 1,
	}
	if got := ecoScore(all); got != 5 {
		t.Fatalf("expected clamp at 5, got %d", got)
	}
	for name := range all {
		all[name] = -1
	}
	if got := ecoScore(all); got != -5 {
		t.Fatalf("expected clamp at -5, got %d", got)
	}
}
