package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const baseConfig = `
environment: test
watchlist:
  - symbol: XAUUSD
    ticker: GC=F
    currency: USD
feeds:
  intel_service_url: http://localhost:9000
`

func TestWeightsDefaultToUnitWhenUnset(t *testing.T) {
	cfg, err := Load(writeConfig(t, baseConfig))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	technical, sentiment, eco, seasonality := cfg.Weights()
	for name, w := range map[string]float64{
		"technical": technical, "sentiment": sentiment, "eco": eco, "seasonality": seasonality,
	} {
		if w != 1.0 {
			t.Errorf("%s weight = %v, want 1.0", name, w)
		}
	}
}

func TestWeightsExplicitZeroIsHonored(t *testing.T) {
	cfg, err := Load(writeConfig(t, baseConfig+`
scoring:
  technical_weight: 0.0
  eco_weight: 2.5
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	technical, sentiment, eco, seasonality := cfg.Weights()
	if technical != 0.0 {
		t.Errorf("technical weight = %v, want 0.0 (explicit zero disables the factor)", technical)
	}
	if eco != 2.5 {
		t.Errorf("eco weight = %v, want 2.5", eco)
	}
	if sentiment != 1.0 || seasonality != 1.0 {
		t.Errorf("unset weights = %v, %v, want 1.0 each", sentiment, seasonality)
	}
}

func TestValidateRejectsDuplicateWatchlistSymbols(t *testing.T) {
	_, err := Load(writeConfig(t, `
environment: test
watchlist:
  - symbol: XAUUSD
    ticker: GC=F
  - symbol: XAUUSD
    ticker: XAUUSD=X
feeds:
  intel_service_url: http://localhost:9000
`))
	if err == nil {
		t.Fatal("expected duplicate-symbol error")
	}
}
