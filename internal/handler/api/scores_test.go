package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
	"github.com/gman-top/Tradepilotx/internal/scoring"
	"github.com/gman-top/Tradepilotx/internal/usecase"
	"github.com/gman-top/Tradepilotx/pkg/config"
)

type fakePriceFeed struct{ summaries map[string]models.PriceSummary }

func (f *fakePriceFeed) Summary(_ context.Context, ticker string) (models.PriceSummary, error) {
	return f.summaries[ticker], nil
}

type fakePositioningFeed struct{}

func (f *fakePositioningFeed) Positioning(context.Context, string) (models.InstitutionalPositioning, error) {
	return models.InstitutionalPositioning{PercLong: 50}, nil
}

type fakeRetailFeed struct{}

func (f *fakeRetailFeed) LongPercent(context.Context, string) (float64, error) { return 50, nil }

type fakeMacroFeed struct{}

func (f *fakeMacroFeed) Surprises(context.Context, string) (map[string]float64, error) {
	return nil, nil
}

type fakeSeasonalityFeed struct{}

func (f *fakeSeasonalityFeed) MonthAvgReturn(context.Context, string, time.Month) (float64, error) {
	return 0, nil
}

func newTestHandler() *ScoresHandler {
	watchlist := []config.Asset{
		{Symbol: "XAUUSD", Ticker: "GC=F", Currency: "USD"},
		{Symbol: "EURUSD", Ticker: "EURUSD=X", Currency: "EUR"},
	}
	price := &fakePriceFeed{summaries: map[string]models.PriceSummary{
		"GC=F":     {Price: 110, ChangePct: 0.2, SMA: map[int]float64{50: 104, 200: 100}},
		"EURUSD=X": {Price: 90, ChangePct: -0.2, SMA: map[int]float64{50: 96, 200: 100}},
	}}
	builder := usecase.NewObservationBuilder(price, &fakePositioningFeed{}, &fakeRetailFeed{}, &fakeMacroFeed{}, &fakeSeasonalityFeed{}, nil)
	svc := usecase.NewConvictionService(builder, scoring.NewDefaultEngine(), nil, nil, nil, watchlist, nil)
	return NewScoresHandler(svc, "test")
}

func doRequest(h *ScoresHandler, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := doRequest(newTestHandler(), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tradepilotx") {
		t.Errorf("body missing service name: %s", rec.Body.String())
	}
}

func TestMarketEndpointRanked(t *testing.T) {
	rec := doRequest(newTestHandler(), http.MethodGet, "/api/v1/market", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data []models.MarketEntry `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("len(data) = %d, want 2", len(resp.Data))
	}
	if resp.Data[0].Symbol != "XAUUSD" {
		t.Errorf("top symbol = %q, want XAUUSD", resp.Data[0].Symbol)
	}
	if resp.Data[0].Report.TotalScore < resp.Data[1].Report.TotalScore {
		t.Error("entries not ranked descending")
	}
}

func TestAssetEndpoint(t *testing.T) {
	rec := doRequest(newTestHandler(), http.MethodGet, "/api/v1/asset/XAUUSD", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data models.ScoreReport `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Symbol != "XAUUSD" {
		t.Errorf("symbol = %q, want XAUUSD", resp.Data.Symbol)
	}
}

func TestScoreEndpointValidObservation(t *testing.T) {
	body := `{
        "symbol": "XAUUSD",
        "technical": {"trend": "Bullish", "above_sma": {"20": true, "50": true, "100": true, "200": true}},
        "institutional": {"positioning": "Bullish", "weekly_change_pct": 3.0},
        "retail": {"long_pct": 30},
        "economic": {"cpi": 0.5},
        "seasonality": {"month_avg_return_pct": 1.4}
    }`
	rec := doRequest(newTestHandler(), http.MethodPost, "/api/v1/score", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data models.ScoreReport `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.TechnicalScore != 3 {
		t.Errorf("technical = %d, want 3", resp.Data.TechnicalScore)
	}
	if resp.Data.Bias != models.BiasVeryBullish {
		t.Errorf("bias = %q, want %q", resp.Data.Bias, models.BiasVeryBullish)
	}
}

func TestScoreEndpointRejectsMalformedObservation(t *testing.T) {
	body := `{"symbol": "XAUUSD", "technical": {"trend": "Sideways"}}`
	rec := doRequest(newTestHandler(), http.MethodPost, "/api/v1/score", body)
	// Errors travel inside the response envelope; transport stays 200.
	if rec.Code != http.StatusOK {
		t.Fatalf("transport status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status int `json:"status"`
		Data   []struct {
			Code    string `json:"code"`
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400: %s", resp.Status, rec.Body.String())
	}
	if len(resp.Data) != 1 {
		t.Fatalf("len(data) = %d, want 1 validation error", len(resp.Data))
	}
	if resp.Data[0].Field != "technical.trend" {
		t.Errorf("field = %q, want technical.trend", resp.Data[0].Field)
	}
	if !strings.Contains(resp.Data[0].Message, "Sideways") {
		t.Errorf("message = %q, want the rejected label named", resp.Data[0].Message)
	}
}

func TestHistoryEndpointDisabledStorage(t *testing.T) {
	rec := doRequest(newTestHandler(), http.MethodGet, "/api/v1/asset/XAUUSD/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("transport status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != http.StatusInternalServerError {
		t.Errorf("envelope status = %d, want 500 when storage disabled", resp.Status)
	}
}
