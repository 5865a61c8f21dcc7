package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
	"github.com/gman-top/Tradepilotx/internal/scoring"
	"github.com/gman-top/Tradepilotx/pkg/config"
)

type memoryStore struct {
	mu        sync.Mutex
	snapshots []*models.ScoreSnapshot
	err       error
}

func (m *memoryStore) Init(context.Context) error { return nil }

func (m *memoryStore) Store(_ context.Context, s *models.ScoreSnapshot) error {
	return m.StoreBatch(nil, []*models.ScoreSnapshot{s})
}

func (m *memoryStore) StoreBatch(_ context.Context, snapshots []*models.ScoreSnapshot) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	m.snapshots = append(m.snapshots, snapshots...)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Query(_ context.Context, symbol string, _, _ time.Time, limit int) ([]*models.ScoreSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.ScoreSnapshot
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.snapshots {
		if s.Symbol == symbol {
			out = append(out, s)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memoryStore) Health(context.Context) error { return nil }
func (m *memoryStore) Close() error                 { return nil }

type memoryPublisher struct {
	mu        sync.Mutex
	published []*models.ScoreSnapshot
}

func (p *memoryPublisher) Publish(_ context.Context, s *models.ScoreSnapshot) error {
	return p.PublishBatch(nil, []*models.ScoreSnapshot{s})
}

func (p *memoryPublisher) PublishBatch(_ context.Context, snapshots []*models.ScoreSnapshot) error {
	p.mu.Lock()
	p.published = append(p.published, snapshots...)
	p.mu.Unlock()
	return nil
}

func (p *memoryPublisher) Close() error { return nil }

// multiPriceFeed serves a different summary per ticker.
type multiPriceFeed struct {
	summaries map[string]models.PriceSummary
	errs      map[string]error
}

func (f *multiPriceFeed) Summary(_ context.Context, ticker string) (models.PriceSummary, error) {
	if err, ok := f.errs[ticker]; ok {
		return models.PriceSummary{}, err
	}
	return f.summaries[ticker], nil
}

func watchlist() []config.Asset {
	return []config.Asset{
		{Symbol: "XAUUSD", Ticker: "GC=F", Currency: "USD"},
		{Symbol: "EURUSD", Ticker: "EURUSD=X", Currency: "EUR"},
		{Symbol: "SPX500", Ticker: "^GSPC", Currency: "USD"},
	}
}

func newTestService(price *multiPriceFeed, store *memoryStore, pub *memoryPublisher) *ConvictionService {
	builder := NewObservationBuilder(
		price,
		&stubPositioningFeed{pos: models.InstitutionalPositioning{PercLong: 50}},
		&stubRetailFeed{longPct: 50},
		&stubMacroFeed{},
		&stubSeasonalityFeed{},
		nil,
	)
	return NewConvictionService(builder, scoring.NewDefaultEngine(), store, pub, nil, watchlist(), nil)
}

func strongSummary() models.PriceSummary {
	return models.PriceSummary{Price: 110, ChangePct: 0.2, SMA: map[int]float64{20: 105, 50: 104, 100: 102, 200: 100}}
}

func weakSummary() models.PriceSummary {
	return models.PriceSummary{Price: 90, ChangePct: -0.2, SMA: map[int]float64{20: 95, 50: 96, 100: 98, 200: 100}}
}

func flatSummary() models.PriceSummary {
	return models.PriceSummary{Price: 100, ChangePct: 0.1, SMA: map[int]float64{50: 101, 200: 99}}
}

func TestScanMarketRanksByTotalDescending(t *testing.T) {
	price := &multiPriceFeed{summaries: map[string]models.PriceSummary{
		"GC=F":     weakSummary(),
		"EURUSD=X": strongSummary(),
		"^GSPC":    flatSummary(),
	}}
	store := &memoryStore{}
	pub := &memoryPublisher{}
	svc := newTestService(price, store, pub)

	entries, err := svc.ScanMarket(context.Background())
	if err != nil {
		t.Fatalf("ScanMarket returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Report.TotalScore < entries[i].Report.TotalScore {
			t.Errorf("entries not sorted descending at %d: %d < %d",
				i, entries[i-1].Report.TotalScore, entries[i].Report.TotalScore)
		}
	}
	if entries[0].Symbol != "EURUSD" {
		t.Errorf("top symbol = %q, want EURUSD", entries[0].Symbol)
	}
	if entries[len(entries)-1].Symbol != "XAUUSD" {
		t.Errorf("bottom symbol = %q, want XAUUSD", entries[len(entries)-1].Symbol)
	}
	if len(store.snapshots) != 3 {
		t.Errorf("stored %d snapshots, want 3", len(store.snapshots))
	}
	if len(pub.published) != 3 {
		t.Errorf("published %d snapshots, want 3", len(pub.published))
	}
}

func TestScanMarketFailedAssetsTrail(t *testing.T) {
	price := &multiPriceFeed{
		summaries: map[string]models.PriceSummary{
			"GC=F":  strongSummary(),
			"^GSPC": flatSummary(),
		},
		errs: map[string]error{"EURUSD=X": errors.New("provider down")},
	}
	store := &memoryStore{}
	svc := newTestService(price, store, &memoryPublisher{})

	entries, err := svc.ScanMarket(context.Background())
	if err != nil {
		t.Fatalf("ScanMarket returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	last := entries[len(entries)-1]
	if last.Symbol != "EURUSD" {
		t.Errorf("trailing symbol = %q, want EURUSD", last.Symbol)
	}
	if last.Report != nil || last.Error == "" {
		t.Errorf("trailing entry = %+v, want nil report with error", last)
	}
	for _, e := range entries[:2] {
		if e.Report == nil || e.Error != "" {
			t.Errorf("scored entry %s missing report", e.Symbol)
		}
	}
	if len(store.snapshots) != 2 {
		t.Errorf("stored %d snapshots, want 2", len(store.snapshots))
	}
}

func TestScoreSymbolUnknownSymbol(t *testing.T) {
	svc := newTestService(&multiPriceFeed{}, &memoryStore{}, &memoryPublisher{})
	if _, err := svc.ScoreSymbol(context.Background(), "BTCUSD"); err == nil {
		t.Fatal("expected error for symbol outside watchlist")
	}
}

func TestScoreSymbolPersistsSnapshot(t *testing.T) {
	price := &multiPriceFeed{summaries: map[string]models.PriceSummary{"GC=F": strongSummary()}}
	store := &memoryStore{}
	pub := &memoryPublisher{}
	svc := newTestService(price, store, pub)

	report, err := svc.ScoreSymbol(context.Background(), "XAUUSD")
	if err != nil {
		t.Fatalf("ScoreSymbol returned error: %v", err)
	}
	if report.Symbol != "XAUUSD" {
		t.Errorf("report symbol = %q, want XAUUSD", report.Symbol)
	}
	if len(store.snapshots) != 1 {
		t.Fatalf("stored %d snapshots, want 1", len(store.snapshots))
	}
	snap := store.snapshots[0]
	if snap.TotalScore != report.TotalScore {
		t.Errorf("snapshot total = %d, want %d", snap.TotalScore, report.TotalScore)
	}
	if snap.ComputedAt.IsZero() {
		t.Error("snapshot ComputedAt is zero")
	}
	if len(pub.published) != 1 {
		t.Errorf("published %d snapshots, want 1", len(pub.published))
	}
}

func TestScoreSymbolStoreFailureDoesNotFailRequest(t *testing.T) {
	price := &multiPriceFeed{summaries: map[string]models.PriceSummary{"GC=F": strongSummary()}}
	store := &memoryStore{err: errors.New("clickhouse down")}
	svc := newTestService(price, store, &memoryPublisher{})

	if _, err := svc.ScoreSymbol(context.Background(), "XAUUSD"); err != nil {
		t.Fatalf("ScoreSymbol returned error: %v", err)
	}
}

func TestScoreObservationValidationError(t *testing.T) {
	svc := newTestService(&multiPriceFeed{}, &memoryStore{}, &memoryPublisher{})

	obs := models.AssetObservation{} // blank symbol
	_, err := svc.ScoreObservation(obs)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *scoring.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *scoring.ValidationError", err)
	}
}

func TestHistoryDisabled(t *testing.T) {
	builder := NewObservationBuilder(&multiPriceFeed{}, nil, nil, nil, nil, nil)
	svc := NewConvictionService(builder, scoring.NewDefaultEngine(), nil, nil, nil, watchlist(), nil)

	if _, err := svc.History(context.Background(), "XAUUSD", time.Time{}, time.Time{}, 10); err == nil {
		t.Fatal("expected error when history storage is disabled")
	}
}
