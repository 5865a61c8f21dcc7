package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
	domrepo "github.com/gman-top/Tradepilotx/internal/domain/repository"
	"github.com/gman-top/Tradepilotx/internal/scoring"
	"github.com/gman-top/Tradepilotx/pkg/config"
	"github.com/gman-top/Tradepilotx/pkg/logger"
)

// ConvictionService runs the scoring pipeline: build observations for the
// watchlist, score them, and fan the snapshots out to history storage and
// the event stream. Store, publisher and metrics are optional collaborators.
type ConvictionService struct {
	builder   *ObservationBuilder
	engine    *scoring.Engine
	store     domrepo.ScoreStore
	publisher domrepo.ScorePublisher
	metrics   domrepo.Metrics
	watchlist []config.Asset
	log       *logger.Logger
	now       func() time.Time
}

func NewConvictionService(
	builder *ObservationBuilder,
	engine *scoring.Engine,
	store domrepo.ScoreStore,
	publisher domrepo.ScorePublisher,
	metrics domrepo.Metrics,
	watchlist []config.Asset,
	log *logger.Logger,
) *ConvictionService {
	return &ConvictionService{
		builder:   builder,
		engine:    engine,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		watchlist: watchlist,
		log:       log,
		now:       time.Now,
	}
}

// ScoreObservation scores a caller-supplied observation without touching any
// feed. Used by the scoring endpoint for what-if requests.
func (s *ConvictionService) ScoreObservation(obs models.AssetObservation) (*models.ScoreReport, error) {
	report, err := s.engine.ScoreAsset(obs)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordError("score_observation")
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordScore(report.Symbol, report.TotalScore)
	}
	return report, nil
}

// ScoreSymbol builds a fresh observation for one watchlist asset and scores
// it. The snapshot is persisted and published best effort.
func (s *ConvictionService) ScoreSymbol(ctx context.Context, symbol string) (*models.ScoreReport, error) {
	asset, ok := s.findAsset(symbol)
	if !ok {
		return nil, fmt.Errorf("symbol %s not in watchlist", symbol)
	}

	start := s.now()
	obs, err := s.builder.Build(ctx, asset)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordError("build_observation")
		}
		return nil, fmt.Errorf("build observation: %w", err)
	}

	report, err := s.engine.ScoreAsset(obs)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordError("score_asset")
		}
		return nil, fmt.Errorf("score %s: %w", symbol, err)
	}

	if s.metrics != nil {
		s.metrics.RecordScore(report.Symbol, report.TotalScore)
		s.metrics.RecordLatency("score_symbol", s.now().Sub(start).Seconds())
	}

	s.emit(ctx, []*models.ScoreSnapshot{{ScoreReport: *report, ComputedAt: s.now().UTC()}})
	return report, nil
}

// ScanMarket scores the whole watchlist and returns entries ranked by total
// score, highest conviction first. Assets whose observation or scoring failed
// keep their slot at the tail with the error recorded.
func (s *ConvictionService) ScanMarket(ctx context.Context) ([]models.MarketEntry, error) {
	if len(s.watchlist) == 0 {
		return nil, fmt.Errorf("watchlist is empty")
	}

	start := s.now()
	observations := make([]models.AssetObservation, len(s.watchlist))
	buildErrs := make([]error, len(s.watchlist))

	var wg sync.WaitGroup
	for i, asset := range s.watchlist {
		wg.Add(1)
		go func(i int, asset config.Asset) {
			defer wg.Done()
			obs, err := s.builder.Build(ctx, asset)
			if err != nil {
				buildErrs[i] = err
				observations[i] = models.AssetObservation{Symbol: asset.Symbol}
				return
			}
			observations[i] = obs
		}(i, asset)
	}
	wg.Wait()

	// Split out assets whose observation never materialized; they must not
	// be scored against neutral defaults they did not earn.
	scorable := make([]models.AssetObservation, 0, len(observations))
	failed := make([]models.MarketEntry, 0)
	for i, obs := range observations {
		if buildErrs[i] != nil {
			failed = append(failed, models.MarketEntry{
				Symbol: s.watchlist[i].Symbol,
				Error:  buildErrs[i].Error(),
			})
			continue
		}
		scorable = append(scorable, obs)
	}

	results := s.engine.RankAssets(scorable)

	entries := make([]models.MarketEntry, 0, len(results)+len(failed))
	snapshots := make([]*models.ScoreSnapshot, 0, len(results))
	computedAt := s.now().UTC()
	failedCount := len(failed)
	for _, r := range results {
		entry := models.MarketEntry{Symbol: r.Symbol}
		if r.Err != nil {
			entry.Error = r.Err.Error()
			failedCount++
		} else {
			entry.Report = r.Report
			snapshots = append(snapshots, &models.ScoreSnapshot{ScoreReport: *r.Report, ComputedAt: computedAt})
			if s.metrics != nil {
				s.metrics.RecordScore(r.Symbol, r.Report.TotalScore)
			}
		}
		entries = append(entries, entry)
	}
	entries = append(entries, failed...)

	if s.metrics != nil {
		s.metrics.RecordScan(len(s.watchlist), failedCount)
		s.metrics.RecordLatency("scan_market", s.now().Sub(start).Seconds())
	}

	s.emit(ctx, snapshots)
	return entries, nil
}

// History returns persisted snapshots for a symbol, most recent first.
func (s *ConvictionService) History(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.ScoreSnapshot, error) {
	if s.store == nil {
		return nil, fmt.Errorf("history storage is disabled")
	}
	snapshots, err := s.store.Query(ctx, symbol, from, to, limit)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordError("history_query")
		}
		return nil, fmt.Errorf("query history %s: %w", symbol, err)
	}
	return snapshots, nil
}

// Watchlist returns the configured assets in scan order.
func (s *ConvictionService) Watchlist() []config.Asset {
	return s.watchlist
}

func (s *ConvictionService) findAsset(symbol string) (config.Asset, bool) {
	for _, a := range s.watchlist {
		if a.Symbol == symbol {
			return a, true
		}
	}
	return config.Asset{}, false
}

// emit persists and publishes snapshots best effort. Failures are logged and
// counted, never surfaced to the caller.
func (s *ConvictionService) emit(ctx context.Context, snapshots []*models.ScoreSnapshot) {
	if len(snapshots) == 0 {
		return
	}
	if s.store != nil {
		if err := s.store.StoreBatch(ctx, snapshots); err != nil {
			if s.metrics != nil {
				s.metrics.RecordError("store_snapshots")
			}
			if s.log != nil {
				s.log.Error("store snapshots", logger.Error(err), logger.Int("count", len(snapshots)))
			}
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishBatch(ctx, snapshots); err != nil {
			if s.metrics != nil {
				s.metrics.RecordError("publish_snapshots")
			}
			if s.log != nil {
				s.log.Error("publish snapshots", logger.Error(err), logger.Int("count", len(snapshots)))
			}
		}
	}
}
