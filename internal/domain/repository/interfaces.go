package repository

import (
	"context"
	"time"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
)

// ScoreStore persists computed score snapshots for history queries.
// Persistence is a collaborator concern; the scoring core never touches it.
type ScoreStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, s *models.ScoreSnapshot) error
	StoreBatch(ctx context.Context, snapshots []*models.ScoreSnapshot) error
	Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.ScoreSnapshot, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// ScorePublisher emits score snapshots to downstream consumers.
type ScorePublisher interface {
	Publish(ctx context.Context, s *models.ScoreSnapshot) error
	PublishBatch(ctx context.Context, snapshots []*models.ScoreSnapshot) error
	Close() error
}

// Metrics records operational measurements of the scoring pipeline.
type Metrics interface {
	RecordScore(symbol string, total int)
	RecordScan(assets, failed int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
