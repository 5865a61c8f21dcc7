package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
	domrepo "github.com/gman-top/Tradepilotx/internal/domain/repository"
	pkgch "github.com/gman-top/Tradepilotx/pkg/clickhouse"
	applogger "github.com/gman-top/Tradepilotx/pkg/logger"
)

// CHScoreStore implements ScoreStore backed by ClickHouse.
type CHScoreStore struct {
	client *pkgch.Client
	table  string
	l      *applogger.Logger
}

func NewCHScoreStore(client *pkgch.Client, table string) *CHScoreStore {
	if table == "" {
		table = "conviction_scores"
	}
	return &CHScoreStore{client: client, table: table}
}

// SetLogger injects a structured logger.
func (s *CHScoreStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHScoreStore) Init(ctx context.Context) error {
	stmt := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            computed_at DateTime64(3, 'UTC'),
            symbol String,
            technical_score Int32,
            sentiment_score Int32,
            eco_score Int32,
            seasonality_score Int32,
            total_score Int32,
            bias String,
            breakdown String
        ) ENGINE = MergeTree()
        PARTITION BY toYYYYMM(computed_at)
        ORDER BY (symbol, computed_at)
    `, s.table)
	if err := s.client.InitSchema(ctx, []string{stmt}); err != nil {
		return fmt.Errorf("init score schema: %w", err)
	}
	return nil
}

func (s *CHScoreStore) Store(ctx context.Context, snap *models.ScoreSnapshot) error {
	return s.StoreBatch(ctx, []*models.ScoreSnapshot{snap})
}

func (s *CHScoreStore) StoreBatch(ctx context.Context, snapshots []*models.ScoreSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	start := time.Now()

	values := make([]string, 0, len(snapshots))
	args := make([]interface{}, 0, len(snapshots)*9)
	for _, snap := range snapshots {
		if snap == nil || snap.Symbol == "" {
			continue
		}
		breakdown, err := json.Marshal(snap.Breakdown)
		if err != nil {
			return fmt.Errorf("marshal breakdown %s: %w", snap.Symbol, err)
		}
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			snap.ComputedAt,
			snap.Symbol,
			snap.TechnicalScore,
			snap.SentimentScore,
			snap.EcoScore,
			snap.SeasonalityScore,
			snap.TotalScore,
			snap.Bias,
			string(breakdown),
		)
	}
	if len(values) == 0 {
		return nil
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (computed_at, symbol, technical_score, sentiment_score, eco_score, seasonality_score, total_score, bias, breakdown) VALUES %s",
		s.table, strings.Join(values, ","),
	)
	if _, err := s.client.DB().ExecContext(ctx, q, args...); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse store_scores error",
				applogger.String("table", s.table),
				applogger.Int("rows", len(values)),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("store scores: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse store_scores ok",
			applogger.String("table", s.table),
			applogger.Int("rows", len(values)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHScoreStore) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.ScoreSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	if to.IsZero() {
		to = time.Now().UTC()
	}

	q := fmt.Sprintf(`
        SELECT computed_at, symbol, technical_score, sentiment_score, eco_score, seasonality_score, total_score, bias, breakdown
        FROM %s
        WHERE symbol = ? AND computed_at >= ? AND computed_at <= ?
        ORDER BY computed_at DESC
        LIMIT ?
    `, s.table)
	rows, err := s.client.DB().QueryContext(ctx, q, symbol, from, to, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse query_scores error",
				applogger.String("table", s.table),
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	out := make([]*models.ScoreSnapshot, 0, limit)
	for rows.Next() {
		var snap models.ScoreSnapshot
		var breakdown string
		if err := rows.Scan(
			&snap.ComputedAt,
			&snap.Symbol,
			&snap.TechnicalScore,
			&snap.SentimentScore,
			&snap.EcoScore,
			&snap.SeasonalityScore,
			&snap.TotalScore,
			&snap.Bias,
			&breakdown,
		); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		if breakdown != "" {
			if err := json.Unmarshal([]byte(breakdown), &snap.Breakdown); err != nil {
				return nil, fmt.Errorf("unmarshal breakdown %s: %w", snap.Symbol, err)
			}
		}
		out = append(out, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (s *CHScoreStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

func (s *CHScoreStore) Close() error {
	return s.client.Close()
}

var _ domrepo.ScoreStore = (*CHScoreStore)(nil)
