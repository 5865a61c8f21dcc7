package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
	"github.com/gman-top/Tradepilotx/internal/scoring"
	icache "github.com/gman-top/Tradepilotx/internal/service/cache"
	"github.com/gman-top/Tradepilotx/internal/service/metrics"
	"github.com/gman-top/Tradepilotx/internal/service/ratelimit"
	"github.com/gman-top/Tradepilotx/internal/usecase"
	xhttp "github.com/gman-top/Tradepilotx/pkg/http"
	applogger "github.com/gman-top/Tradepilotx/pkg/logger"
)

const marketCacheTTL = 30 * time.Second

// ScoresHandler exposes the conviction scoring pipeline over HTTP.
type ScoresHandler struct {
	svc     *usecase.ConvictionService
	cache   icache.BytesCache
	rl      *ratelimit.Limiter
	l       *applogger.Logger
	version string
	sources map[string]string
}

func NewScoresHandler(svc *usecase.ConvictionService, version string) *ScoresHandler {
	metrics.Register()
	return &ScoresHandler{svc: svc, rl: ratelimit.New(), version: version}
}

func (h *ScoresHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetDataSources attaches upstream source descriptions to the health payload.
func (h *ScoresHandler) SetDataSources(sources map[string]string) { h.sources = sources }

// SetLogger injects a structured logger.
func (h *ScoresHandler) SetLogger(l *applogger.Logger) { h.l = l }

func (h *ScoresHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	g := e.Group("/api/v1")
	g.GET("/market", h.Market)
	g.GET("/asset/:symbol", h.Asset)
	g.GET("/asset/:symbol/history", h.History)
	g.POST("/score", h.Score)
}

// Market runs a full watchlist scan and returns the ranked entries. Responses
// are cached briefly since a scan fans out to every upstream feed.
func (h *ScoresHandler) Market(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.ScoringLatency.WithLabelValues("market").Observe(time.Since(start).Seconds())
	}()

	req := &models.MarketRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":market", 5, 1) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}

	const cacheKey = "api:market"
	if entries, ok := h.cachedMarket(cacheKey); ok {
		return xhttp.SuccessResponse(c, truncate(entries, req.Limit))
	}

	entries, err := h.svc.ScanMarket(c.Request().Context())
	if err != nil {
		metrics.ScoringErrors.WithLabelValues("market").Inc()
		if h.l != nil {
			h.l.Error("market scan error", applogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}

	h.storeMarket(cacheKey, entries)
	return xhttp.SuccessResponse(c, truncate(entries, req.Limit))
}

// Asset scores a single watchlist symbol on demand.
func (h *ScoresHandler) Asset(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.ScoringLatency.WithLabelValues("asset").Observe(time.Since(start).Seconds())
	}()

	req := &models.AssetRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":asset", 10, 2) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}

	report, err := h.svc.ScoreSymbol(c.Request().Context(), req.Symbol)
	if err != nil {
		metrics.ScoringErrors.WithLabelValues("asset").Inc()
		if h.l != nil {
			h.l.Error("asset score error", applogger.String("symbol", req.Symbol), applogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}

// Score computes a report for a caller-supplied observation without touching
// any feed. Malformed observations come back as 400 with the offending field.
func (h *ScoresHandler) Score(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.ScoringLatency.WithLabelValues("score").Observe(time.Since(start).Seconds())
	}()

	obs := models.AssetObservation{}
	if err := c.Bind(&obs); err != nil {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_BIND",
			Message: err.Error(),
		}})
	}

	report, err := h.svc.ScoreObservation(obs)
	if err != nil {
		var verr *scoring.ValidationError
		if errors.As(err, &verr) {
			return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
				Code:    "ERR_INVALID_OBSERVATION",
				Field:   verr.Field,
				Message: verr.Message,
			}})
		}
		metrics.ScoringErrors.WithLabelValues("score").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}

// History returns persisted score snapshots for a symbol, most recent first.
func (h *ScoresHandler) History(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.ScoringLatency.WithLabelValues("history").Observe(time.Since(start).Seconds())
	}()

	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	var from, to time.Time
	if req.From != "" {
		t, ok := xhttp.ParseTime(req.From)
		if !ok {
			return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
				Code: "ERR_TIME_FORMAT", Field: "from", Message: "unparseable time",
			}})
		}
		from = t
	}
	if req.To != "" {
		t, ok := xhttp.ParseTime(req.To)
		if !ok {
			return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
				Code: "ERR_TIME_FORMAT", Field: "to", Message: "unparseable time",
			}})
		}
		to = t
	}

	snapshots, err := h.svc.History(c.Request().Context(), req.Symbol, from, to, req.N)
	if err != nil {
		metrics.ScoringErrors.WithLabelValues("history").Inc()
		if h.l != nil {
			h.l.Error("history query error", applogger.String("symbol", req.Symbol), applogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, snapshots, int64(len(snapshots)))
}

// Health reports service identity, watchlist size and upstream sources.
func (h *ScoresHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"service":      "tradepilotx",
		"version":      h.version,
		"watchlist":    len(h.svc.Watchlist()),
		"data_sources": h.sources,
		"time":         time.Now().UTC(),
	})
}

func (h *ScoresHandler) cachedMarket(key string) ([]models.MarketEntry, bool) {
	if h.cache == nil {
		return nil, false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		if h.l != nil {
			h.l.Warn("market cache_get_error", applogger.Error(err))
		}
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var entries []models.MarketEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (h *ScoresHandler) storeMarket(key string, entries []models.MarketEntry) {
	if h.cache == nil {
		return
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := h.cache.SetBytes(key, b, marketCacheTTL); err != nil && h.l != nil {
		h.l.Warn("market cache_set_error", applogger.Error(err))
	}
}

func truncate(entries []models.MarketEntry, limit int) []models.MarketEntry {
	if limit <= 0 || limit >= len(entries) {
		return entries
	}
	return entries[:limit]
}

var _ xhttp.Handler = (*ScoresHandler)(nil)
