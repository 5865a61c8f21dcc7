package feeds

import (
    "context"
    "encoding/json"
    "strconv"
    "time"

    "github.com/gman-top/Tradepilotx/internal/domain/models"
    domsvc "github.com/gman-top/Tradepilotx/internal/domain/service"
    "github.com/gman-top/Tradepilotx/internal/service/cache"
)

// Cached feed decorators. Each wraps an upstream feed and memoizes its
// responses in a BytesCache for the configured TTL, so a watchlist scan does
// not hammer the intelligence service for data that changes slowly (COT is
// weekly, seasonality is static within a month).

func cacheLookup[T any](c cache.BytesCache, key string) (T, bool) {
    var zero T
    if c == nil {
        return zero, false
    }
    b, ok, err := c.GetBytes(key)
    if err != nil || !ok {
        return zero, false
    }
    var v T
    if err := json.Unmarshal(b, &v); err != nil {
        return zero, false
    }
    return v, true
}

func cacheStore[T any](c cache.BytesCache, key string, v T, ttl time.Duration) {
    if c == nil || ttl <= 0 {
        return
    }
    b, err := json.Marshal(v)
    if err != nil {
        return
    }
    // best effort; a cache write failure never fails the read path
    _ = c.SetBytes(key, b, ttl)
}

type CachedPriceFeed struct {
    next  domsvc.PriceFeed
    cache cache.BytesCache
    ttl   time.Duration
}

func NewCachedPriceFeed(next domsvc.PriceFeed, c cache.BytesCache, ttl time.Duration) *CachedPriceFeed {
    return &CachedPriceFeed{next: next, cache: c, ttl: ttl}
}

func (f *CachedPriceFeed) Summary(ctx context.Context, ticker string) (models.PriceSummary, error) {
    key := "feed:price:" + ticker
    if v, ok := cacheLookup[models.PriceSummary](f.cache, key); ok {
        return v, nil
    }
    v, err := f.next.Summary(ctx, ticker)
    if err != nil {
        return models.PriceSummary{}, err
    }
    cacheStore(f.cache, key, v, f.ttl)
    return v, nil
}

type CachedPositioningFeed struct {
    next  domsvc.PositioningFeed
    cache cache.BytesCache
    ttl   time.Duration
}

func NewCachedPositioningFeed(next domsvc.PositioningFeed, c cache.BytesCache, ttl time.Duration) *CachedPositioningFeed {
    return &CachedPositioningFeed{next: next, cache: c, ttl: ttl}
}

func (f *CachedPositioningFeed) Positioning(ctx context.Context, asset string) (models.InstitutionalPositioning, error) {
    key := "feed:cot:" + asset
    if v, ok := cacheLookup[models.InstitutionalPositioning](f.cache, key); ok {
        return v, nil
    }
    v, err := f.next.Positioning(ctx, asset)
    if err != nil {
        return models.InstitutionalPositioning{}, err
    }
    cacheStore(f.cache, key, v, f.ttl)
    return v, nil
}

type CachedRetailSentimentFeed struct {
    next  domsvc.RetailSentimentFeed
    cache cache.BytesCache
    ttl   time.Duration
}

func NewCachedRetailSentimentFeed(next domsvc.RetailSentimentFeed, c cache.BytesCache, ttl time.Duration) *CachedRetailSentimentFeed {
    return &CachedRetailSentimentFeed{next: next, cache: c, ttl: ttl}
}

func (f *CachedRetailSentimentFeed) LongPercent(ctx context.Context, asset string) (float64, error) {
    key := "feed:retail:" + asset
    if v, ok := cacheLookup[float64](f.cache, key); ok {
        return v, nil
    }
    v, err := f.next.LongPercent(ctx, asset)
    if err != nil {
        return 0, err
    }
    cacheStore(f.cache, key, v, f.ttl)
    return v, nil
}

type CachedMacroFeed struct {
    next  domsvc.MacroFeed
    cache cache.BytesCache
    ttl   time.Duration
}

func NewCachedMacroFeed(next domsvc.MacroFeed, c cache.BytesCache, ttl time.Duration) *CachedMacroFeed {
    return &CachedMacroFeed{next: next, cache: c, ttl: ttl}
}

func (f *CachedMacroFeed) Surprises(ctx context.Context, currency string) (map[string]float64, error) {
    key := "feed:macro:" + currency
    if v, ok := cacheLookup[map[string]float64](f.cache, key); ok {
        return v, nil
    }
    v, err := f.next.Surprises(ctx, currency)
    if err != nil {
        return nil, err
    }
    cacheStore(f.cache, key, v, f.ttl)
    return v, nil
}

type CachedSeasonalityFeed struct {
    next  domsvc.SeasonalityFeed
    cache cache.BytesCache
    ttl   time.Duration
}

func NewCachedSeasonalityFeed(next domsvc.SeasonalityFeed, c cache.BytesCache, ttl time.Duration) *CachedSeasonalityFeed {
    return &CachedSeasonalityFeed{next: next, cache: c, ttl: ttl}
}

func (f *CachedSeasonalityFeed) MonthAvgReturn(ctx context.Context, asset string, month time.Month) (float64, error) {
    key := "feed:seasonality:" + asset + ":" + strconv.Itoa(int(month))
    if v, ok := cacheLookup[float64](f.cache, key); ok {
        return v, nil
    }
    v, err := f.next.MonthAvgReturn(ctx, asset, month)
    if err != nil {
        return 0, err
    }
    cacheStore(f.cache, key, v, f.ttl)
    return v, nil
}

var (
    _ domsvc.PriceFeed           = (*CachedPriceFeed)(nil)
    _ domsvc.PositioningFeed     = (*CachedPositioningFeed)(nil)
    _ domsvc.RetailSentimentFeed = (*CachedRetailSentimentFeed)(nil)
    _ domsvc.MacroFeed           = (*CachedMacroFeed)(nil)
    _ domsvc.SeasonalityFeed     = (*CachedSeasonalityFeed)(nil)
)
