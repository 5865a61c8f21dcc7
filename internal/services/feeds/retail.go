package feeds

import (
    "context"
    "fmt"

    domsvc "github.com/gman-top/Tradepilotx/internal/domain/service"
    "github.com/gman-top/Tradepilotx/pkg/config"
)

type HTTPRetailSentimentFeed struct{ base *HTTPServiceBase }

func NewHTTPRetailSentimentFeed(cfg *config.Config) *HTTPRetailSentimentFeed {
    return &HTTPRetailSentimentFeed{base: NewHTTPServiceBase(cfg)}
}

type retailResp struct {
    LongPct float64 `json:"long_pct"`
}

func (s *HTTPRetailSentimentFeed) LongPercent(ctx context.Context, asset string) (float64, error) {
    var rr retailResp
    err := s.base.GetJSONWithRetry(ctx, "/retail/"+asset, nil, &rr)
    if err != nil {
        return 0, fmt.Errorf("fetch retail sentiment %s: %w", asset, err)
    }
    return rr.LongPct, nil
}

var _ domsvc.RetailSentimentFeed = (*HTTPRetailSentimentFeed)(nil)
