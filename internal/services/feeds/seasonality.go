package feeds

import (
    "context"
    "fmt"
    "strconv"
    "time"

    domsvc "github.com/gman-top/Tradepilotx/internal/domain/service"
    "github.com/gman-top/Tradepilotx/pkg/config"
)

type HTTPSeasonalityFeed struct{ base *HTTPServiceBase }

func NewHTTPSeasonalityFeed(cfg *config.Config) *HTTPSeasonalityFeed {
    return &HTTPSeasonalityFeed{base: NewHTTPServiceBase(cfg)}
}

type seasonalityResp struct {
    AvgReturnPct float64 `json:"avg_return_pct"`
}

func (s *HTTPSeasonalityFeed) MonthAvgReturn(ctx context.Context, asset string, month time.Month) (float64, error) {
    var sr seasonalityResp
    query := map[string][]string{"month": {strconv.Itoa(int(month))}}
    err := s.base.GetJSONWithRetry(ctx, "/seasonality/"+asset, query, &sr)
    if err != nil {
        return 0, fmt.Errorf("fetch seasonality %s: %w", asset, err)
    }
    return sr.AvgReturnPct, nil
}

var _ domsvc.SeasonalityFeed = (*HTTPSeasonalityFeed)(nil)
