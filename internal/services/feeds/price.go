package feeds

import (
    "context"
    "fmt"
    "strconv"
    "time"

    "github.com/gman-top/Tradepilotx/internal/domain/models"
    domsvc "github.com/gman-top/Tradepilotx/internal/domain/service"
    "github.com/gman-top/Tradepilotx/pkg/config"
)

type HTTPPriceFeed struct{ base *HTTPServiceBase }

func NewHTTPPriceFeed(cfg *config.Config) *HTTPPriceFeed {
    return &HTTPPriceFeed{base: NewHTTPServiceBase(cfg)}
}

type priceResp struct {
    Ticker    string             `json:"ticker"`
    Price     float64            `json:"price"`
    ChangePct float64            `json:"change_pct"`
    SMA       map[string]float64 `json:"sma"`
    Volume    int64              `json:"volume"`
    AsOf      time.Time          `json:"as_of"`
}

func (s *HTTPPriceFeed) Summary(ctx context.Context, ticker string) (models.PriceSummary, error) {
    var pr priceResp
    err := s.base.GetJSONWithRetry(ctx, "/price/"+ticker, nil, &pr)
    if err != nil {
        return models.PriceSummary{}, fmt.Errorf("fetch price %s: %w", ticker, err)
    }

    out := models.PriceSummary{
        Ticker:    ticker,
        Price:     pr.Price,
        ChangePct: pr.ChangePct,
        Volume:    pr.Volume,
        AsOf:      pr.AsOf,
    }
    if len(pr.SMA) > 0 {
        out.SMA = make(map[int]float64, len(pr.SMA))
        for k, v := range pr.SMA {
            period, err := strconv.Atoi(k)
            if err != nil {
                continue
            }
            out.SMA[period] = v
        }
    }
    return out, nil
}

var _ domsvc.PriceFeed = (*HTTPPriceFeed)(nil)
