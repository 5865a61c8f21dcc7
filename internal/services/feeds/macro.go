package feeds

import (
    "context"
    "fmt"

    domsvc "github.com/gman-top/Tradepilotx/internal/domain/service"
    "github.com/gman-top/Tradepilotx/pkg/config"
)

type HTTPMacroFeed struct{ base *HTTPServiceBase }

func NewHTTPMacroFeed(cfg *config.Config) *HTTPMacroFeed {
    return &HTTPMacroFeed{base: NewHTTPServiceBase(cfg)}
}

type macroResp struct {
    Surprises map[string]float64 `json:"surprises"`
}

func (s *HTTPMacroFeed) Surprises(ctx context.Context, currency string) (map[string]float64, error) {
    var mr macroResp
    err := s.base.GetJSONWithRetry(ctx, "/macro/"+currency, nil, &mr)
    if err != nil {
        return nil, fmt.Errorf("fetch macro surprises %s: %w", currency, err)
    }
    return mr.Surprises, nil
}

var _ domsvc.MacroFeed = (*HTTPMacroFeed)(nil)
