package feeds

import (
    "context"
    "fmt"
    "time"

    "github.com/gman-top/Tradepilotx/internal/domain/models"
    domsvc "github.com/gman-top/Tradepilotx/internal/domain/service"
    "github.com/gman-top/Tradepilotx/pkg/config"
)

type HTTPPositioningFeed struct{ base *HTTPServiceBase }

func NewHTTPPositioningFeed(cfg *config.Config) *HTTPPositioningFeed {
    return &HTTPPositioningFeed{base: NewHTTPServiceBase(cfg)}
}

type cotResp struct {
    PercLong        float64   `json:"perc_long"`
    WeeklyChangePct float64   `json:"weekly_change_pct"`
    ReportDate      time.Time `json:"report_date"`
}

func (s *HTTPPositioningFeed) Positioning(ctx context.Context, asset string) (models.InstitutionalPositioning, error) {
    var cr cotResp
    err := s.base.GetJSONWithRetry(ctx, "/cot/"+asset, nil, &cr)
    if err != nil {
        return models.InstitutionalPositioning{}, fmt.Errorf("fetch positioning %s: %w", asset, err)
    }
    return models.InstitutionalPositioning{
        PercLong:        cr.PercLong,
        WeeklyChangePct: cr.WeeklyChangePct,
        ReportDate:      cr.ReportDate,
    }, nil
}

var _ domsvc.PositioningFeed = (*HTTPPositioningFeed)(nil)
