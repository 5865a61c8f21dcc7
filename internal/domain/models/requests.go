package models

// Requests for the market HTTP endpoints. Defined in domain for consistency and reuse.

type MarketRequest struct {
	Limit int `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=100"`
}

type AssetRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
}

type HistoryRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
	N      int    `query:"n" json:"n" default:"50" validate:"gte=1,lte=1000"`
	From   string `query:"from" json:"from"`
	To     string `query:"to" json:"to"`
}

// MarketEntry is one slot of the ranked market response. A failed asset keeps
// its slot with Error set instead of being dropped from the batch.
type MarketEntry struct {
	Symbol string       `json:"symbol"`
	Report *ScoreReport `json:"report,omitempty"`
	Error  string       `json:"error,omitempty"`
}
