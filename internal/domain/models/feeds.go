package models

import "time"

// PriceSummary is the raw technical slice returned by the price feed: last
// price, daily change and the SMA values the observation builder derives
// positioning from. SMAs the provider cannot compute (not enough history) are
// simply absent from the map.
type PriceSummary struct {
	Ticker    string          `json:"ticker"`
	Price     float64         `json:"price"`
	ChangePct float64         `json:"change_pct"`
	SMA       map[int]float64 `json:"sma,omitempty"`
	Volume    int64           `json:"volume"`
	AsOf      time.Time       `json:"as_of"`
}

// InstitutionalPositioning is the raw COT slice for one asset: percent of
// non-commercial contracts long and its week-over-week change.
type InstitutionalPositioning struct {
	PercLong        float64   `json:"perc_long"`
	WeeklyChangePct float64   `json:"weekly_change_pct"`
	ReportDate      time.Time `json:"report_date"`
}
