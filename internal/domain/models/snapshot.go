package models

import "time"

// ScoreSnapshot is a ScoreReport stamped with the moment it was computed. The
// scoring core itself is clock-free; the surrounding service attaches the
// timestamp when persisting or publishing a report.
type ScoreSnapshot struct {
	ScoreReport
	ComputedAt time.Time `json:"computed_at"`
}
