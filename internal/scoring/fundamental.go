package scoring

// ecoScore folds macro surprise values into an integer in [-5, 5].
//
// Every present, non-zero metric votes ±1 by the sign of its surprise; absent
// or exactly-zero metrics contribute nothing. All fourteen canonical metrics
// weigh equally regardless of typical market impact — an intentional
// simplification of the product rule set. Metric names were already checked
// against the canonical set at validation.
func ecoScore(economic map[string]float64) int {
	score := 0
	for _, surprise := range economic {
		if surprise > 0 {
			score++
		} else if surprise < 0 {
			score--
		}
	}
	return clamp(score, -5, 5)
}
