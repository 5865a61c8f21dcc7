package scoring

import "math"

// Config carries the per-factor weight multipliers. Weights default to 1.0 and
// are inert at that value: the total is then the plain integer sum of the four
// clamped sub-scores. Non-unit weights are an alternate configuration that
// scales sub-scores inside the total only; sub-scores themselves are always
// reported unweighted.
type Config struct {
	TechnicalWeight   float64 `yaml:"technical_weight"`
	SentimentWeight   float64 `yaml:"sentiment_weight"`
	EcoWeight         float64 `yaml:"eco_weight"`
	SeasonalityWeight float64 `yaml:"seasonality_weight"`
}

// DefaultConfig returns unit weights.
func DefaultConfig() Config {
	return Config{
		TechnicalWeight:   1.0,
		SentimentWeight:   1.0,
		EcoWeight:         1.0,
		SeasonalityWeight: 1.0,
	}
}

func (c Config) inert() bool {
	return c.TechnicalWeight == 1.0 &&
		c.SentimentWeight == 1.0 &&
		c.EcoWeight == 1.0 &&
		c.SeasonalityWeight == 1.0
}

func (c Config) total(technical, sentiment, eco, seasonality int) int {
	if c.inert() {
		return technical + sentiment + eco + seasonality
	}
	weighted := c.TechnicalWeight*float64(technical) +
		c.SentimentWeight*float64(sentiment) +
		c.EcoWeight*float64(eco) +
		c.SeasonalityWeight*float64(seasonality)
	return int(math.Round(weighted))
}
