package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Asset maps a watchlist symbol to its provider identifiers.
type Asset struct {
	Symbol   string `yaml:"symbol"`
	Ticker   string `yaml:"ticker"`
	Currency string `yaml:"currency"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Watchlist []Asset `yaml:"watchlist"`
	Scoring   struct {
		// Weight pointers distinguish an absent key (default 1.0) from an
		// explicit 0.0, which disables that factor's contribution.
		TechnicalWeight   *float64      `yaml:"technical_weight"`
		SentimentWeight   *float64      `yaml:"sentiment_weight"`
		EcoWeight         *float64      `yaml:"eco_weight"`
		SeasonalityWeight *float64      `yaml:"seasonality_weight"`
		ScanInterval      time.Duration `yaml:"scan_interval"`
	} `yaml:"scoring"`
	Feeds struct {
		IntelServiceURL string        `yaml:"intel_service_url"`
		Timeout         time.Duration `yaml:"timeout"`
		RetryAttempts   int           `yaml:"retry_attempts"`
		CacheTTL        struct {
			Price       time.Duration `yaml:"price"`
			Positioning time.Duration `yaml:"positioning"`
			Retail      time.Duration `yaml:"retail"`
			Macro       time.Duration `yaml:"macro"`
			Seasonality time.Duration `yaml:"seasonality"`
		} `yaml:"cache_ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"feeds"`
	History struct {
		Enabled bool   `yaml:"enabled"`
		Table   string `yaml:"table"`
	} `yaml:"history"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("INTEL_SERVICE_URL"); v != "" {
		c.Feeds.IntelServiceURL = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		var list []Asset
		for _, sym := range strings.Split(v, ",") {
			sym = strings.TrimSpace(sym)
			if sym == "" {
				continue
			}
			list = append(list, Asset{Symbol: sym, Ticker: sym})
		}
		c.Watchlist = list
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Feeds.Redis.Addr = v
		c.Feeds.Redis.Enabled = true
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("watchlist cannot be empty")
	}
	seen := make(map[string]struct{}, len(c.Watchlist))
	for i, a := range c.Watchlist {
		if a.Symbol == "" {
			return fmt.Errorf("watchlist[%d].symbol is required", i)
		}
		if _, dup := seen[a.Symbol]; dup {
			return fmt.Errorf("watchlist has duplicate symbol '%s'", a.Symbol)
		}
		seen[a.Symbol] = struct{}{}
	}
	if c.Feeds.IntelServiceURL == "" {
		return fmt.Errorf("feeds.intel_service_url is required")
	}
	if c.History.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when history is enabled")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	return nil
}

// Weights returns the configured scoring weight multipliers, defaulting to 1.0
// for every key the scoring block leaves unset. An explicit 0.0 is honored and
// zeroes that factor out of the total.
func (c *Config) Weights() (technical, sentiment, eco, seasonality float64) {
	orUnit := func(v *float64) float64 {
		if v == nil {
			return 1.0
		}
		return *v
	}
	return orUnit(c.Scoring.TechnicalWeight),
		orUnit(c.Scoring.SentimentWeight),
		orUnit(c.Scoring.EcoWeight),
		orUnit(c.Scoring.SeasonalityWeight)
}
