package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

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
	Cache struct {
		Backend      string        `yaml:"backend"` // clickhouse, redis, or memory
		MacroTTL     time.Duration `yaml:"macro_ttl"`
		EquityTTL    time.Duration `yaml:"equity_ttl"`
		SentimentTTL time.Duration `yaml:"sentiment_ttl"`
	} `yaml:"cache"`
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
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
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
	Fred struct {
		BaseURL       string        `yaml:"base_url"`
		APIKey        string        `yaml:"api_key"`
		Timeout       time.Duration `yaml:"timeout"`
		RatePerSecond float64       `yaml:"rate_per_second"`
		RateBurst     float64       `yaml:"rate_burst"`
		HistoryDays   int           `yaml:"history_days"`
	} `yaml:"fred"`
	Stocks struct {
		BaseURL     string        `yaml:"base_url"`
		APIKey      string        `yaml:"api_key"`
		Timeout     time.Duration `yaml:"timeout"`
		HistoryDays int           `yaml:"history_days"`
	} `yaml:"stocks"`
	Social struct {
		Dir                string        `yaml:"dir"`
		MaxAge             time.Duration `yaml:"max_age"`
		MaxKeywordsPerPost int           `yaml:"max_keywords_per_post"`
	} `yaml:"social"`
	Analysis struct {
		Tickers          []string      `yaml:"tickers"`
		MacroWeight      float64       `yaml:"macro_weight"`
		EquityWeight     float64       `yaml:"equity_weight"`
		SentimentWeight  float64       `yaml:"sentiment_weight"`
		CollectorTimeout time.Duration `yaml:"collector_timeout"`
		RegimeWindowDays int           `yaml:"regime_window_days"`
	} `yaml:"analysis"`
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

	c.applyDefaults()

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

	if v := os.Getenv("FRED_API_KEY"); v != "" {
		c.Fred.APIKey = v
	}
	if v := os.Getenv("STOCKS_API_KEY"); v != "" {
		c.Stocks.APIKey = v
	}
	if v := os.Getenv("TICKERS"); v != "" {
		c.Analysis.Tickers = strings.Split(v, ",")
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("SOCIAL_DIR"); v != "" {
		c.Social.Dir = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Cache.MacroTTL <= 0 {
		c.Cache.MacroTTL = time.Hour
	}
	if c.Cache.EquityTTL <= 0 {
		c.Cache.EquityTTL = 15 * time.Minute
	}
	if c.Cache.SentimentTTL <= 0 {
		c.Cache.SentimentTTL = 30 * time.Minute
	}
	if c.Analysis.MacroWeight == 0 && c.Analysis.EquityWeight == 0 && c.Analysis.SentimentWeight == 0 {
		c.Analysis.MacroWeight = 0.40
		c.Analysis.EquityWeight = 0.35
		c.Analysis.SentimentWeight = 0.25
	}
	if c.Analysis.CollectorTimeout <= 0 {
		c.Analysis.CollectorTimeout = 30 * time.Second
	}
	if c.Analysis.RegimeWindowDays <= 0 {
		c.Analysis.RegimeWindowDays = 90
	}
	if c.Social.MaxAge <= 0 {
		c.Social.MaxAge = 24 * time.Hour
	}
	if c.Social.MaxKeywordsPerPost <= 0 {
		c.Social.MaxKeywordsPerPost = 3
	}
	if c.Fred.HistoryDays <= 0 {
		c.Fred.HistoryDays = 365
	}
	if c.Stocks.HistoryDays <= 0 {
		c.Stocks.HistoryDays = 365
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Cache.Backend {
	case "clickhouse", "redis", "memory":
	case "":
		return fmt.Errorf("cache.backend is required")
	default:
		return fmt.Errorf("cache.backend must be 'clickhouse', 'redis' or 'memory', got '%s'", c.Cache.Backend)
	}
	sum := c.Analysis.MacroWeight + c.Analysis.EquityWeight + c.Analysis.SentimentWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("analysis weights must sum to 1.0, got %v", sum)
	}
	if c.Analysis.MacroWeight < 0 || c.Analysis.EquityWeight < 0 || c.Analysis.SentimentWeight < 0 {
		return fmt.Errorf("analysis weights must be non-negative")
	}
	if len(c.Analysis.Tickers) == 0 {
		return fmt.Errorf("analysis.tickers cannot be empty")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	return nil
}
