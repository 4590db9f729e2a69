package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
environment: test
cache:
  backend: memory
analysis:
  tickers: [AAPL]
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cache.MacroTTL != time.Hour {
		t.Fatalf("expected macro ttl 1h, got %v", cfg.Cache.MacroTTL)
	}
	if cfg.Cache.EquityTTL != 15*time.Minute {
		t.Fatalf("expected equity ttl 15m, got %v", cfg.Cache.EquityTTL)
	}
	if cfg.Cache.SentimentTTL != 30*time.Minute {
		t.Fatalf("expected sentiment ttl 30m, got %v", cfg.Cache.SentimentTTL)
	}
	if cfg.Analysis.MacroWeight != 0.40 || cfg.Analysis.EquityWeight != 0.35 || cfg.Analysis.SentimentWeight != 0.25 {
		t.Fatalf("unexpected default weights: %v %v %v",
			cfg.Analysis.MacroWeight, cfg.Analysis.EquityWeight, cfg.Analysis.SentimentWeight)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadWeights(t *testing.T) {
	body := minimalConfig + `
  macro_weight: 0.5
  equity_weight: 0.5
  sentiment_weight: 0.5
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected weight sum validation error")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	body := `
environment: test
cache:
  backend: s3
analysis:
  tickers: [AAPL]
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected backend validation error")
	}
}

func TestLoadRejectsKafkaWithoutBrokers(t *testing.T) {
	body := minimalConfig + `
kafka:
  enabled: true
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected kafka broker validation error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("FRED_API_KEY", "k-123")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("TICKERS", "TSLA,NVDA")

	cfg, err := LoadWithEnv(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Fred.APIKey != "k-123" {
		t.Fatalf("expected env api key, got %q", cfg.Fred.APIKey)
	}
	if len(cfg.Analysis.Tickers) != 2 || cfg.Analysis.Tickers[0] != "TSLA" {
		t.Fatalf("expected ticker override, got %v", cfg.Analysis.Tickers)
	}
}
