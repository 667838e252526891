package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("app:\n  name: comexio\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Rates.Pair != "USD-BRL" {
		t.Errorf("expected pair USD-BRL, got %s", cfg.Rates.Pair)
	}
	if cfg.Rates.Timeout != 2*time.Second {
		t.Errorf("expected 2s timeout, got %s", cfg.Rates.Timeout)
	}
	if cfg.Rates.TTL != 60*time.Second {
		t.Errorf("expected 60s ttl, got %s", cfg.Rates.TTL)
	}
	if cfg.Rates.FallbackBidDecimal().String() != "5.85" {
		t.Errorf("expected fallback 5.85, got %s", cfg.Rates.FallbackBidDecimal())
	}
	if cfg.Listings.Limit != 30 {
		t.Errorf("expected listing limit 30, got %d", cfg.Listings.Limit)
	}
	if cfg.Listings.CacheTTL != 5*time.Minute {
		t.Errorf("expected listing cache 5m, got %s", cfg.Listings.CacheTTL)
	}
	if cfg.Inference.TaxMultiplierDecimal().String() != "1.6" {
		t.Errorf("expected tax multiplier 1.6, got %s", cfg.Inference.TaxMultiplierDecimal())
	}
	if cfg.Trends.WindowPeriods != 30 {
		t.Errorf("expected window 30, got %d", cfg.Trends.WindowPeriods)
	}
	if cfg.Export.CSVPath != "importacoes_comex.csv" {
		t.Errorf("unexpected csv path %s", cfg.Export.CSVPath)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
rates:
  pair: EUR-BRL
  fallback_bid: 6.2
inference:
  deterministic: true
trends:
  top_n: 3
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	pair, err := cfg.Rates.CurrencyPair()
	if err != nil {
		t.Fatalf("CurrencyPair: %v", err)
	}
	if pair.String() != "EUR-BRL" {
		t.Errorf("expected EUR-BRL, got %s", pair)
	}
	if !cfg.Inference.Deterministic {
		t.Error("expected deterministic inference")
	}
	if cfg.Trends.TopN != 3 {
		t.Errorf("expected top_n 3, got %d", cfg.Trends.TopN)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Rates: RatesConfig{
				Pair:        "USD-BRL",
				Timeout:     2 * time.Second,
				TTL:         time.Minute,
				FallbackBid: 5.85,
			},
			Listings:  ListingsConfig{Limit: 30},
			Inference: InferenceConfig{TaxMultiplier: 1.6, JitterMin: 0.9, JitterMax: 1.1, WeightFloorKg: 0.001},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad_pair", func(c *Config) { c.Rates.Pair = "USDBRL" }, true},
		{"bad_history_pair", func(c *Config) { c.Rates.HistoryPairs = []string{"XXX"} }, true},
		{"zero_fallback", func(c *Config) { c.Rates.FallbackBid = 0 }, true},
		{"zero_timeout", func(c *Config) { c.Rates.Timeout = 0 }, true},
		{"zero_limit", func(c *Config) { c.Listings.Limit = 0 }, true},
		{"negative_tax", func(c *Config) { c.Inference.TaxMultiplier = -1 }, true},
		{"inverted_jitter", func(c *Config) { c.Inference.JitterMin = 1.2 }, true},
		{"negative_top_n", func(c *Config) { c.Trends.TopN = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
