// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/ChiaviniK/ComexioCase/internal/currency"
)

// Config holds all application configuration.
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Rates        RatesConfig        `mapstructure:"rates"`
	Listings     ListingsConfig     `mapstructure:"listings"`
	Catalog      CatalogConfig      `mapstructure:"catalog"`
	Inference    InferenceConfig    `mapstructure:"inference"`
	Trends       TrendsConfig       `mapstructure:"trends"`
	Export       ExportConfig       `mapstructure:"export"`
	Presentation PresentationConfig `mapstructure:"presentation"`
	Telemetry    TelemetryConfig    `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	TUIMode     bool   `mapstructure:"-"` // Set at runtime, not from config file
}

// RatesConfig configures the exchange rate source.
type RatesConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Pair        string        `mapstructure:"pair"` // e.g. USD-BRL
	Timeout     time.Duration `mapstructure:"timeout"`
	TTL         time.Duration `mapstructure:"ttl"`
	FallbackBid float64       `mapstructure:"fallback_bid"`
	HistoryDays int           `mapstructure:"history_days"`
	// HistoryPairs are ranked against each other by the rate trend view.
	HistoryPairs []string `mapstructure:"history_pairs"`
}

// FallbackBidDecimal returns the fallback bid as decimal.Decimal.
func (c *RatesConfig) FallbackBidDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.FallbackBid)
}

// CurrencyPair parses Pair.
func (c *RatesConfig) CurrencyPair() (currency.Pair, error) {
	return currency.ParsePair(c.Pair)
}

// ListingsConfig configures the marketplace listing source.
type ListingsConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Site              string        `mapstructure:"site"`
	Limit             int           `mapstructure:"limit"`
	Timeout           time.Duration `mapstructure:"timeout"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	AccessToken       string        `mapstructure:"access_token"` // optional bearer token
}

// CatalogConfig points at an optional YAML catalog replacing the built-in one.
type CatalogConfig struct {
	File            string `mapstructure:"file"`
	DefaultCategory string `mapstructure:"default_category"` // used for unknown ids when set
}

// InferenceConfig holds the estimation parameters.
type InferenceConfig struct {
	TaxMultiplier float64 `mapstructure:"tax_multiplier"`
	JitterMin     float64 `mapstructure:"jitter_min"`
	JitterMax     float64 `mapstructure:"jitter_max"`
	Deterministic bool    `mapstructure:"deterministic"`
	Seed          int64   `mapstructure:"seed"` // 0 = time based
	WeightFloorKg float64 `mapstructure:"weight_floor_kg"`
}

// TaxMultiplierDecimal returns the tax multiplier as decimal.Decimal.
func (c *InferenceConfig) TaxMultiplierDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.TaxMultiplier)
}

// TrendsConfig holds the ranking parameters.
type TrendsConfig struct {
	WindowPeriods    int    `mapstructure:"window_periods"`
	TopN             int    `mapstructure:"top_n"`
	SkipUndefined    bool   `mapstructure:"skip_undefined"`
	SkipInsufficient bool   `mapstructure:"skip_insufficient"`
	SnapshotFile     string `mapstructure:"snapshot_file"`
}

// ExportConfig holds output artifact locations.
type ExportConfig struct {
	CSVPath   string `mapstructure:"csv_path"`
	ChartsDir string `mapstructure:"charts_dir"`
}

// PresentationConfig selects a rendering variant.
type PresentationConfig struct {
	Variant string `mapstructure:"variant"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	TraceProvider  string `mapstructure:"trace_provider"` // zipkin, console, otlp, empty
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
	HealthPort     int    `mapstructure:"health_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("COMEX")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("app.name", "COMEX_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "COMEX_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "COMEX_LOG_LEVEL", "LOG_LEVEL")

	v.BindEnv("rates.base_url", "COMEX_RATES_URL")
	v.BindEnv("rates.pair", "COMEX_RATES_PAIR")
	v.BindEnv("rates.fallback_bid", "COMEX_RATES_FALLBACK_BID")

	v.BindEnv("listings.base_url", "COMEX_LISTINGS_URL")
	v.BindEnv("listings.site", "COMEX_LISTINGS_SITE")
	v.BindEnv("listings.access_token", "COMEX_LISTINGS_TOKEN", "MELI_ACCESS_TOKEN")

	v.BindEnv("catalog.file", "COMEX_CATALOG_FILE")

	v.BindEnv("inference.tax_multiplier", "COMEX_TAX_MULTIPLIER")
	v.BindEnv("inference.deterministic", "COMEX_DETERMINISTIC")
	v.BindEnv("inference.seed", "COMEX_SEED")

	v.BindEnv("trends.snapshot_file", "COMEX_TRENDS_SNAPSHOT")

	v.BindEnv("export.csv_path", "COMEX_CSV_PATH")
	v.BindEnv("presentation.variant", "COMEX_VARIANT")

	v.BindEnv("telemetry.enabled", "COMEX_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "COMEX_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "COMEX_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "comexio")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("rates.base_url", "https://economia.awesomeapi.com.br")
	v.SetDefault("rates.pair", "USD-BRL")
	v.SetDefault("rates.timeout", "2s")
	v.SetDefault("rates.ttl", "60s")
	v.SetDefault("rates.fallback_bid", 5.85)
	v.SetDefault("rates.history_days", 30)
	v.SetDefault("rates.history_pairs", []string{"USD-BRL", "EUR-BRL", "CNY-BRL"})

	v.SetDefault("listings.base_url", "https://api.mercadolibre.com")
	v.SetDefault("listings.site", "MLB")
	v.SetDefault("listings.limit", 30)
	v.SetDefault("listings.timeout", "5s")
	v.SetDefault("listings.cache_ttl", "5m")
	v.SetDefault("listings.requests_per_minute", 60)

	v.SetDefault("inference.tax_multiplier", 1.6)
	v.SetDefault("inference.jitter_min", 0.9)
	v.SetDefault("inference.jitter_max", 1.1)
	v.SetDefault("inference.deterministic", false)
	v.SetDefault("inference.seed", 0)
	v.SetDefault("inference.weight_floor_kg", 0.001)

	v.SetDefault("trends.window_periods", 30)
	v.SetDefault("trends.top_n", 10)
	v.SetDefault("trends.skip_undefined", true)
	v.SetDefault("trends.skip_insufficient", true)

	v.SetDefault("export.csv_path", "importacoes_comex.csv")
	v.SetDefault("export.charts_dir", "charts")

	v.SetDefault("presentation.variant", "classic")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "comexio")
	v.SetDefault("telemetry.trace_provider", "zipkin")
	v.SetDefault("telemetry.prometheus_port", 9090)
	v.SetDefault("telemetry.health_port", 8081)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := c.Rates.CurrencyPair(); err != nil {
		return fmt.Errorf("invalid rates.pair: %w", err)
	}
	for _, p := range c.Rates.HistoryPairs {
		if _, err := currency.ParsePair(p); err != nil {
			return fmt.Errorf("invalid rates.history_pairs entry %q: %w", p, err)
		}
	}
	if c.Rates.FallbackBid <= 0 {
		return fmt.Errorf("rates.fallback_bid must be positive")
	}
	if c.Rates.Timeout <= 0 {
		return fmt.Errorf("rates.timeout must be positive")
	}
	if c.Rates.TTL < 0 {
		return fmt.Errorf("rates.ttl cannot be negative")
	}
	if c.Listings.Limit <= 0 {
		return fmt.Errorf("listings.limit must be positive")
	}
	if c.Inference.TaxMultiplier <= 0 {
		return fmt.Errorf("inference.tax_multiplier must be positive")
	}
	if c.Inference.JitterMin <= 0 || c.Inference.JitterMax < c.Inference.JitterMin {
		return fmt.Errorf("inference jitter range [%v, %v] is invalid", c.Inference.JitterMin, c.Inference.JitterMax)
	}
	if c.Inference.WeightFloorKg <= 0 {
		return fmt.Errorf("inference.weight_floor_kg must be positive")
	}
	if c.Trends.WindowPeriods < 0 || c.Trends.TopN < 0 {
		return fmt.Errorf("trends.window_periods and trends.top_n cannot be negative")
	}
	return nil
}
