package metrics

// Provider names a metric exporter.
type Provider string

const (
	PrometheusProvider Provider = "prometheus"
	OtelCollector      Provider = "otlp"
)

// Config is assembled from OptionFn values by NewMetricProvider.
type Config struct {
	ServiceName string
	Exporters   []ExporterCfg
}

// ExporterCfg describes one reader attached to the meter provider.
type ExporterCfg struct {
	Provider Provider
	Endpoint string
	Headers  map[string]string
	Insecure bool
}

type OptionFn func(config Config) Config

// WithPrometheus registers instruments on the scrape registry.
func WithPrometheus() OptionFn {
	return WithExporter(ExporterCfg{Provider: PrometheusProvider})
}

// WithOTLP pushes metrics to an OTLP/gRPC collector at endpoint (a URL).
func WithOTLP(endpoint string, headers map[string]string, insecure bool) OptionFn {
	return WithExporter(ExporterCfg{
		Provider: OtelCollector,
		Endpoint: endpoint,
		Headers:  headers,
		Insecure: insecure,
	})
}

func WithExporter(exp ExporterCfg) OptionFn {
	return func(config Config) Config {
		config.Exporters = append(config.Exporters, exp)
		return config
	}
}

func WithServiceName(serviceName string) OptionFn {
	return func(config Config) Config {
		config.ServiceName = serviceName
		return config
	}
}
