// Package metrics configures the OpenTelemetry meter provider and the
// Prometheus scrape endpoint.
package metrics

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
)

type MetricProvider interface {
	Meter(name string, options ...metric.MeterOption) metric.Meter
	Shutdown(ctx context.Context) error
}

func getReaders(ctx context.Context, cfg Config, registry *prometheus.Registry) ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader

	for _, exp := range cfg.Exporters {
		switch exp.Provider {
		case PrometheusProvider:
			promExporter, err := otelprom.New(otelprom.WithRegisterer(registry))
			if err != nil {
				return nil, fmt.Errorf("metrics: prometheus exporter: %w", err)
			}

			readers = append(readers, promExporter)
		case OtelCollector:
			opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithHeaders(exp.Headers)}
			if exp.Endpoint != "" {
				opts = append(opts, otlpmetricgrpc.WithEndpointURL(exp.Endpoint))
			}
			if exp.Insecure {
				opts = append(opts, otlpmetricgrpc.WithInsecure())
			}

			otlpExporter, err := otlpmetricgrpc.New(ctx, opts...)
			if err != nil {
				return nil, fmt.Errorf("metrics: otlp exporter: %w", err)
			}

			readers = append(readers, sdkmetric.NewPeriodicReader(otlpExporter))
		default:
			return nil, fmt.Errorf("metrics: unknown provider %q", exp.Provider)
		}
	}

	return readers, nil
}

// NewMetricProvider installs the global meter provider. Prometheus readers
// register on registry, which Server exposes.
func NewMetricProvider(registry *prometheus.Registry, options ...OptionFn) (MetricProvider, error) {
	var cfg Config
	for _, opt := range options {
		cfg = opt(cfg)
	}

	readers, err := getReaders(context.Background(), cfg, registry)
	if err != nil {
		return nil, err
	}

	metricsOps := []sdkmetric.Option{
		sdkmetric.WithResource(resource.NewSchemaless(semconv.ServiceNameKey.String(cfg.ServiceName))),
	}
	for _, reader := range readers {
		metricsOps = append(metricsOps, sdkmetric.WithReader(reader))
	}

	meterProvider := sdkmetric.NewMeterProvider(metricsOps...)
	otel.SetMeterProvider(meterProvider)

	return meterProvider, nil
}

// Server serves /metrics for a registry.
type Server struct {
	port     int
	registry *prometheus.Registry
	server   *http.Server
}

// NewServer creates a metrics server for port.
func NewServer(port int, registry *prometheus.Registry) *Server {
	return &Server{port: port, registry: registry}
}

// Handler returns the scrape handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// Start binds the port and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		_ = s.server.Serve(ln)
	}()

	return nil
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
