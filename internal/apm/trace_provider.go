// Package apm configures OpenTelemetry tracing.
package apm

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"

	"github.com/ChiaviniK/ComexioCase/internal/logger"
)

// Provider is the value of telemetry.trace_provider.
type Provider string

const (
	ZipkinProvider   Provider = "zipkin"
	OTLPProvider     Provider = "otlp"      // gRPC
	OTLPHTTPProvider Provider = "otlp-http" // HTTP/protobuf
	ConsoleProvider  Provider = "console"
	EmptyProvider    Provider = ""
)

type TraceProvider interface {
	Stop() error
}

type traceProvider struct {
	tp *sdktrace.TracerProvider
}

// Settings are the exporter parameters shared by all providers.
type Settings struct {
	Endpoint string
	Headers  map[string]string
	// Console receives spans of the console provider; nil means stderr.
	Console io.Writer
}

type TracerOptions struct {
	exporter           sdktrace.SpanExporter
	tracerProviderName string
	useEmpty           bool
	err                error
}

type TracerOption func(*TracerOptions)

// WithProvider selects the exporter. Unknown names fall back to no tracing.
func WithProvider(provider Provider, s Settings, log logger.LoggerInterface) TracerOption {
	switch provider {
	case ZipkinProvider:
		return useZipkin(s)
	case OTLPProvider:
		return useOTLPGRPC(s)
	case OTLPHTTPProvider:
		return useOTLPHTTP(s)
	case ConsoleProvider:
		return useConsole(s)
	case EmptyProvider:
		return useEmpty()
	}

	log.Warn(context.Background(), "unknown trace provider, tracing disabled", "provider", string(provider))
	return useEmpty()
}

func useEmpty() TracerOption {
	return func(option *TracerOptions) {
		option.useEmpty = true
		option.tracerProviderName = "empty"
	}
}

func useConsole(s Settings) TracerOption {
	return func(option *TracerOptions) {
		w := s.Console
		if w == nil {
			w = os.Stderr
		}
		option.exporter, option.err = stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		option.tracerProviderName = string(ConsoleProvider)
	}
}

func useZipkin(s Settings) TracerOption {
	return func(option *TracerOptions) {
		url := s.Endpoint
		if url == "" {
			url = "http://localhost:9411/api/v2/spans"
		}
		option.exporter, option.err = zipkin.New(url)
		option.tracerProviderName = string(ZipkinProvider)
	}
}

func useOTLPGRPC(s Settings) TracerOption {
	return func(option *TracerOptions) {
		opts := []otlptracegrpc.Option{otlptracegrpc.WithHeaders(s.Headers)}
		if s.Endpoint != "" {
			opts = append(opts, otlptracegrpc.WithEndpointURL(s.Endpoint))
		}
		option.exporter, option.err = otlptracegrpc.New(context.Background(), opts...)
		option.tracerProviderName = string(OTLPProvider)
	}
}

func useOTLPHTTP(s Settings) TracerOption {
	return func(option *TracerOptions) {
		opts := []otlptracehttp.Option{otlptracehttp.WithHeaders(s.Headers)}
		if s.Endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpointURL(s.Endpoint))
		}
		option.exporter, option.err = otlptracehttp.New(context.Background(), opts...)
		option.tracerProviderName = string(OTLPHTTPProvider)
	}
}

// ParseHeaders parses "key=value,key2=value2".
func ParseHeaders(s string) (map[string]string, error) {
	headers := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("apm: header %q must look like key=value", pair)
		}
		headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return headers, nil
}

// NewTraceProvider installs the global tracer provider and propagators.
func NewTraceProvider(serviceName string, options ...TracerOption) (TraceProvider, error) {
	opts := &TracerOptions{}
	for _, opt := range options {
		opt(opts)
	}

	if opts.err != nil {
		return nil, fmt.Errorf("apm: %s exporter: %w", opts.tracerProviderName, opts.err)
	}
	if opts.useEmpty || opts.exporter == nil {
		return emptyTraceProvider{}, nil
	}

	rsrc, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceNameKey.String(serviceName),
			attribute.String("otel.provider", opts.tracerProviderName),
		))
	if err != nil {
		return nil, fmt.Errorf("apm: resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(opts.exporter),
		sdktrace.WithResource(rsrc),
	)

	// Set global trace provider
	otel.SetTracerProvider(tp)

	// Set trace propagator
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))

	return &traceProvider{tp}, nil
}

func (o *traceProvider) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
	defer cancel()

	return o.tp.Shutdown(ctx)
}

// emptyTraceProvider leaves the global no-op provider in place.
type emptyTraceProvider struct{}

func (emptyTraceProvider) Stop() error { return nil }
