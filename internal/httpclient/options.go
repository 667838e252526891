// Package httpclient provides an HTTP client instrumented with OpenTelemetry
// tracing and request counters.
package httpclient

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultUserAgent = "comexio-case/1.0"

// TraceOption selects which bodies are attached to spans.
type TraceOption string

const (
	TraceRequest  TraceOption = "request"
	TraceResponse TraceOption = "response"
)

// ClientOptions holds configuration for the instrumented HTTP client.
type ClientOptions struct {
	providerName   string
	baseURL        string
	requestTimeout time.Duration
	headers        map[string]string
	tracer         trace.Tracer
	logRequest     bool
	logResponse    bool
}

// ClientOption configures ClientOptions.
type ClientOption func(*ClientOptions)

// NewClientOptions applies opts over the defaults.
func NewClientOptions(opts ...ClientOption) *ClientOptions {
	options := &ClientOptions{
		requestTimeout: defaultRequestTimeout,
		headers:        map[string]string{"User-Agent": defaultUserAgent},
	}
	for _, o := range opts {
		o(options)
	}
	return options
}

// WithProviderName names the remote source in metrics and spans.
func WithProviderName(name string) ClientOption {
	return func(o *ClientOptions) {
		o.providerName = name
	}
}

func WithBaseURL(url string) ClientOption {
	return func(o *ClientOptions) {
		o.baseURL = url
	}
}

// WithRequestTimeout bounds every request made by the client. Zero keeps
// the default.
func WithRequestTimeout(timeout time.Duration) ClientOption {
	return func(o *ClientOptions) {
		if timeout > 0 {
			o.requestTimeout = timeout
		}
	}
}

// WithHeader sets a header sent on every request.
func WithHeader(key, value string) ClientOption {
	return func(o *ClientOptions) {
		o.headers[key] = value
	}
}

// WithJSON asks the remote source for JSON.
func WithJSON() ClientOption {
	return WithHeader("Accept", "application/json")
}

// WithBearerToken authorizes every request. An empty token is ignored so
// anonymous access stays the default.
func WithBearerToken(token string) ClientOption {
	return func(o *ClientOptions) {
		if token != "" {
			o.headers["Authorization"] = "Bearer " + token
		}
	}
}

func WithUserAgent(ua string) ClientOption {
	return WithHeader("User-Agent", ua)
}

// WithTraceOptions sets the tracer and enables body capture on spans.
func WithTraceOptions(tracer trace.Tracer, opts ...TraceOption) ClientOption {
	return func(o *ClientOptions) {
		o.tracer = tracer
		for _, opt := range opts {
			switch opt {
			case TraceRequest:
				o.logRequest = true
			case TraceResponse:
				o.logResponse = true
			}
		}
	}
}

// RequestOptions holds per-request configuration.
type RequestOptions struct {
	responseErrorHandler ResponseErrorHandler
	labels               []attribute.KeyValue
}

// RequestOption configures a single request.
type RequestOption func(*RequestOptions)

// ResponseErrorHandler inspects a response and returns a non-nil error to
// fail the request.
type ResponseErrorHandler func(statusCode int, body []byte) error

func WithResponseErrorHandler(handler ResponseErrorHandler) RequestOption {
	return func(o *RequestOptions) {
		o.responseErrorHandler = handler
	}
}

// WithEndpoint labels the request counter with the logical endpoint name.
func WithEndpoint(name string) RequestOption {
	return WithLabel("endpoint", name)
}

// WithLabel adds a request counter attribute.
func WithLabel(key, value string) RequestOption {
	return func(o *RequestOptions) {
		o.labels = append(o.labels, attribute.String(key, value))
	}
}
