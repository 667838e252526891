package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	CodeServiceTimeout    Code = "SERVICE_TIMEOUT"
	CodeRateLimitExceeded Code = "RATE_LIMIT_EXCEEDED"

	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Domain error codes
const (
	// Catalog
	CodeUnknownCategory Code = "UNKNOWN_CATEGORY"
	CodeCatalogLoad     Code = "CATALOG_LOAD_FAILED"

	// Remote sources. REMOTE_UNAVAILABLE is always recovered by a fallback.
	CodeRemoteUnavailable  Code = "REMOTE_UNAVAILABLE"
	CodeRateFetchFailed    Code = "RATE_FETCH_FAILED"
	CodeInvalidRatePayload Code = "INVALID_RATE_PAYLOAD"
	CodeListingFetchFailed Code = "LISTING_FETCH_FAILED"
	CodeSeriesFetchFailed  Code = "SERIES_FETCH_FAILED"

	// Trend ranking
	CodeInsufficientPeriods Code = "INSUFFICIENT_PERIODS"
	CodeUndefinedChange     Code = "UNDEFINED_CHANGE"

	// Output artifacts
	CodeExportFailed Code = "EXPORT_FAILED"
	CodeChartFailed  Code = "CHART_FAILED"

	// Circuit breaker
	CodeCircuitOpen Code = "CIRCUIT_OPEN"
)
