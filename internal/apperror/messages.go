package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	CodeConfigurationError: "Configuration error",

	CodeServiceTimeout:    "Service request timeout",
	CodeRateLimitExceeded: "Rate limit exceeded",

	CodeInternalError: "Internal error",
	CodeUnknownError:  "An unknown error occurred",

	CodeUnknownCategory: "Category is not in the catalog",
	CodeCatalogLoad:     "Failed to load catalog file",

	CodeRemoteUnavailable:  "Remote source unavailable, fallback used",
	CodeRateFetchFailed:    "Failed to fetch exchange rate",
	CodeInvalidRatePayload: "Exchange rate payload is malformed",
	CodeListingFetchFailed: "Failed to fetch marketplace listings",
	CodeSeriesFetchFailed:  "Failed to fetch time series",

	CodeInsufficientPeriods: "Entity has fewer than two distinct periods",
	CodeUndefinedChange:     "Percentage change undefined for a zero start value",

	CodeExportFailed: "Failed to write export file",
	CodeChartFailed:  "Failed to render chart",

	CodeCircuitOpen: "Circuit breaker is open",
}
