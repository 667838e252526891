// Package apperror provides coded application errors.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"
)

// AppError is a coded error. Two AppErrors match under errors.Is when their
// codes are equal.
type AppError struct {
	Code       Code      `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"statusCode"`
	Context    string    `json:"context,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	cause      error
	stack      []uintptr
}

func (e *AppError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Context)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ToLog flattens the error into key/value pairs for structured logging.
func (e *AppError) ToLog() []any {
	kv := []any{"code", string(e.Code), "message", e.Message}
	if e.Context != "" {
		kv = append(kv, "context", e.Context)
	}
	if e.cause != nil {
		kv = append(kv, "cause", e.cause.Error())
	}
	if len(e.stack) > 0 {
		kv = append(kv, "stack", e.formatStack())
	}
	return kv
}

func (e *AppError) formatStack() string {
	var sb strings.Builder
	frames := runtime.CallersFrames(e.stack)
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			fmt.Fprintf(&sb, "\n\t%s:%d %s", frame.File, frame.Line, frame.Function)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

func captureStack() []uintptr {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	return pcs[:n]
}

// New creates an AppError with the given code and options.
func New(code Code, opts ...Option) *AppError {
	err := &AppError{
		Code:       code,
		Message:    messages[code],
		StatusCode: getDefaultStatusCode(code),
		Timestamp:  time.Now(),
		stack:      captureStack(),
	}

	for _, opt := range opts {
		opt(err)
	}

	if err.Message == "" {
		err.Message = string(code)
	}

	return err
}

// Option is a functional option for AppError.
type Option func(*AppError)

func WithMessage(message string) Option {
	return func(e *AppError) {
		e.Message = message
	}
}

func WithContext(context string) Option {
	return func(e *AppError) {
		e.Context = context
	}
}

func WithStatusCode(statusCode int) Option {
	return func(e *AppError) {
		e.StatusCode = statusCode
	}
}

func WithCause(cause error) Option {
	return func(e *AppError) {
		e.cause = cause
	}
}

// Sentinels for errors.Is comparisons; only the code is compared.
var (
	ErrUnknownCategory     = &AppError{Code: CodeUnknownCategory}
	ErrInvalidInput        = &AppError{Code: CodeInvalidInput}
	ErrInsufficientPeriods = &AppError{Code: CodeInsufficientPeriods}
	ErrUndefinedChange     = &AppError{Code: CodeUndefinedChange}
	ErrRemoteUnavailable   = &AppError{Code: CodeRemoteUnavailable}
)

// UnknownCategory reports a category id missing from the catalog.
func UnknownCategory(id string) *AppError {
	return New(CodeUnknownCategory, WithContext(fmt.Sprintf("category=%q", id)))
}

// InvalidInput reports a non-positive or malformed numeric input.
func InvalidInput(field string, value any) *AppError {
	return New(CodeInvalidInput, WithContext(fmt.Sprintf("%s=%v", field, value)))
}

// External wraps a failure of a remote collaborator.
func External(code Code, context string, cause error) *AppError {
	return New(code, WithContext(context), WithCause(cause), WithStatusCode(http.StatusServiceUnavailable))
}

// Internal wraps an unexpected local failure.
func Internal(code Code, context string, cause error) *AppError {
	return New(code, WithContext(context), WithCause(cause), WithStatusCode(http.StatusInternalServerError))
}

// Wrap converts err into an AppError, keeping existing codes.
func Wrap(err error, code Code, context string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if context != "" && appErr.Context == "" {
			appErr.Context = context
		}
		return appErr
	}

	return Internal(code, context, err)
}

// GetCode extracts the code from err, or UNKNOWN_ERROR.
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknownError
}

func getDefaultStatusCode(code Code) int {
	switch {
	case code == CodeUnknownCategory,
		strings.Contains(string(code), "NOT_FOUND"):
		return http.StatusNotFound

	case code == CodeInsufficientPeriods,
		code == CodeUndefinedChange,
		strings.Contains(string(code), "INVALID"):
		return http.StatusUnprocessableEntity

	case code == CodeRemoteUnavailable,
		code == CodeCircuitOpen,
		strings.Contains(string(code), "FETCH"),
		strings.Contains(string(code), "TIMEOUT"):
		return http.StatusServiceUnavailable

	case code == CodeRateLimitExceeded:
		return http.StatusTooManyRequests

	default:
		return http.StatusInternalServerError
	}
}
