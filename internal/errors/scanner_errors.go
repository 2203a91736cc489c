package errors

import (
	"fmt"
	"strings"
)

// ErrorCategory represents different types of errors the scanner can hit
type ErrorCategory string

const (
	// Critical errors that should stop the scanner
	ErrorCategoryFatal         ErrorCategory = "FATAL"
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"
	ErrorCategoryCredentials   ErrorCategory = "CREDENTIALS"

	// Recoverable errors: the scan for that instrument degrades or skips
	ErrorCategoryData       ErrorCategory = "DATA"
	ErrorCategoryStrategy   ErrorCategory = "STRATEGY"
	ErrorCategoryExchange   ErrorCategory = "EXCHANGE"
	ErrorCategoryValidation ErrorCategory = "VALIDATION"

	// Transient errors worth retrying
	ErrorCategoryNetwork   ErrorCategory = "NETWORK"
	ErrorCategoryTimeout   ErrorCategory = "TIMEOUT"
	ErrorCategoryRateLimit ErrorCategory = "RATE_LIMIT"
)

// ScanError is a categorized error with component and operation context
type ScanError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
	Retryable  bool
}

// Error implements the error interface
func (e *ScanError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *ScanError) Unwrap() error {
	return e.Underlying
}

// IsRetryable returns whether this error can be retried
func (e *ScanError) IsRetryable() bool {
	return e.Retryable
}

// IsFatal returns whether this error should stop the scanner
func (e *ScanError) IsFatal() bool {
	return e.Category == ErrorCategoryFatal ||
		e.Category == ErrorCategoryCredentials ||
		e.Category == ErrorCategoryConfiguration
}

// New creates a categorized scanner error
func New(category ErrorCategory, component, operation, message string) *ScanError {
	return &ScanError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
		Retryable: isRetryableCategory(category),
	}
}

// Wrap wraps an existing error with scanner error context
func Wrap(err error, category ErrorCategory, component, operation string) *ScanError {
	if err == nil {
		return nil
	}
	return &ScanError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    "operation failed",
		Underlying: err,
		Retryable:  isRetryableCategory(category),
	}
}

// WithRetryable overrides the category default retryability
func (e *ScanError) WithRetryable(retryable bool) *ScanError {
	e.Retryable = retryable
	return e
}

func isRetryableCategory(category ErrorCategory) bool {
	switch category {
	case ErrorCategoryNetwork, ErrorCategoryTimeout, ErrorCategoryRateLimit, ErrorCategoryExchange:
		return true
	case ErrorCategoryFatal, ErrorCategoryCredentials, ErrorCategoryConfiguration, ErrorCategoryValidation:
		return false
	default:
		return true
	}
}

// Categorize classifies a generic error by inspecting its message
func Categorize(err error, component, operation string) *ScanError {
	if err == nil {
		return nil
	}
	if scanErr, ok := err.(*ScanError); ok {
		return scanErr
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "context deadline exceeded"):
		return Wrap(err, ErrorCategoryTimeout, component, operation)
	case strings.Contains(msg, "connection") || strings.Contains(msg, "network") || strings.Contains(msg, "dial"):
		return Wrap(err, ErrorCategoryNetwork, component, operation)
	case strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "authentication"):
		return Wrap(err, ErrorCategoryCredentials, component, operation)
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests"):
		return Wrap(err, ErrorCategoryRateLimit, component, operation)
	case strings.Contains(msg, "insufficient data"):
		return Wrap(err, ErrorCategoryData, component, operation)
	case strings.Contains(msg, "timestamp") || strings.Contains(msg, "invalid"):
		return Wrap(err, ErrorCategoryValidation, component, operation).WithRetryable(false)
	default:
		return Wrap(err, ErrorCategoryExchange, component, operation)
	}
}

// Common error constructors

func NewDataError(component, operation string, err error) *ScanError {
	return Wrap(err, ErrorCategoryData, component, operation)
}

func NewStrategyError(component, operation string, err error) *ScanError {
	return Wrap(err, ErrorCategoryStrategy, component, operation)
}

func NewExchangeError(component, operation string, err error) *ScanError {
	return Wrap(err, ErrorCategoryExchange, component, operation)
}

func NewValidationError(component, operation, message string) *ScanError {
	return New(ErrorCategoryValidation, component, operation, message)
}

func NewConfigurationError(component, operation, message string) *ScanError {
	return New(ErrorCategoryConfiguration, component, operation, message)
}

func NewFatalError(component, operation, message string) *ScanError {
	return New(ErrorCategoryFatal, component, operation, message)
}

// RecoveryAction suggests how the scan loop should react to an error
type RecoveryAction string

const (
	RecoveryActionRetry RecoveryAction = "RETRY"
	RecoveryActionSkip  RecoveryAction = "SKIP"
	RecoveryActionStop  RecoveryAction = "STOP"
	RecoveryActionWait  RecoveryAction = "WAIT"
)

// GetRecoveryAction maps the error category to a scan-loop reaction
func (e *ScanError) GetRecoveryAction() RecoveryAction {
	switch e.Category {
	case ErrorCategoryFatal, ErrorCategoryCredentials, ErrorCategoryConfiguration:
		return RecoveryActionStop
	case ErrorCategoryRateLimit:
		return RecoveryActionWait
	case ErrorCategoryNetwork, ErrorCategoryTimeout, ErrorCategoryExchange:
		return RecoveryActionRetry
	case ErrorCategoryData, ErrorCategoryStrategy, ErrorCategoryValidation:
		return RecoveryActionSkip
	default:
		return RecoveryActionRetry
	}
}
