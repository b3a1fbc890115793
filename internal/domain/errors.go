package domain

import "fmt"

// errors.go defines domain-specific error types.
type domainErr struct {
	message string
}

// Error returns the error message.
func (e domainErr) Error() string {
	return e.message
}

// NotFoundErr represents an error when a requested entity is not found.
type NotFoundErr struct {
	domainErr
}

// NewNotFoundErr creates a new NotFoundErr with the given message.
func NewNotFoundErr(message string) *NotFoundErr {
	return &NotFoundErr{
		domainErr: domainErr{message: message},
	}
}

// ValidationErr represents an error when validation fails.
type ValidationErr struct {
	domainErr
}

// NewValidationErr creates a new ValidationErr with the given message.
func NewValidationErr(message string) *ValidationErr {
	return &ValidationErr{
		domainErr: domainErr{message: message},
	}
}

// DimensionMismatchErr represents a comparison between vectors of different
// length. This is a programming or configuration error and is never retried.
type DimensionMismatchErr struct {
	domainErr
}

// NewDimensionMismatchErr creates a new DimensionMismatchErr for the given vector lengths.
func NewDimensionMismatchErr(lenA, lenB int) *DimensionMismatchErr {
	return &DimensionMismatchErr{
		domainErr: domainErr{message: fmt.Sprintf("vector dimension mismatch: %d vs %d", lenA, lenB)},
	}
}

// ProviderErr represents a transient failure of the embedding provider.
type ProviderErr struct {
	domainErr
	cause error
}

// NewProviderErr creates a new ProviderErr wrapping the underlying cause.
func NewProviderErr(cause error) *ProviderErr {
	return &ProviderErr{
		domainErr: domainErr{message: fmt.Sprintf("embedding provider call failed: %v", cause)},
		cause:     cause,
	}
}

// Unwrap returns the underlying cause.
func (e *ProviderErr) Unwrap() error {
	return e.cause
}

// ProviderTimeoutErr represents an embedding provider call that exceeded its
// configured time bound. It counts as a provider failure for circuit-breaking.
type ProviderTimeoutErr struct {
	domainErr
}

// NewProviderTimeoutErr creates a new ProviderTimeoutErr.
func NewProviderTimeoutErr(message string) *ProviderTimeoutErr {
	return &ProviderTimeoutErr{
		domainErr: domainErr{message: message},
	}
}

// ProviderUnavailableErr indicates the circuit to the embedding provider is
// open and the call was rejected without reaching the provider.
type ProviderUnavailableErr struct {
	domainErr
}

// NewProviderUnavailableErr creates a new ProviderUnavailableErr.
func NewProviderUnavailableErr(message string) *ProviderUnavailableErr {
	return &ProviderUnavailableErr{
		domainErr: domainErr{message: message},
	}
}

// MatchingUnavailableErr indicates the matching operation failed as a whole,
// typically because the job's own embedding could not be obtained.
type MatchingUnavailableErr struct {
	domainErr
	cause error
}

// NewMatchingUnavailableErr creates a new MatchingUnavailableErr wrapping the underlying cause.
func NewMatchingUnavailableErr(cause error) *MatchingUnavailableErr {
	return &MatchingUnavailableErr{
		domainErr: domainErr{message: fmt.Sprintf("matching unavailable: %v", cause)},
		cause:     cause,
	}
}

// Unwrap returns the underlying cause.
func (e *MatchingUnavailableErr) Unwrap() error {
	return e.cause
}

// CacheUnavailableErr indicates the cache service failed. It is always
// recovered locally (log and compute directly) and never surfaced to callers.
type CacheUnavailableErr struct {
	domainErr
	cause error
}

// NewCacheUnavailableErr creates a new CacheUnavailableErr wrapping the underlying cause.
func NewCacheUnavailableErr(cause error) *CacheUnavailableErr {
	return &CacheUnavailableErr{
		domainErr: domainErr{message: fmt.Sprintf("cache unavailable: %v", cause)},
		cause:     cause,
	}
}

// Unwrap returns the underlying cause.
func (e *CacheUnavailableErr) Unwrap() error {
	return e.cause
}

// IsEmbeddingFailure reports whether err is one of the per-candidate
// recoverable embedding failures (provider error, open circuit, timeout).
func IsEmbeddingFailure(err error) bool {
	switch err.(type) {
	case *ProviderErr, *ProviderUnavailableErr, *ProviderTimeoutErr:
		return true
	}
	return false
}
