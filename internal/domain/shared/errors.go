package shared

// DomainError is a business-rule violation with a stable machine code.
// The HTTP layer maps codes to status codes; messages are for humans.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a domain error with the given code and message
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Sentinel errors shared across contexts. Context-specific failures use
// NewDomainError with their own codes instead.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUpstreamUnavailable = NewDomainError("UPSTREAM_ERROR", "Upstream analysis service unavailable")
)
