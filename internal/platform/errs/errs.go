package errs

import "fmt"

// Kind categorizes application errors for HTTP status mapping.
type Kind int

const (
	// Unknown represents an unclassified error (HTTP 500).
	Unknown Kind = iota
	// InvalidInput indicates a missing or malformed target URL (HTTP 400).
	InvalidInput
	// Unreachable indicates the target could not be fetched or answered
	// with an error status.
	Unreachable
	// Timeout indicates the target took too long to respond.
	Timeout
	// ParsingFailed indicates the fetched body could not be parsed.
	ParsingFailed
)

// AppError carries a category, user message, and original cause.
type AppError struct {
	Kind           Kind
	UpstreamStatus int // HTTP status code returned by the target domain
	Message        string
	Cause          error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// FetchFailed reports whether the error belongs to retrieving the document
// rather than to the caller's input. Such failures are reported to clients
// as an analysis result, not as a transport error.
func (e *AppError) FetchFailed() bool {
	switch e.Kind {
	case Unreachable, Timeout, ParsingFailed:
		return true
	default:
		return false
	}
}
