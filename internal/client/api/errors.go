package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a backend-call failure once, at the API boundary, so
// call sites never inspect raw payload shapes.
type ErrorKind int

const (
	// KindUnknown covers unexpected status codes and undecodable payloads.
	KindUnknown ErrorKind = iota
	// KindValidation is a 400/422 with one or more field messages.
	KindValidation
	// KindTransport means the request never produced an HTTP response.
	KindTransport
	// KindNotFound is a 404 (job or resume deleted elsewhere).
	KindNotFound
	// KindUnauthorized is a 401 (missing, invalid, or expired token).
	KindUnauthorized
)

// Error is the decoded form of a backend failure. Messages holds field
// messages for validation errors, or a single generic message otherwise.
type Error struct {
	Kind     ErrorKind
	Status   int
	Messages []string
}

func (e *Error) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("api error (status %d)", e.Status)
	}
	return strings.Join(e.Messages, "; ")
}

func kindOf(err error) (ErrorKind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return KindUnknown, false
}

// IsNotFound reports whether err is a decoded 404.
func IsNotFound(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindNotFound
}

// IsUnauthorized reports whether err is a decoded 401.
func IsUnauthorized(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindUnauthorized
}

// IsValidation reports whether err carries backend validation messages.
func IsValidation(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindValidation
}

// IsTransport reports whether err means the backend was unreachable.
func IsTransport(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindTransport
}
