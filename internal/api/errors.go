package api

import "errors"

// ErrorKind classifies a normalized API failure so callers can branch on
// the failure class instead of matching message text.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindUnauthenticated means no token was present for a request that
	// requires one.
	KindUnauthenticated
	// KindUnauthorized means the backend rejected the credentials or the
	// token it was given.
	KindUnauthorized
	// KindValidation means the backend rejected the request payload.
	KindValidation
	// KindTransport means the request never produced an HTTP response.
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is the single error shape surfaced by the API client. Message is
// always human-readable: either the server-provided message or a localized
// fallback. Callers never see transport-level error objects.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds a normalized API error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the ErrorKind from err, or KindUnknown when err is not
// a normalized API error.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}
