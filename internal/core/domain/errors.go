package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorKind classifies an upstream failure so callers can pattern-match
// exhaustively instead of inspecting nested transport fields.
type ErrorKind string

const (
	// KindValidation is a 422: the upstream rejected the payload. The client
	// has already broadcast the message as an error toast.
	KindValidation ErrorKind = "validation"
	// KindUnauthenticated is a 401 carrying the unauthenticated marker. The
	// client has already purged the session token.
	KindUnauthenticated ErrorKind = "unauthenticated"
	// KindForbidden is a 403, or a 401 without the marker.
	KindForbidden ErrorKind = "forbidden"
	// KindNotFound is a 404.
	KindNotFound ErrorKind = "not_found"
	// KindTransient covers 5xx responses and network-level failures. Session
	// state is never purged on a transient failure.
	KindTransient ErrorKind = "transient"
	// KindRejected is any other 4xx, typically a business-rule rejection.
	KindRejected ErrorKind = "rejected"
)

// APIError is the typed failure every upstream call returns on a non-2xx
// response or transport error. Status is 0 for network-level failures.
type APIError struct {
	Status  int
	Kind    ErrorKind
	Message string
	// Fields holds per-field validation messages when the upstream returns
	// them on a 422.
	Fields map[string][]string
	// RedirectToLogin is set by the client on an unauthenticated response
	// when the current path is not already a public entry page.
	RedirectToLogin bool
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream unreachable: %s", e.Message)
	}
	return fmt.Sprintf("upstream %d: %s", e.Status, e.Message)
}

// Transient reports whether the failure should be treated as recoverable
// without touching session state.
func (e *APIError) Transient() bool { return e.Kind == KindTransient }

// FlattenFields joins per-field validation messages into one human-readable
// string, in stable field order.
func (e *APIError) FlattenFields() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e.Fields[f], ", "))
	}
	return strings.Join(parts, "; ")
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindForStatus maps an HTTP status to its error kind. The unauthenticated
// marker is handled separately by the client; a bare 401 lands on forbidden.
func KindForStatus(status int) ErrorKind {
	switch {
	case status == 422:
		return KindValidation
	case status == 401, status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status >= 500 || status == 0:
		return KindTransient
	default:
		return KindRejected
	}
}
