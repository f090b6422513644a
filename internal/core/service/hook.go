// Package service contains the hook services: one per resource family, each
// bundling that family's upstream calls with request-scoped loading and error
// state. Handlers construct a hook per request, call it, and render from its
// returned values and Err() state; upstream errors never propagate past a
// hook except where a read's failure drives a full-page error state.
package service

import (
	"sync"
	"sync/atomic"

	"github.com/studyoverflow/gateway/internal/core/domain"
)

// hookState is the loading/error pair every hook service embeds. The loading
// flag backs the "disable the triggering control while a call is in flight"
// contract; the error string is the inline message for the last failed call,
// and the kind its classification so transports can answer with an honest
// status.
type hookState struct {
	busy atomic.Bool
	mu   sync.Mutex
	err  string
	kind domain.ErrorKind
}

// begin marks the hook busy and clears the previous error. It reports false
// when a call is already in flight, in which case the caller must refuse the
// operation instead of stacking a concurrent one.
func (h *hookState) begin() bool {
	if !h.busy.CompareAndSwap(false, true) {
		return false
	}
	h.setErr("")
	return true
}

func (h *hookState) end() { h.busy.Store(false) }

// Loading reports whether a call is currently in flight.
func (h *hookState) Loading() bool { return h.busy.Load() }

// Err returns the error message from the last failed call, or "".
func (h *hookState) Err() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// ErrKind classifies the last failure. Locally rejected input reads as
// validation; upstream failures keep their APIError kind.
func (h *hookState) ErrKind() domain.ErrorKind {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.kind
}

// setErr records a locally produced message, e.g. an input rejection.
func (h *hookState) setErr(msg string) {
	h.mu.Lock()
	h.err = msg
	if msg == "" {
		h.kind = ""
	} else {
		h.kind = domain.KindValidation
	}
	h.mu.Unlock()
}

// fail records an upstream failure's user-facing message together with the
// failure's kind. Errors that are not APIErrors (infrastructure faults) read
// as transient.
func (h *hookState) fail(err error, msg string) {
	kind := domain.KindTransient
	if apiErr, ok := domain.AsAPIError(err); ok {
		kind = apiErr.Kind
	}
	h.mu.Lock()
	h.err = msg
	h.kind = kind
	h.mu.Unlock()
}
