// Package notify implements the toast bus: per-session ordered lists of
// transient notifications with automatic expiry.
//
// The bus is process-wide but session-keyed. Producers are the hook services
// and the upstream client, which receives the bus as its notifier at
// construction time; consumers are the page renders, which drain the
// session's pending toasts into the layout.
package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyoverflow/gateway/internal/api/metrics"
	"github.com/studyoverflow/gateway/internal/core/ports"
	"github.com/studyoverflow/gateway/internal/core/reqctx"
)

// DefaultDuration is how long a toast stays visible when the producer does
// not say otherwise.
const DefaultDuration = 5 * time.Second

// Toast is one transient notification. Identity is the ID; no two toasts
// share an ID within the same bus lifetime.
type Toast struct {
	ID       string        `json:"id"`
	Message  string        `json:"message"`
	Kind     string        `json:"kind"`
	Duration time.Duration `json:"-"`
}

type sessionToasts struct {
	list   []Toast
	timers map[string]*time.Timer
}

// Bus is the toast bus. The zero value is not usable; use NewBus.
type Bus struct {
	mu       sync.Mutex
	sessions map[string]*sessionToasts
}

func NewBus() *Bus {
	return &Bus{sessions: make(map[string]*sessionToasts)}
}

// Show appends a toast to the session's ordered list and schedules its
// automatic removal. It returns the toast's id.
func (b *Bus) Show(sid, message, kind string, duration time.Duration) string {
	if duration <= 0 {
		duration = DefaultDuration
	}

	// Millisecond timestamp plus a random suffix keeps ids unique even for
	// toasts created within the same tick.
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	id := fmt.Sprintf("toast-%d-%s", time.Now().UnixMilli(), suffix)

	b.mu.Lock()
	defer b.mu.Unlock()

	st := b.sessions[sid]
	if st == nil {
		st = &sessionToasts{timers: make(map[string]*time.Timer)}
		b.sessions[sid] = st
	}
	st.list = append(st.list, Toast{ID: id, Message: message, Kind: kind, Duration: duration})
	// The timer only ever removes its own id; if the toast was already
	// removed or the list cleared, Remove is a no-op on the stale id.
	st.timers[id] = time.AfterFunc(duration, func() { b.Remove(sid, id) })

	metrics.ToastsShownTotal.WithLabelValues(kind).Inc()
	return id
}

// Remove deletes the toast with the given id. Removing an unknown or
// already-removed id is a no-op.
func (b *Bus) Remove(sid, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removeLocked(sid, id)
}

func (b *Bus) removeLocked(sid, id string) {
	st := b.sessions[sid]
	if st == nil {
		return
	}
	if timer, ok := st.timers[id]; ok {
		timer.Stop()
		delete(st.timers, id)
	}
	for i, toast := range st.list {
		if toast.ID == id {
			st.list = append(st.list[:i], st.list[i+1:]...)
			break
		}
	}
	if len(st.list) == 0 {
		delete(b.sessions, sid)
	}
}

// ClearAll empties the session's list and cancels every pending removal.
func (b *Bus) ClearAll(sid string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	st := b.sessions[sid]
	if st == nil {
		return
	}
	for _, timer := range st.timers {
		timer.Stop()
	}
	delete(b.sessions, sid)
}

// List returns the session's pending toasts in insertion order.
func (b *Bus) List(sid string) []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	st := b.sessions[sid]
	if st == nil {
		return nil
	}
	return append([]Toast(nil), st.list...)
}

// Drain returns the pending toasts and clears the session, for page renders
// that display everything queued since the last render.
func (b *Bus) Drain(sid string) []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	st := b.sessions[sid]
	if st == nil {
		return nil
	}
	out := append([]Toast(nil), st.list...)
	for _, timer := range st.timers {
		timer.Stop()
	}
	delete(b.sessions, sid)
	return out
}

// Notify implements ports.Notifier, letting the upstream client broadcast
// without importing the presentation layer. Calls without a session in ctx
// are dropped.
func (b *Bus) Notify(ctx context.Context, kind, message string) {
	sid := reqctx.SessionID(ctx)
	if sid == "" {
		return
	}
	b.Show(sid, message, kind, DefaultDuration)
}

var _ ports.Notifier = (*Bus)(nil)
