package notify

import (
	"context"
	"testing"
	"time"

	"github.com/studyoverflow/gateway/internal/core/ports"
	"github.com/studyoverflow/gateway/internal/core/reqctx"
)

func TestBus_ShowOrderAndUniqueIDs(t *testing.T) {
	bus := NewBus()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := bus.Show("sid", "msg", ports.ToastInfo, time.Minute)
		if seen[id] {
			t.Fatalf("duplicate toast id %q", id)
		}
		seen[id] = true
	}

	list := bus.List("sid")
	if len(list) != 50 {
		t.Fatalf("expected 50 toasts, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID == list[i].ID {
			t.Fatalf("adjacent duplicate id %q", list[i].ID)
		}
	}
}

func TestBus_AutoExpiry(t *testing.T) {
	bus := NewBus()

	id := bus.Show("sid", "x", ports.ToastSuccess, 100*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	for _, toast := range bus.List("sid") {
		if toast.ID == id {
			t.Fatalf("toast %q should have expired", id)
		}
	}
}

func TestBus_RemoveIdempotent(t *testing.T) {
	bus := NewBus()
	id := bus.Show("sid", "x", ports.ToastError, time.Minute)

	bus.Remove("sid", id)
	bus.Remove("sid", id) // no-op
	bus.Remove("sid", "toast-0-nonexistent")

	if got := bus.List("sid"); len(got) != 0 {
		t.Fatalf("expected empty list, got %d toasts", len(got))
	}
}

func TestBus_ClearAllCancelsTimers(t *testing.T) {
	bus := NewBus()
	bus.Show("sid", "a", ports.ToastInfo, 50*time.Millisecond)
	bus.Show("sid", "b", ports.ToastInfo, 50*time.Millisecond)
	bus.ClearAll("sid")

	// A new toast added after the clear must survive the old timers firing.
	id := bus.Show("sid", "c", ports.ToastInfo, time.Minute)
	time.Sleep(80 * time.Millisecond)

	list := bus.List("sid")
	if len(list) != 1 || list[0].ID != id {
		t.Fatalf("expected only the post-clear toast, got %+v", list)
	}
}

func TestBus_DrainEmptiesSession(t *testing.T) {
	bus := NewBus()
	bus.Show("sid", "a", ports.ToastWarning, time.Minute)
	bus.Show("sid", "b", ports.ToastInfo, time.Minute)

	drained := bus.Drain("sid")
	if len(drained) != 2 || drained[0].Message != "a" || drained[1].Message != "b" {
		t.Fatalf("unexpected drain result: %+v", drained)
	}
	if got := bus.List("sid"); len(got) != 0 {
		t.Fatalf("expected empty list after drain")
	}
}

func TestBus_SessionsAreIsolated(t *testing.T) {
	bus := NewBus()
	bus.Show("alice", "for alice", ports.ToastInfo, time.Minute)

	if got := bus.List("bob"); len(got) != 0 {
		t.Fatalf("bob should have no toasts, got %+v", got)
	}
}

func TestBus_NotifyUsesContextSession(t *testing.T) {
	bus := NewBus()

	ctx := reqctx.WithSessionID(context.Background(), "sid-7")
	bus.Notify(ctx, ports.ToastError, "validation failed")

	list := bus.List("sid-7")
	if len(list) != 1 || list[0].Kind != ports.ToastError || list[0].Message != "validation failed" {
		t.Fatalf("unexpected toasts: %+v", list)
	}

	// No session in ctx: dropped, not panicking, not globally visible.
	bus.Notify(context.Background(), ports.ToastInfo, "orphan")
	if len(bus.List("")) != 0 {
		t.Fatalf("anonymous notify must be dropped")
	}
}
