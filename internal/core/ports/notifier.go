package ports

import "context"

// Toast kinds.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastWarning = "warning"
	ToastInfo    = "info"
)

// Notifier receives transient user-facing notifications. The upstream client
// is constructed with one so it can surface validation failures without
// depending on the presentation layer.
type Notifier interface {
	Notify(ctx context.Context, kind, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, kind, message string)

func (f NotifierFunc) Notify(ctx context.Context, kind, message string) { f(ctx, kind, message) }
