package sync

import "context"

// Notifier delivers user-facing messages: sync outcomes, conflicts,
// remediation hints. Reconciliation failures are converted into
// notifications at the operation boundary instead of escaping into the UI
// layer.
type Notifier interface {
	Notify(ctx context.Context, format string, args ...any)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, ...any) {}
