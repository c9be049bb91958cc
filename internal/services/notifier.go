package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/lifeline-backend/internal/observability"
	"github.com/yungbote/lifeline-backend/internal/realtime"
)

// ChangeNotifier tells connected views that a row changed so they refetch
// the collection. Call it only after the write committed.
type ChangeNotifier interface {
	Changed(ctx context.Context, event realtime.SSEEvent, id uuid.UUID)
}

type changeNotifier struct {
	emit    SSEEmitter
	metrics *observability.Metrics
}

func NewChangeNotifier(emit SSEEmitter, metrics *observability.Metrics) ChangeNotifier {
	return &changeNotifier{emit: emit, metrics: metrics}
}

func (n *changeNotifier) Changed(ctx context.Context, event realtime.SSEEvent, id uuid.UUID) {
	if n == nil || n.emit == nil || id == uuid.Nil {
		return
	}
	n.emit.Emit(context.WithoutCancel(ctx), realtime.Change(event, id))
	n.metrics.ObserveChange(string(event))
}

type nopNotifier struct{}

func (nopNotifier) Changed(context.Context, realtime.SSEEvent, uuid.UUID) {}

// notifierOrNop lets constructors accept a nil notifier.
func notifierOrNop(n ChangeNotifier) ChangeNotifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
