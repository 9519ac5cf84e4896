package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/observability"
	"github.com/yungbote/cablehouse-backend/internal/platform/ctxutil"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

// ChangeNotifier announces a committed mutation. It never blocks on slow
// subscribers and never fails the caller.
type ChangeNotifier interface {
	Changed(ctx context.Context, collection realtime.Collection, op realtime.Operation, id uuid.UUID)
}

type changeNotifier struct {
	emit    SSEEmitter
	metrics *observability.Metrics
}

func NewChangeNotifier(emit SSEEmitter, metrics *observability.Metrics) ChangeNotifier {
	return &changeNotifier{emit: emit, metrics: metrics}
}

func (n *changeNotifier) Changed(ctx context.Context, collection realtime.Collection, op realtime.Operation, id uuid.UUID) {
	if n == nil || n.emit == nil {
		return
	}
	change := realtime.Change{
		Collection: collection,
		Operation:  op,
		ID:         id,
		Origin:     ctxutil.Origin(ctx),
		At:         time.Now().UTC(),
	}
	n.emit.Emit(context.WithoutCancel(ctxutil.Default(ctx)), realtime.SSEMessage{
		Channel: realtime.ChangesChannel,
		Event:   realtime.SSEEventDataChanged,
		Data:    change,
	})
	n.metrics.IncChangeEvent(string(collection), string(op))
}
