package bus

import (
	"context"

	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

// Bus carries SSE messages between server instances. Every instance runs a
// forwarder that rebroadcasts what it receives into its local hub.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}
