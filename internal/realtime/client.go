package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
)

const defaultOutboundBuffer = 32

type SSEClient struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Channels map[string]bool
	Outbound chan SSEMessage
	done     chan struct{}
	once     sync.Once
	Logger   *logger.Logger
}

func (c *SSEClient) Done() <-chan struct{} { return c.done }
