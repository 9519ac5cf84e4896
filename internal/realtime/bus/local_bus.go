package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

// localBus is the single-instance Bus used when no redis address is
// configured. Publish hands the message straight to the registered forwarders.
type localBus struct {
	mu       sync.RWMutex
	handlers map[int]func(realtime.SSEMessage)
	next     int
	closed   bool
}

func NewLocalBus() Bus {
	return &localBus{handlers: make(map[int]func(realtime.SSEMessage))}
}

func (b *localBus) Publish(ctx context.Context, msg realtime.SSEMessage) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return fmt.Errorf("local bus closed")
	}
	for _, h := range b.handlers {
		h(msg)
	}
	return nil
}

func (b *localBus) StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error {
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("local bus closed")
	}
	id := b.next
	b.next++
	b.handlers[id] = onMsg
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}()
	return nil
}

func (b *localBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = make(map[int]func(realtime.SSEMessage))
	return nil
}
