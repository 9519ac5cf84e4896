package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

// Handler receives one change. It runs on the publisher's goroutine.
type Handler func(realtime.Change)

// Bus is the in-process change bus of one client instance. Publish delivers
// to the subscribers present at that moment, once each, then hands the change
// to every attached mirror so other instances hear it too. Nothing is
// replayed to late subscribers.
type Bus struct {
	log    *logger.Logger
	origin string

	mu      sync.RWMutex
	nextID  uint64
	subs    map[uint64]Handler
	mirrors []Mirror
}

func NewBus(log *logger.Logger, origin string) *Bus {
	if origin == "" {
		origin = uuid.NewString()
	}
	return &Bus{
		log:    log.With("component", "NotifyBus", "origin", origin),
		origin: origin,
		subs:   make(map[uint64]Handler),
	}
}

func (b *Bus) Origin() string { return b.origin }

// Subscribe registers fn and returns the function that removes it. The
// returned function is safe to call more than once.
func (b *Bus) Subscribe(fn Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish stamps the change with this bus' origin, delivers it locally and
// forwards it to the mirrors.
func (b *Bus) Publish(c realtime.Change) {
	if c.Origin == "" {
		c.Origin = b.origin
	}
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}
	b.deliver(c)

	b.mu.RLock()
	mirrors := append([]Mirror(nil), b.mirrors...)
	b.mu.RUnlock()
	for _, m := range mirrors {
		m.Send(b, c)
	}
}

// Attach joins a mirror. Changes arriving through it reach local
// subscribers but are not forwarded again.
func (b *Bus) Attach(m Mirror) func() {
	leave := m.Join(b)
	b.mu.Lock()
	b.mirrors = append(b.mirrors, m)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			for i, cur := range b.mirrors {
				if cur == m {
					b.mirrors = append(b.mirrors[:i], b.mirrors[i+1:]...)
					break
				}
			}
			b.mu.Unlock()
			leave()
		})
	}
}

func (b *Bus) deliver(c realtime.Change) {
	b.mu.RLock()
	ids := make([]uint64, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	b.mu.RUnlock()

	for _, id := range ids {
		// A handler may unsubscribe others while we iterate.
		b.mu.RLock()
		fn, ok := b.subs[id]
		b.mu.RUnlock()
		if !ok {
			continue
		}
		b.safeCall(fn, c)
	}
}

func (b *Bus) safeCall(fn Handler, c realtime.Change) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("Change handler panicked", "collection", c.Collection, "id", c.ID, "panic", r)
		}
	}()
	fn(c)
}
