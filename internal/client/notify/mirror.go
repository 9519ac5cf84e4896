package notify

import (
	"sync"

	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

// Mirror carries changes between client instances.
type Mirror interface {
	// Join starts delivering remote changes into b and returns the function
	// that stops it.
	Join(b *Bus) (leave func())
	// Send forwards a change published on from.
	Send(from *Bus, c realtime.Change)
}

// LocalMirror links buses living in the same process, the way tabs of one
// browser share storage events: a change reaches every joined bus except the
// one it was published on.
type LocalMirror struct {
	mu    sync.RWMutex
	buses map[*Bus]struct{}
}

func NewLocalMirror() *LocalMirror {
	return &LocalMirror{buses: make(map[*Bus]struct{})}
}

func (m *LocalMirror) Join(b *Bus) func() {
	m.mu.Lock()
	m.buses[b] = struct{}{}
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.buses, b)
		m.mu.Unlock()
	}
}

func (m *LocalMirror) Send(from *Bus, c realtime.Change) {
	m.mu.RLock()
	targets := make([]*Bus, 0, len(m.buses))
	for b := range m.buses {
		if b != from {
			targets = append(targets, b)
		}
	}
	m.mu.RUnlock()
	for _, b := range targets {
		b.deliver(c)
	}
}
