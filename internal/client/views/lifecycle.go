package views

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/yungbote/cablehouse-backend/internal/client/notify"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

var (
	ErrDeclined      = errors.New("action not confirmed")
	ErrNoActiveOrder = errors.New("no active order")
	ErrNotMounted    = errors.New("view not mounted")
)

// Confirmer asks the operator to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

type fetchFunc func(ctx context.Context, gen uint64, c realtime.Collection) bool

// lifecycle is the mount state shared by every view. Each mount starts a new
// generation; results fetched under an older one are dropped, so a request
// still in flight at Unmount never lands.
type lifecycle struct {
	log   *logger.Logger
	bus   *notify.Bus
	watch []realtime.Collection

	mu        sync.Mutex
	mounted   bool
	gen       uint64
	ctx       context.Context
	unsub     func()
	refreshes atomic.Int64
}

func (l *lifecycle) setup(log *logger.Logger, bus *notify.Bus, watch ...realtime.Collection) {
	l.log = log
	l.bus = bus
	l.watch = watch
}

func (l *lifecycle) mount(ctx context.Context, fetch fetchFunc) {
	l.mu.Lock()
	if l.mounted {
		l.mu.Unlock()
		return
	}
	l.mounted = true
	l.gen++
	gen := l.gen
	live := context.WithoutCancel(ctx)
	l.ctx = live
	l.mu.Unlock()

	var unsub func()
	if l.bus != nil {
		unsub = l.bus.Subscribe(func(c realtime.Change) {
			if !l.watches(c.Collection) {
				return
			}
			ctx, gen, ok := l.current()
			if !ok {
				return
			}
			if fetch(ctx, gen, c.Collection) {
				l.refreshes.Add(1)
			}
		})
	}

	l.mu.Lock()
	if l.mounted && l.gen == gen {
		l.unsub = unsub
		unsub = nil
	}
	l.mu.Unlock()
	if unsub != nil {
		unsub()
		return
	}

	for _, c := range l.watch {
		fetch(live, gen, c)
	}
	l.log.Debug("View mounted", "generation", gen)
}

func (l *lifecycle) unmount() {
	l.mu.Lock()
	if !l.mounted {
		l.mu.Unlock()
		return
	}
	l.mounted = false
	l.gen++
	unsub := l.unsub
	l.unsub = nil
	l.mu.Unlock()
	if unsub != nil {
		unsub()
	}
	l.log.Debug("View unmounted")
}

func (l *lifecycle) current() (context.Context, uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctx, l.gen, l.mounted
}

// apply runs set under the view lock if gen is still the live mount.
func (l *lifecycle) apply(gen uint64, set func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.mounted || l.gen != gen {
		return false
	}
	set()
	return true
}

func (l *lifecycle) watches(c realtime.Collection) bool {
	for _, w := range l.watch {
		if w == c {
			return true
		}
	}
	return false
}

// Mounted reports whether the view is live.
func (l *lifecycle) Mounted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mounted
}

// Refreshes counts re-fetches triggered by change notifications.
func (l *lifecycle) Refreshes() int64 { return l.refreshes.Load() }

func matches(name, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), q)
}
