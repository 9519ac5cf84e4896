package views

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/yungbote/cablehouse-backend/internal/client"
	"github.com/yungbote/cablehouse-backend/internal/client/notify"
	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

const DefaultTick = time.Second

// WorkerDashboard shows one active task to the floor worker, with start and
// finish actions and a running production timer.
type WorkerDashboard struct {
	lifecycle
	orders *client.OrderService
	now    func() time.Time
	tick   time.Duration

	list     []domain.Order
	selected string

	elapsed    chan string
	stopTicker context.CancelFunc
}

func NewWorkerDashboard(log *logger.Logger, bus *notify.Bus, orders *client.OrderService) *WorkerDashboard {
	v := &WorkerDashboard{
		orders:  orders,
		now:     time.Now,
		tick:    DefaultTick,
		elapsed: make(chan string, 1),
	}
	v.setup(log.With("view", "WorkerDashboard"), bus, realtime.CollectionOrders)
	return v
}

// Mount loads the orders, subscribes to changes and starts the timer.
func (v *WorkerDashboard) Mount(ctx context.Context) {
	v.mount(ctx, v.fetch)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stopTicker != nil || !v.mounted {
		return
	}
	tctx, cancel := context.WithCancel(context.Background())
	v.stopTicker = cancel
	go v.runTicker(tctx)
}

func (v *WorkerDashboard) Unmount() {
	v.mu.Lock()
	stop := v.stopTicker
	v.stopTicker = nil
	v.mu.Unlock()
	if stop != nil {
		stop()
	}
	v.unmount()
}

func (v *WorkerDashboard) fetch(ctx context.Context, gen uint64, _ realtime.Collection) bool {
	list := v.orders.ListOrders(ctx)
	return v.apply(gen, func() { v.list = list })
}

func (v *WorkerDashboard) Orders() []domain.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.list)
}

// Select picks the active task by order id or by display reference.
func (v *WorkerDashboard) Select(key string) {
	v.mu.Lock()
	v.selected = key
	v.mu.Unlock()
}

// Active is the selected order, or the first one listed when nothing is
// selected. A selection that is no longer listed yields no active order.
func (v *WorkerDashboard) Active() (domain.Order, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.activeLocked()
}

func (v *WorkerDashboard) activeLocked() (domain.Order, bool) {
	if len(v.list) == 0 {
		return domain.Order{}, false
	}
	if v.selected == "" {
		return v.list[0], true
	}
	for _, o := range v.list {
		if o.ID.String() == v.selected || strconv.Itoa(o.Reference) == v.selected {
			return o, true
		}
	}
	return domain.Order{}, false
}

// Elapsed renders the active order's production time as MM:SS.
func (v *WorkerDashboard) Elapsed() string {
	s, _ := v.elapsedNow()
	return s
}

// elapsedNow also reports whether the active order's timer is running.
func (v *WorkerDashboard) elapsedNow() (string, bool) {
	v.mu.Lock()
	o, ok := v.activeLocked()
	now := v.now
	v.mu.Unlock()
	if !ok {
		return domain.FormatElapsed(0), false
	}
	return domain.FormatElapsed(o.Elapsed(now())), o.Status == domain.StatusInProgress
}

// Ticks delivers the running timer once per tick while the active order is
// In Progress. A slow reader only ever sees the latest value.
func (v *WorkerDashboard) Ticks() <-chan string { return v.elapsed }

func (v *WorkerDashboard) Start(ctx context.Context) client.Result {
	return v.advance(ctx, domain.StatusInProgress)
}

func (v *WorkerDashboard) Finish(ctx context.Context) client.Result {
	return v.advance(ctx, domain.StatusFinished)
}

func (v *WorkerDashboard) advance(ctx context.Context, to domain.OrderStatus) client.Result {
	_, gen, mounted := v.current()
	if !mounted {
		return client.Result{Err: ErrNotMounted}
	}
	o, ok := v.Active()
	if !ok {
		return client.Result{Err: ErrNoActiveOrder}
	}
	res := v.orders.UpdateOrder(ctx, o, to)
	if res.Success && res.Order != nil {
		updated := *res.Order
		v.apply(gen, func() {
			for i := range v.list {
				if v.list[i].ID == updated.ID && v.list[i].Version < updated.Version {
					v.list[i] = updated
				}
			}
		})
	}
	return res
}

func (v *WorkerDashboard) runTicker(ctx context.Context) {
	t := time.NewTicker(v.tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if s, running := v.elapsedNow(); running {
				v.publishElapsed(s)
			}
		}
	}
}

func (v *WorkerDashboard) publishElapsed(s string) {
	select {
	case v.elapsed <- s:
		return
	default:
	}
	select {
	case <-v.elapsed:
	default:
	}
	select {
	case v.elapsed <- s:
	default:
	}
}
