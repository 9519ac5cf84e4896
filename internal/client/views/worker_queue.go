package views

import (
	"context"
	"slices"

	"github.com/yungbote/cablehouse-backend/internal/client"
	"github.com/yungbote/cablehouse-backend/internal/client/notify"
	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

// WorkerQueue is the sidebar list of orders still on the floor.
type WorkerQueue struct {
	lifecycle
	orders *client.OrderService
	list   []domain.Order
}

func NewWorkerQueue(log *logger.Logger, bus *notify.Bus, orders *client.OrderService) *WorkerQueue {
	v := &WorkerQueue{orders: orders}
	v.setup(log.With("view", "WorkerQueue"), bus, realtime.CollectionOrders)
	return v
}

func (v *WorkerQueue) Mount(ctx context.Context) { v.mount(ctx, v.fetch) }
func (v *WorkerQueue) Unmount()                  { v.unmount() }

func (v *WorkerQueue) fetch(ctx context.Context, gen uint64, _ realtime.Collection) bool {
	list := v.orders.ListOpenOrders(ctx)
	return v.apply(gen, func() { v.list = list })
}

func (v *WorkerQueue) Orders() []domain.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.list)
}
