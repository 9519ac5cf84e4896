package views

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/client"
	"github.com/yungbote/cablehouse-backend/internal/client/notify"
	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

type Stats struct {
	Total      int
	Pending    int
	InProgress int
	Finished   int
}

func ComputeStats(orders []domain.Order) Stats {
	st := Stats{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case domain.StatusPending:
			st.Pending++
		case domain.StatusInProgress:
			st.InProgress++
		case domain.StatusFinished:
			st.Finished++
		}
	}
	return st
}

// AdminMonitor is the back-office board: every order, every blueprint, and
// the counts per status.
type AdminMonitor struct {
	lifecycle
	orders     *client.OrderService
	blueprints *client.BlueprintService

	orderList     []domain.Order
	blueprintList []domain.Blueprint
}

func NewAdminMonitor(log *logger.Logger, bus *notify.Bus, orders *client.OrderService, blueprints *client.BlueprintService) *AdminMonitor {
	v := &AdminMonitor{orders: orders, blueprints: blueprints}
	v.setup(log.With("view", "AdminMonitor"), bus, realtime.CollectionOrders, realtime.CollectionBlueprints)
	return v
}

func (v *AdminMonitor) Mount(ctx context.Context) { v.mount(ctx, v.fetch) }
func (v *AdminMonitor) Unmount()                  { v.unmount() }

func (v *AdminMonitor) fetch(ctx context.Context, gen uint64, c realtime.Collection) bool {
	switch c {
	case realtime.CollectionOrders:
		list := v.orders.ListOrders(ctx)
		return v.apply(gen, func() { v.orderList = list })
	case realtime.CollectionBlueprints:
		list := v.blueprints.ListBlueprints(ctx)
		return v.apply(gen, func() { v.blueprintList = list })
	}
	return false
}

func (v *AdminMonitor) Orders() []domain.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.orderList)
}

func (v *AdminMonitor) Blueprints() []domain.Blueprint {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.blueprintList)
}

func (v *AdminMonitor) Stats() Stats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return ComputeStats(v.orderList)
}

// FilterBlueprints matches names case-insensitively. An empty query keeps
// everything.
func (v *AdminMonitor) FilterBlueprints(query string) []domain.Blueprint {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := []domain.Blueprint{}
	for _, bp := range v.blueprintList {
		if matches(bp.Name, query) {
			out = append(out, bp)
		}
	}
	return out
}

func (v *AdminMonitor) DeleteOrder(ctx context.Context, id uuid.UUID, confirm Confirmer) client.Result {
	if !v.Mounted() {
		return client.Result{Err: ErrNotMounted}
	}
	if confirm == nil || !confirm.Confirm(fmt.Sprintf("Delete order %s?", id)) {
		return client.Result{Err: ErrDeclined}
	}
	return v.orders.DeleteOrder(ctx, id)
}

func (v *AdminMonitor) DeleteBlueprint(ctx context.Context, id uuid.UUID, confirm Confirmer) client.Result {
	if !v.Mounted() {
		return client.Result{Err: ErrNotMounted}
	}
	if confirm == nil || !confirm.Confirm(fmt.Sprintf("Delete blueprint %s?", id)) {
		return client.Result{Err: ErrDeclined}
	}
	return v.blueprints.DeleteBlueprint(ctx, id)
}
