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

// UserCatalog is the public storefront of blueprints.
type UserCatalog struct {
	lifecycle
	blueprints *client.BlueprintService
	orders     *client.OrderService
	list       []domain.Blueprint
}

func NewUserCatalog(log *logger.Logger, bus *notify.Bus, blueprints *client.BlueprintService, orders *client.OrderService) *UserCatalog {
	v := &UserCatalog{blueprints: blueprints, orders: orders}
	v.setup(log.With("view", "UserCatalog"), bus, realtime.CollectionBlueprints)
	return v
}

func (v *UserCatalog) Mount(ctx context.Context) { v.mount(ctx, v.fetch) }
func (v *UserCatalog) Unmount()                  { v.unmount() }

func (v *UserCatalog) fetch(ctx context.Context, gen uint64, _ realtime.Collection) bool {
	list := v.blueprints.ListBlueprints(ctx)
	return v.apply(gen, func() { v.list = list })
}

func (v *UserCatalog) Blueprints() []domain.Blueprint {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.list)
}

func (v *UserCatalog) Filter(query string) []domain.Blueprint {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := []domain.Blueprint{}
	for _, bp := range v.list {
		if matches(bp.Name, query) {
			out = append(out, bp)
		}
	}
	return out
}

// Order places an order for a blueprint currently shown in the catalog.
func (v *UserCatalog) Order(ctx context.Context, blueprintID uuid.UUID) client.Result {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return client.Result{Err: ErrNotMounted}
	}
	idx := slices.IndexFunc(v.list, func(bp domain.Blueprint) bool { return bp.ID == blueprintID })
	var bp domain.Blueprint
	if idx >= 0 {
		bp = v.list[idx]
	}
	v.mu.Unlock()
	if idx < 0 {
		return client.Result{Err: fmt.Errorf("blueprint %s %w", blueprintID, client.ErrNotFound)}
	}
	return v.orders.PlaceOrder(ctx, bp)
}
