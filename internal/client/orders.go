package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

type OrderService struct {
	log     *logger.Logger
	c       *Client
	session *Session
	pub     Publisher
}

func NewOrderService(c *Client, session *Session, pub Publisher) *OrderService {
	return &OrderService{
		log:     c.log.With("service", "OrderService"),
		c:       c,
		session: session,
		pub:     pub,
	}
}

// ListOrders returns every order, newest first, or an empty list on failure.
func (s *OrderService) ListOrders(ctx context.Context) []domain.Order {
	return s.list(ctx, "/api/orders")
}

// ListOpenOrders returns Pending and In Progress orders only.
func (s *OrderService) ListOpenOrders(ctx context.Context) []domain.Order {
	return s.list(ctx, "/api/orders?scope=open")
}

func (s *OrderService) list(ctx context.Context, path string) []domain.Order {
	var out struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := s.c.do(ctx, s.session, http.MethodGet, path, nil, &out); err != nil {
		s.log.Warn("ListOrders failed", "path", path, "error", err)
		return []domain.Order{}
	}
	if out.Orders == nil {
		return []domain.Order{}
	}
	return out.Orders
}

// PlaceOrder copies the blueprint's content into a new Pending order with a
// fresh display reference. The blueprint's id is not sent.
func (s *OrderService) PlaceOrder(ctx context.Context, bp domain.Blueprint) Result {
	body := struct {
		Reference int `json:"reference"`
		domain.OrderSnapshot
	}{
		Reference:     domain.RandomReference(),
		OrderSnapshot: bp.Snapshot(),
	}
	var out struct {
		Order domain.Order `json:"order"`
	}
	if err := s.c.do(ctx, s.session, http.MethodPost, "/api/orders", body, &out); err != nil {
		s.log.Warn("PlaceOrder failed", "blueprint", bp.Name, "error", err)
		return failed(err)
	}
	s.publish(realtime.OperationCreate, out.Order.ID)
	return Result{Success: true, Order: &out.Order}
}

// UpdateStatus asks the server to move the order. The server owns the
// lifecycle check.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) Result {
	return s.patch(ctx, id, status, nil)
}

// UpdateOrder moves a known order. Illegal transitions are refused before a
// request is made, and the order's version guards against concurrent writes.
func (s *OrderService) UpdateOrder(ctx context.Context, o domain.Order, status domain.OrderStatus) Result {
	if !domain.CanTransition(o.Status, status) {
		err := fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, status)
		s.log.Warn("UpdateOrder rejected", "order_id", o.ID, "error", err)
		return failed(err)
	}
	version := o.Version
	return s.patch(ctx, o.ID, status, &version)
}

func (s *OrderService) patch(ctx context.Context, id uuid.UUID, status domain.OrderStatus, version *int64) Result {
	body := struct {
		Status  domain.OrderStatus `json:"status"`
		Version *int64             `json:"version,omitempty"`
	}{Status: status, Version: version}
	var out struct {
		Order domain.Order `json:"order"`
	}
	if err := s.c.do(ctx, s.session, http.MethodPatch, "/api/orders/"+id.String(), body, &out); err != nil {
		s.log.Warn("UpdateStatus failed", "order_id", id, "status", status, "error", err)
		return failed(err)
	}
	s.publish(realtime.OperationUpdate, id)
	return Result{Success: true, Order: &out.Order}
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) Result {
	if err := s.c.do(ctx, s.session, http.MethodDelete, "/api/orders/"+id.String(), nil, nil); err != nil {
		s.log.Warn("DeleteOrder failed", "order_id", id, "error", err)
		return failed(err)
	}
	s.publish(realtime.OperationDelete, id)
	return Result{Success: true}
}

func (s *OrderService) publish(op realtime.Operation, id uuid.UUID) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(realtime.Change{Collection: realtime.CollectionOrders, Operation: op, ID: id})
}
