package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/cablehouse-backend/internal/data/repos"
	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/observability"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

// PlaceOrderInput is a client-built order. Status and timestamps are always
// reset server side; a Reference outside 1000..9999 is replaced.
type PlaceOrderInput struct {
	Reference int
	Snapshot  domain.OrderSnapshot
}

type OrderStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Finished   int64 `json:"finished"`
}

type OrderService interface {
	List(ctx context.Context) ([]*domain.Order, error)
	ListOpen(ctx context.Context) ([]*domain.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Place(ctx context.Context, in PlaceOrderInput) (*domain.Order, error)
	PlaceFromBlueprint(ctx context.Context, blueprintID uuid.UUID) (*domain.Order, error)
	// UpdateStatus applies one lifecycle step. With expectedVersion set the
	// write is rejected when the stored order has moved on; without it the
	// latest stored state wins.
	UpdateStatus(ctx context.Context, id uuid.UUID, to domain.OrderStatus, expectedVersion *int64) (*domain.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (OrderStats, error)
}

const maxStatusWriteAttempts = 3

type orderService struct {
	db            *gorm.DB
	log           *logger.Logger
	orderRepo     repos.OrderRepo
	blueprintRepo repos.BlueprintRepo
	notifier      ChangeNotifier
	metrics       *observability.Metrics
	now           func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	log *logger.Logger,
	orderRepo repos.OrderRepo,
	blueprintRepo repos.BlueprintRepo,
	notifier ChangeNotifier,
	metrics *observability.Metrics,
) OrderService {
	serviceLog := log.With("service", "OrderService")
	return &orderService{
		db:            db,
		log:           serviceLog,
		orderRepo:     orderRepo,
		blueprintRepo: blueprintRepo,
		notifier:      notifier,
		metrics:       metrics,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *orderService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.List(ctx, nil)
}

func (s *orderService) ListOpen(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.ListByStatuses(ctx, nil, []domain.OrderStatus{domain.StatusPending, domain.StatusInProgress})
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if o == nil {
		return nil, notFoundErr("order")
	}
	return o, nil
}

func (s *orderService) Place(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	snap := in.Snapshot
	snap.Name = strings.TrimSpace(snap.Name)
	if snap.Name == "" {
		return nil, validationErr("order name is required")
	}
	if len(snap.Images) > domain.MaxBlueprintImages {
		return nil, validationErr("an order holds at most %d images, got %d", domain.MaxBlueprintImages, len(snap.Images))
	}
	snap.Dimensions = domain.FilterDimensions(snap.Dimensions)

	ref := in.Reference
	if !domain.ValidReference(ref) {
		ref = domain.RandomReference()
	}
	return s.create(ctx, domain.NewOrder(snap, ref))
}

// PlaceFromBlueprint copies the stored blueprint into a new order.
func (s *orderService) PlaceFromBlueprint(ctx context.Context, blueprintID uuid.UUID) (*domain.Order, error) {
	bp, err := s.blueprintRepo.GetByID(ctx, nil, blueprintID)
	if err != nil {
		return nil, fmt.Errorf("load blueprint: %w", err)
	}
	if bp == nil {
		return nil, notFoundErr("blueprint")
	}
	return s.create(ctx, domain.NewOrder(bp.Snapshot(), domain.RandomReference()))
}

func (s *orderService) create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	created, err := s.orderRepo.Create(ctx, nil, o)
	if err != nil {
		s.log.Warn("create order failed", "error", err)
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.log.Info("order placed", "order_id", created.ID, "reference", created.Reference)
	s.notifier.Changed(ctx, realtime.CollectionOrders, realtime.OperationCreate, created.ID)
	return created, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, to domain.OrderStatus, expectedVersion *int64) (*domain.Order, error) {
	if !to.Valid() {
		return nil, transitionErr(fmt.Errorf("%w: %q", domain.ErrInvalidStatus, to))
	}

	var updated *domain.Order
	for attempt := 1; ; attempt++ {
		var retry bool
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			o, err := s.orderRepo.GetByID(ctx, tx, id)
			if err != nil {
				return fmt.Errorf("load order: %w", err)
			}
			if o == nil {
				return notFoundErr("order")
			}
			if expectedVersion != nil && *expectedVersion != o.Version {
				return conflictErr("order %s is at version %d, not %d", id, o.Version, *expectedVersion)
			}
			readVersion := o.Version
			if err := o.Transition(to, s.now().Truncate(time.Microsecond)); err != nil {
				return transitionErr(err)
			}
			ok, err := s.orderRepo.SaveStatus(ctx, tx, o, readVersion)
			if err != nil {
				return fmt.Errorf("save order: %w", err)
			}
			if !ok {
				if expectedVersion != nil {
					return conflictErr("order %s changed concurrently", id)
				}
				retry = true
				return nil
			}
			updated = o
			return nil
		})
		if err != nil {
			if !isClassified(err) {
				s.log.Warn("update order status failed", "error", err, "order_id", id, "to", to)
			}
			return nil, err
		}
		if !retry {
			break
		}
		if attempt >= maxStatusWriteAttempts {
			return nil, conflictErr("order %s kept changing", id)
		}
	}

	s.metrics.IncOrderTransition(string(updated.Status))
	s.log.Info("order status changed", "order_id", updated.ID, "status", updated.Status, "version", updated.Version)
	s.notifier.Changed(ctx, realtime.CollectionOrders, realtime.OperationUpdate, updated.ID)
	return updated, nil
}

// Delete removes an order in any status.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.orderRepo.Delete(ctx, nil, id)
	if err != nil {
		s.log.Warn("delete order failed", "error", err, "order_id", id)
		return fmt.Errorf("delete order: %w", err)
	}
	if !deleted {
		return notFoundErr("order")
	}
	s.notifier.Changed(ctx, realtime.CollectionOrders, realtime.OperationDelete, id)
	return nil
}

func (s *orderService) Stats(ctx context.Context) (OrderStats, error) {
	counts, err := s.orderRepo.CountByStatus(ctx, nil)
	if err != nil {
		return OrderStats{}, fmt.Errorf("count orders: %w", err)
	}
	st := OrderStats{
		Pending:    counts[domain.StatusPending],
		InProgress: counts[domain.StatusInProgress],
		Finished:   counts[domain.StatusFinished],
	}
	st.Total = st.Pending + st.InProgress + st.Finished
	return st, nil
}

func isClassified(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) ||
		errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrInvalidStatus)
}
