package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
)

type OrderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, o *domain.Order) (*domain.Order, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Order, error)
	ListByStatuses(ctx context.Context, tx *gorm.DB, statuses []domain.OrderStatus) ([]*domain.Order, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Order, error)
	SaveStatus(ctx context.Context, tx *gorm.DB, o *domain.Order, expectedVersion int64) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context, tx *gorm.DB) (map[domain.OrderStatus]int64, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, o *domain.Order) (*domain.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if o.Version == 0 {
		o.Version = 1
	}
	if err := transaction.WithContext(ctx).Create(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}

// List returns every order, newest first.
func (r *orderRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	results := []*domain.Order{}
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *orderRepo) ListByStatuses(ctx context.Context, tx *gorm.DB, statuses []domain.OrderStatus) ([]*domain.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	results := []*domain.Order{}
	if len(statuses) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByID returns nil, nil when no row matches.
func (r *orderRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var o domain.Order
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// SaveStatus writes status, start_time and end_time and bumps the version.
// The write only applies while the stored version equals expectedVersion;
// false means another writer got there first (or the row is gone).
func (r *orderRepo) SaveStatus(ctx context.Context, tx *gorm.DB, o *domain.Order, expectedVersion int64) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now().UTC()
	res := transaction.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND version = ?", o.ID, expectedVersion).
		Updates(map[string]any{
			"status":     o.Status,
			"start_time": o.StartTime,
			"end_time":   o.EndTime,
			"version":    expectedVersion + 1,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	o.Version = expectedVersion + 1
	o.UpdatedAt = now
	return true, nil
}

// Delete hard-deletes the row and reports whether one existed.
func (r *orderRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Order{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *orderRepo) CountByStatus(ctx context.Context, tx *gorm.DB) (map[domain.OrderStatus]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []struct {
		Status domain.OrderStatus
		Count  int64
	}
	if err := transaction.WithContext(ctx).
		Model(&domain.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[domain.OrderStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
