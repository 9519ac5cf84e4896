package blueprint

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
)

type BlueprintRepo interface {
	Create(ctx context.Context, tx *gorm.DB, bp *domain.Blueprint) (*domain.Blueprint, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Blueprint, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Blueprint, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type blueprintRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBlueprintRepo(db *gorm.DB, baseLog *logger.Logger) BlueprintRepo {
	repoLog := baseLog.With("repo", "BlueprintRepo")
	return &blueprintRepo{db: db, log: repoLog}
}

func (r *blueprintRepo) Create(ctx context.Context, tx *gorm.DB, bp *domain.Blueprint) (*domain.Blueprint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(bp).Error; err != nil {
		return nil, err
	}
	return bp, nil
}

// List returns blueprints in insertion order.
func (r *blueprintRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Blueprint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	results := []*domain.Blueprint{}
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByID returns nil, nil when no row matches.
func (r *blueprintRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Blueprint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var bp domain.Blueprint
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&bp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &bp, nil
}

// Delete hard-deletes the row and reports whether one existed.
func (r *blueprintRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Blueprint{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
