package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/cablehouse-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string, role domain.Role) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "pw",
		Role:         role,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedBlueprint(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.Blueprint {
	tb.Helper()
	bp := &domain.Blueprint{
		ID:          uuid.New(),
		Name:        name,
		Description: "seeded",
		Dimensions:  []domain.Dimension{{Label: "Length", Value: "50m"}},
		Images:      []string{"data:image/png;base64,AAAA"},
	}
	if err := tx.WithContext(ctx).Create(bp).Error; err != nil {
		tb.Fatalf("seed blueprint: %v", err)
	}
	return bp
}

// SeedOrder inserts a Pending order copied from bp with the given creation time.
func SeedOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, bp *domain.Blueprint, createdAt time.Time) *domain.Order {
	tb.Helper()
	o := domain.NewOrder(bp.Snapshot(), domain.RandomReference())
	o.ID = uuid.New()
	o.CreatedAt = createdAt
	o.UpdatedAt = createdAt
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	return o
}
