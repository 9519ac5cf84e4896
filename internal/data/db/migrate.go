package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/cablehouse-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Blueprint{},
		&domain.Order{},
	)
}

// EnsureOrderIndexes adds the composite index used by the worker queue. It is
// postgres only; sqlite relies on the single-column indexes from AutoMigrate.
func EnsureOrderIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != DriverPostgres {
		return nil
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_cable_order_status_created ON cable_order(status, created_at DESC);`).Error; err != nil {
		return fmt.Errorf("create idx_cable_order_status_created: %w", err)
	}
	return nil
}
