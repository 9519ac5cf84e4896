package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/cablehouse-backend/internal/observability"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/platform/objectstore"
	"github.com/yungbote/cablehouse-backend/internal/realtime/bus"
	"github.com/yungbote/cablehouse-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	User      services.UserService
	Blueprint services.BlueprintService
	Order     services.OrderService
	Backup    services.BackupService
	Notifier  services.ChangeNotifier
}

// wireServices routes change events through the bus so every instance's hub
// sees them, including this one's.
func wireServices(
	db *gorm.DB,
	log *logger.Logger,
	cfg Config,
	reposet Repos,
	changeBus bus.Bus,
	metrics *observability.Metrics,
	store objectstore.Store,
) Services {
	log.Info("Wiring services...")
	notifier := services.NewChangeNotifier(&services.BusEmitter{Bus: changeBus, Log: log}, metrics)
	return Services{
		Auth:      services.NewAuthService(db, log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:      services.NewUserService(log, reposet.User),
		Blueprint: services.NewBlueprintService(db, log, reposet.Blueprint, notifier),
		Order:     services.NewOrderService(db, log, reposet.Order, reposet.Blueprint, notifier, metrics),
		Backup:    services.NewBackupService(log, store, reposet.Blueprint, reposet.Order),
		Notifier:  notifier,
	}
}
