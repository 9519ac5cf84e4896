package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/cablehouse-backend/internal/http"
	httpH "github.com/yungbote/cablehouse-backend/internal/http/handlers"
	httpMW "github.com/yungbote/cablehouse-backend/internal/http/middleware"
	"github.com/yungbote/cablehouse-backend/internal/observability"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	User      *httpH.UserHandler
	Blueprint *httpH.BlueprintHandler
	Order     *httpH.OrderHandler
	Realtime  *httpH.RealtimeHandler
	Backup    *httpH.BackupHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services, sseHub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(db),
		Auth:      httpH.NewAuthHandler(services.Auth),
		User:      httpH.NewUserHandler(services.User),
		Blueprint: httpH.NewBlueprintHandler(services.Blueprint, services.Order),
		Order:     httpH.NewOrderHandler(services.Order),
		Realtime:  httpH.NewRealtimeHandler(log, sseHub),
		Backup:    httpH.NewBackupHandler(services.Backup),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		CORSOrigins:      cfg.CORSOrigins,
		TracingEnabled:   cfg.Otel.Enabled,
		ServiceName:      cfg.Otel.ServiceName,
		HealthHandler:    handlers.Health,
		AuthHandler:      handlers.Auth,
		AuthMiddleware:   middleware.Auth,
		UserHandler:      handlers.User,
		BlueprintHandler: handlers.Blueprint,
		OrderHandler:     handlers.Order,
		RealtimeHandler:  handlers.Realtime,
		BackupHandler:    handlers.Backup,
	})
}
