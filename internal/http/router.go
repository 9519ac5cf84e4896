package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/cablehouse-backend/internal/domain"
	httpH "github.com/yungbote/cablehouse-backend/internal/http/handlers"
	httpMW "github.com/yungbote/cablehouse-backend/internal/http/middleware"
	"github.com/yungbote/cablehouse-backend/internal/observability"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	CORSOrigins    []string
	TracingEnabled bool
	ServiceName    string

	AuthHandler      *httpH.AuthHandler
	AuthMiddleware   *httpMW.AuthMiddleware
	UserHandler      *httpH.UserHandler
	BlueprintHandler *httpH.BlueprintHandler
	OrderHandler     *httpH.OrderHandler
	RealtimeHandler  *httpH.RealtimeHandler
	BackupHandler    *httpH.BackupHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	am := cfg.AuthMiddleware
	if am == nil {
		// Without an auth middleware only the public routes are mounted.
		api := r.Group("/api")
		if cfg.BlueprintHandler != nil {
			api.GET("/blueprints", cfg.BlueprintHandler.ListBlueprints)
		}
		return r
	}

	admin := []gin.HandlerFunc{am.RequireAuth(), am.RequireRole(domain.RoleAdmin)}
	floor := []gin.HandlerFunc{am.RequireAuth(), am.RequireRole(domain.RoleWorker, domain.RoleAdmin)}

	api := r.Group("/api")
	api.Use(am.OptionalAuth())
	{
		// Auth
		if cfg.AuthHandler != nil {
			api.POST("/auth/login", cfg.AuthHandler.Login)
			api.POST("/auth/register", append(admin, cfg.AuthHandler.Register)...)
		}

		// Users
		if cfg.UserHandler != nil {
			api.GET("/me", cfg.UserHandler.GetMe)
			api.GET("/users", append(admin, cfg.UserHandler.ListUsers)...)
		}

		// Blueprints
		if cfg.BlueprintHandler != nil {
			api.GET("/blueprints", cfg.BlueprintHandler.ListBlueprints)
			api.GET("/blueprints/:id", cfg.BlueprintHandler.GetBlueprint)
			api.POST("/blueprints", append(admin, cfg.BlueprintHandler.CreateBlueprint)...)
			api.DELETE("/blueprints/:id", append(admin, cfg.BlueprintHandler.DeleteBlueprint)...)
			api.POST("/blueprints/:id/orders", cfg.BlueprintHandler.OrderBlueprint)
		}

		// Orders
		if cfg.OrderHandler != nil {
			api.GET("/orders", append(floor, cfg.OrderHandler.ListOrders)...)
			api.GET("/orders/stats", append(floor, cfg.OrderHandler.OrderStats)...)
			api.GET("/orders/:id", append(floor, cfg.OrderHandler.GetOrder)...)
			api.POST("/orders", cfg.OrderHandler.PlaceOrder)
			api.PATCH("/orders/:id", append(floor, cfg.OrderHandler.UpdateOrderStatus)...)
			api.DELETE("/orders/:id", append(admin, cfg.OrderHandler.DeleteOrder)...)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			api.GET("/realtime/stream", cfg.RealtimeHandler.SSEStream)
		}

		// Backups
		if cfg.BackupHandler != nil {
			api.POST("/admin/backups", append(admin, cfg.BackupHandler.CreateBackup)...)
			api.GET("/admin/backups", append(admin, cfg.BackupHandler.ListBackups)...)
		}
	}

	return r
}
