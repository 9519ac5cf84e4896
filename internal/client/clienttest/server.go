// Package clienttest runs the real HTTP API on an in-memory database for
// client-side tests.
package clienttest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cablehouse-backend/internal/client"
	"github.com/yungbote/cablehouse-backend/internal/data/repos"
	"github.com/yungbote/cablehouse-backend/internal/data/repos/testutil"
	"github.com/yungbote/cablehouse-backend/internal/domain"
	apihttp "github.com/yungbote/cablehouse-backend/internal/http"
	httpH "github.com/yungbote/cablehouse-backend/internal/http/handlers"
	httpMW "github.com/yungbote/cablehouse-backend/internal/http/middleware"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
	"github.com/yungbote/cablehouse-backend/internal/services"
)

const Password = "password"

// Usernames of the accounts every server is seeded with.
var Usernames = map[domain.Role]string{
	domain.RoleAdmin:  "admin1",
	domain.RoleWorker: "worker1",
	domain.RoleUser:   "user1",
}

type Server struct {
	URL string
	Log *logger.Logger
	Hub *realtime.SSEHub
	srv *httptest.Server
}

func NewServer(tb testing.TB) *Server {
	tb.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(tb)
	log := testutil.Logger(tb)

	hub := realtime.NewSSEHub(log)
	notifier := services.NewChangeNotifier(&services.HubEmitter{Hub: hub}, nil)
	userRepo := repos.NewUserRepo(db, log)
	bpRepo := repos.NewBlueprintRepo(db, log)
	orderRepo := repos.NewOrderRepo(db, log)

	authService := services.NewAuthService(db, log, userRepo, "clienttest", time.Hour)
	blueprintService := services.NewBlueprintService(db, log, bpRepo, notifier)
	orderService := services.NewOrderService(db, log, orderRepo, bpRepo, notifier, nil)

	ctx := context.Background()
	for role, name := range Usernames {
		if _, err := authService.Register(ctx, name, Password, role); err != nil {
			tb.Fatalf("seed %s: %v", role, err)
		}
	}

	engine := apihttp.NewRouter(apihttp.RouterConfig{
		Log:              log,
		AuthHandler:      httpH.NewAuthHandler(authService),
		AuthMiddleware:   httpMW.NewAuthMiddleware(log, authService),
		UserHandler:      httpH.NewUserHandler(services.NewUserService(log, userRepo)),
		BlueprintHandler: httpH.NewBlueprintHandler(blueprintService, orderService),
		OrderHandler:     httpH.NewOrderHandler(orderService),
		RealtimeHandler:  httpH.NewRealtimeHandler(log, hub),
		HealthHandler:    httpH.NewHealthHandler(db),
	})
	srv := httptest.NewServer(engine)
	tb.Cleanup(func() {
		srv.CloseClientConnections()
		srv.Close()
	})
	return &Server{URL: srv.URL, Log: log, Hub: hub, srv: srv}
}

// Client returns a client for this server with its own origin.
func (s *Server) Client(tb testing.TB) *client.Client {
	tb.Helper()
	return client.New(s.Log, client.Config{BaseURL: s.URL, Timeout: 5 * time.Second})
}

// Login signs in the seeded account for role.
func (s *Server) Login(tb testing.TB, c *client.Client, role domain.Role) *client.Session {
	tb.Helper()
	sess, err := c.Login(context.Background(), Usernames[role], Password)
	if err != nil {
		tb.Fatalf("login %s: %v", role, err)
	}
	return sess
}
