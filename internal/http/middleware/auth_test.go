package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/apierr"
	"github.com/yungbote/cablehouse-backend/internal/platform/ctxutil"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/services"
)

type stubAuth struct {
	services.AuthService
	tokens map[string]domain.Role
}

func (s stubAuth) ParseToken(tok string) (*ctxutil.RequestData, error) {
	role, ok := s.tokens[tok]
	if !ok {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", services.ErrInvalidCredentials)
	}
	return &ctxutil.RequestData{UserID: uuid.New(), Username: string(role), Role: role, TokenString: tok}, nil
}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(logger.NewNop(), stubAuth{tokens: map[string]domain.Role{
		"admin-token":  domain.RoleAdmin,
		"worker-token": domain.RoleWorker,
	}})

	r := gin.New()
	r.Use(AttachRequestContext())
	echo := func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"role": rd.Role, "origin": rd.Origin})
	}
	r.GET("/open", am.OptionalAuth(), echo)
	r.GET("/admin", am.RequireAuth(), am.RequireRole(domain.RoleAdmin), echo)
	r.GET("/floor", am.RequireAuth(), am.RequireRole(domain.RoleWorker, domain.RoleAdmin), echo)
	return r
}

func TestAuthMiddlewareRoles(t *testing.T) {
	r := newAuthRouter(t)

	cases := []struct {
		name   string
		path   string
		setup  func(*http.Request)
		status int
	}{
		{"anonymous open", "/open", func(*http.Request) {}, http.StatusOK},
		{"bad token on open", "/open", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"anonymous admin", "/admin", func(*http.Request) {}, http.StatusUnauthorized},
		{"worker on admin", "/admin", func(r *http.Request) { r.Header.Set("Authorization", "Bearer worker-token") }, http.StatusForbidden},
		{"admin via header", "/admin", func(r *http.Request) { r.Header.Set("x-auth-token", "admin-token") }, http.StatusOK},
		{"worker via query", "/floor?token=worker-token", func(*http.Request) {}, http.StatusOK},
		{"admin on floor", "/floor", func(r *http.Request) { r.Header.Set("Authorization", "bearer admin-token") }, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			tc.setup(req)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status: want=%d got=%d body=%s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareKeepsClientOrigin(t *testing.T) {
	r := newAuthRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	req.Header.Set(HeaderClientOrigin, "tab-7")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"origin":"tab-7","role":"admin"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}
