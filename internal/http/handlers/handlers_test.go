package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cablehouse-backend/internal/data/repos/testutil"
	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/ctxutil"
)

func serve(t *testing.T, method, path, route string, h gin.HandlerFunc, rd *ctxutil.RequestData) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, route, func(c *gin.Context) {
		if rd != nil {
			c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		}
		h(c)
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestParseIDRejectsGarbage(t *testing.T) {
	h := NewBlueprintHandler(nil, nil)
	rec := serve(t, http.MethodGet, "/blueprints/not-a-uuid", "/blueprints/:id", h.GetBlueprint, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: want=400 got=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"invalid_id"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetMe(t *testing.T) {
	h := NewUserHandler(nil)

	rec := serve(t, http.MethodGet, "/me", "/me", h.GetMe, &ctxutil.RequestData{Origin: "tab-1"})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"user":null`) {
		t.Fatalf("anonymous: %d %s", rec.Code, rec.Body.String())
	}

	rd := &ctxutil.RequestData{Username: "ops", Role: domain.RoleWorker}
	rec = serve(t, http.MethodGet, "/me", "/me", h.GetMe, rd)
	if !strings.Contains(rec.Body.String(), `"role":"worker"`) {
		t.Fatalf("signed in: %s", rec.Body.String())
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := NewHealthHandler(testutil.DB(t))
	if rec := serve(t, http.MethodGet, "/healthcheck", "/healthcheck", h.HealthCheck, nil); rec.Code != http.StatusOK {
		t.Fatalf("healthcheck: %d", rec.Code)
	}
	if rec := serve(t, http.MethodGet, "/readyz", "/readyz", h.Ready, nil); rec.Code != http.StatusOK {
		t.Fatalf("readyz: %d %s", rec.Code, rec.Body.String())
	}
}
