package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/http/response"
	"github.com/yungbote/cablehouse-backend/internal/platform/ctxutil"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLogger := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

// RequireAuth rejects requests without a valid token.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractTokenFromAll(c)
		if tokenString == "" {
			response.Abort(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}
		if !am.attach(c, tokenString) {
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the caller when a token is present and leaves the
// request anonymous otherwise. A bad token is still rejected.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractTokenFromAll(c)
		if tokenString != "" && !am.attach(c, tokenString) {
			return
		}
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (am *AuthMiddleware) RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil || rd.Role == "" {
			response.Abort(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}
		for _, r := range roles {
			if rd.Role == r {
				c.Next()
				return
			}
		}
		am.log.Debug("role rejected", "user_id", rd.UserID, "role", rd.Role, "path", c.FullPath())
		response.Abort(c, http.StatusForbidden, "forbidden", "role "+string(rd.Role)+" may not access this resource")
	}
}

func (am *AuthMiddleware) attach(c *gin.Context, tokenString string) bool {
	rd, err := am.authService.ParseToken(tokenString)
	if err != nil {
		response.Abort(c, http.StatusUnauthorized, "unauthorized", err.Error())
		return false
	}
	rd.Origin = ctxutil.Origin(c.Request.Context())
	c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
	return true
}

func extractTokenFromAll(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if hToken := strings.TrimSpace(c.GetHeader("x-auth-token")); hToken != "" {
		return hToken
	}
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	return ""
}
