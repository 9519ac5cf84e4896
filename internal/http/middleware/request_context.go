package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cablehouse-backend/internal/platform/ctxutil"
)

// HeaderClientOrigin identifies the client instance behind a mutation so it
// can recognise its own change events on the stream.
const HeaderClientOrigin = "X-Client-Origin"

const maxOriginLen = 64

// AttachRequestContext seeds an anonymous RequestData carrying the client
// origin. RequireAuth and OptionalAuth fill in the caller.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := strings.TrimSpace(c.GetHeader(HeaderClientOrigin))
		if len(origin) > maxOriginLen {
			origin = origin[:maxOriginLen]
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{Origin: origin})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
