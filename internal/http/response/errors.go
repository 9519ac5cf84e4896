package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cablehouse-backend/internal/platform/apierr"
)

// Error renders err with the status and code it carries, 500 otherwise.
func Error(c *gin.Context, err error) {
	ae := apierr.From(err)
	if ae == nil {
		RespondError(c, http.StatusInternalServerError, "internal", nil)
		return
	}
	RespondError(c, ae.Status, ae.Code, ae.Err)
}

// Abort is Error for middleware: the chain stops after the envelope is written.
func Abort(c *gin.Context, status int, code string, msg string) {
	c.Set(ErrorCodeKey, code)
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{Message: msg, Code: code},
	})
}
