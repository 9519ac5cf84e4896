package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/cablehouse-backend/internal/http/response"
	"github.com/yungbote/cablehouse-backend/internal/platform/ctxutil"
	"github.com/yungbote/cablehouse-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"users": users})
}

// GetMe echoes the caller the token names.
func (h *UserHandler) GetMe(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.Role == "" {
		response.RespondOK(c, gin.H{"user": nil})
		return
	}
	response.RespondOK(c, gin.H{"user": sessionUser{Username: rd.Username, Role: rd.Role}})
}
