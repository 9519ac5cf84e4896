package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/http/response"
	"github.com/yungbote/cablehouse-backend/internal/services"
)

type BlueprintHandler struct {
	blueprintService services.BlueprintService
	orderService     services.OrderService
}

func NewBlueprintHandler(blueprintService services.BlueprintService, orderService services.OrderService) *BlueprintHandler {
	return &BlueprintHandler{blueprintService: blueprintService, orderService: orderService}
}

// GET /api/blueprints
func (h *BlueprintHandler) ListBlueprints(c *gin.Context) {
	list, err := h.blueprintService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"blueprints": list})
}

// GET /api/blueprints/:id
func (h *BlueprintHandler) GetBlueprint(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	bp, err := h.blueprintService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"blueprint": bp})
}

// POST /api/blueprints
func (h *BlueprintHandler) CreateBlueprint(c *gin.Context) {
	var req services.BlueprintDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	bp, err := h.blueprintService.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"blueprint": bp})
}

// DELETE /api/blueprints/:id
func (h *BlueprintHandler) DeleteBlueprint(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.blueprintService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/blueprints/:id/orders
func (h *BlueprintHandler) OrderBlueprint(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	o, err := h.orderService.PlaceFromBlueprint(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"order": o})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}
