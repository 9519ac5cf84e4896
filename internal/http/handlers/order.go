package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/http/response"
	"github.com/yungbote/cablehouse-backend/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GET /api/orders?scope=open
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var (
		list []*domain.Order
		err  error
	)
	if c.Query("scope") == "open" {
		list, err = h.orderService.ListOpen(c.Request.Context())
	} else {
		list, err = h.orderService.List(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"orders": list})
}

// GET /api/orders/stats
func (h *OrderHandler) OrderStats(c *gin.Context) {
	st, err := h.orderService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"stats": st})
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	o, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"order": o})
}

// POST /api/orders. Any status or timestamps in the body are ignored.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req struct {
		Reference int `json:"reference"`
		domain.OrderSnapshot
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	o, err := h.orderService.Place(c.Request.Context(), services.PlaceOrderInput{
		Reference: req.Reference,
		Snapshot:  req.OrderSnapshot,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"order": o})
}

// PATCH /api/orders/:id
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Status  string `json:"status"`
		Version *int64 `json:"version"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	o, err := h.orderService.UpdateStatus(c.Request.Context(), id, status, req.Version)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"order": o})
}

// DELETE /api/orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
