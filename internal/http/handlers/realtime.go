package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/platform/ctxutil"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

type RealtimeHandler struct {
	Log *logger.Logger
	Hub *realtime.SSEHub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{Log: log.With("handler", "RealtimeHandler"), Hub: hub}
}

// SSEStream subscribes the connection to the change channel until the client
// goes away. Anonymous catalog viewers may listen too.
func (h *RealtimeHandler) SSEStream(c *gin.Context) {
	userID := uuid.Nil
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
		userID = rd.UserID
	}
	client := h.Hub.NewSSEClient(userID)
	h.Log.Debug("SSEStream open", "client_id", client.ID, "user_id", userID)
	h.Hub.AddChannel(client, realtime.ChangesChannel)

	h.Hub.ServeHTTP(c.Writer, c.Request, client)

	h.Hub.CloseClient(client)
	h.Log.Debug("SSEStream closed", "client_id", client.ID)
}
