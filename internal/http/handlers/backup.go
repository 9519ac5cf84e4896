package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/cablehouse-backend/internal/http/response"
	"github.com/yungbote/cablehouse-backend/internal/services"
)

type BackupHandler struct {
	backupService services.BackupService
}

func NewBackupHandler(backupService services.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// POST /api/admin/backups
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	info, err := h.backupService.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"key": info.Key, "backup": info})
}

// GET /api/admin/backups
func (h *BackupHandler) ListBackups(c *gin.Context) {
	list, err := h.backupService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"backups": list})
}
