package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalpoint/clinic-scheduler/internal/httperr"
	"github.com/vitalpoint/clinic-scheduler/internal/httpresp"
	"github.com/vitalpoint/clinic-scheduler/internal/middleware"
	"github.com/vitalpoint/clinic-scheduler/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	var logs []models.AuditLog
	if err := h.db.
		Where("clinic_id = ?", clinicID).
		Order("created_at DESC").
		Limit(200).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_audit_logs", "Could not list audit logs.")
		return
	}

	httpresp.List(c, logs)
}
