package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalpoint/clinic-scheduler/internal/audit"
	"github.com/vitalpoint/clinic-scheduler/internal/infra/cache"
	"github.com/vitalpoint/clinic-scheduler/internal/middleware"
	"github.com/vitalpoint/clinic-scheduler/internal/models"
	"github.com/vitalpoint/clinic-scheduler/internal/timezone"
)

type ScheduleHandler struct {
	db         *gorm.DB
	audit      *audit.Dispatcher
	monthCache *cache.MonthCache
}

func NewScheduleHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	monthCache *cache.MonthCache,
) *ScheduleHandler {
	return &ScheduleHandler{
		db:         db,
		audit:      auditDispatcher,
		monthCache: monthCache,
	}
}

type ScheduleWindowConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type ScheduleUpdateRequest struct {
	Windows []ScheduleWindowConfig `json:"windows" binding:"required"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uuid.UUID)

	var rules []models.WeeklySchedule
	if err := h.db.
		Where("provider_id = ?", providerID).
		Order("weekday ASC, start_time ASC").
		Find(&rules).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_schedule"})
		return
	}

	c.JSON(http.StatusOK, rules)
}

// Update replaces the provider's whole weekly schedule. Several windows
// on the same weekday are allowed; each must be a valid HH:MM range.
func (h *ScheduleHandler) Update(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uuid.UUID)
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// Times are stored zero-padded so later wall-clock round-trips
	// compare cleanly.
	for i, w := range req.Windows {
		start, err1 := time.Parse(timezone.ClockLayout, w.StartTime)
		end, err2 := time.Parse(timezone.ClockLayout, w.EndTime)
		if err1 != nil || err2 != nil || !start.Before(end) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "invalid_window",
				"start_time": w.StartTime,
				"end_time":   w.EndTime,
			})
			return
		}
		req.Windows[i].StartTime = start.Format(timezone.ClockLayout)
		req.Windows[i].EndTime = end.Format(timezone.ClockLayout)
	}

	if err := h.db.Where("provider_id = ?", providerID).Delete(&models.WeeklySchedule{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_existing_schedule"})
		return
	}

	var toCreate []models.WeeklySchedule
	for _, w := range req.Windows {
		toCreate = append(toCreate, models.WeeklySchedule{
			ProviderID: providerID,
			Weekday:    w.Weekday,
			StartTime:  w.StartTime,
			EndTime:    w.EndTime,
		})
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_schedule"})
			return
		}
	}

	h.audit.Dispatch(audit.Event{
		ClinicID:   clinicID,
		ProviderID: &providerID,
		Action:     "schedule_updated",
		Entity:     "weekly_schedule",
		Metadata:   map[string]any{"windows": len(toCreate)},
	})

	if h.monthCache != nil {
		h.monthCache.Invalidate(context.Background(), providerID)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
