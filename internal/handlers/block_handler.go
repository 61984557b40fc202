package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalpoint/clinic-scheduler/internal/audit"
	"github.com/vitalpoint/clinic-scheduler/internal/httperr"
	"github.com/vitalpoint/clinic-scheduler/internal/httpresp"
	"github.com/vitalpoint/clinic-scheduler/internal/infra/cache"
	"github.com/vitalpoint/clinic-scheduler/internal/middleware"
	"github.com/vitalpoint/clinic-scheduler/internal/models"
)

type BlockHandler struct {
	db         *gorm.DB
	audit      *audit.Dispatcher
	monthCache *cache.MonthCache
}

func NewBlockHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	monthCache *cache.MonthCache,
) *BlockHandler {
	return &BlockHandler{
		db:         db,
		audit:      auditDispatcher,
		monthCache: monthCache,
	}
}

type CreateBlockRequest struct {
	StartsAt time.Time `json:"starts_at" binding:"required"` // RFC3339
	EndsAt   time.Time `json:"ends_at" binding:"required"`   // RFC3339
	Reason   string    `json:"reason"`
}

func (h *BlockHandler) List(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uuid.UUID)

	q := h.db.Where("provider_id = ?", providerID)

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "from must be RFC3339.")
			return
		}
		q = q.Where("ends_at > ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "to must be RFC3339.")
			return
		}
		q = q.Where("starts_at < ?", t)
	}

	var blocks []models.UnavailabilityBlock
	if err := q.Order("starts_at ASC").Find(&blocks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocks", "Could not list blocks.")
		return
	}

	httpresp.List(c, blocks)
}

func (h *BlockHandler) Create(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uuid.UUID)
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid block payload.")
		return
	}

	if !req.StartsAt.Before(req.EndsAt) {
		httperr.BadRequest(c, "invalid_range", "starts_at must be before ends_at.")
		return
	}

	block := models.UnavailabilityBlock{
		ProviderID: providerID,
		StartsAt:   req.StartsAt.UTC(),
		EndsAt:     req.EndsAt.UTC(),
		Reason:     req.Reason,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_block", "Could not create block.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID:   clinicID,
		ProviderID: &providerID,
		Action:     "block_created",
		Entity:     "unavailability_block",
		EntityID:   &block.ID,
	})

	if h.monthCache != nil {
		h.monthCache.Invalidate(context.Background(), providerID)
	}

	httpresp.Created(c, block)
}

func (h *BlockHandler) Delete(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uuid.UUID)
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	blockID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_block_id", "Block id must be a UUID.")
		return
	}

	res := h.db.
		Where("id = ? AND provider_id = ?", blockID, providerID).
		Delete(&models.UnavailabilityBlock{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_block", "Could not delete block.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "block_not_found", "Block not found.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID:   clinicID,
		ProviderID: &providerID,
		Action:     "block_deleted",
		Entity:     "unavailability_block",
		EntityID:   &blockID,
	})

	if h.monthCache != nil {
		h.monthCache.Invalidate(context.Background(), providerID)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
