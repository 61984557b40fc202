package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/vitalpoint/clinic-scheduler/internal/domain/availability"
	"github.com/vitalpoint/clinic-scheduler/internal/httperr"
	"github.com/vitalpoint/clinic-scheduler/internal/infra/cache"
	"github.com/vitalpoint/clinic-scheduler/internal/middleware"
	"github.com/vitalpoint/clinic-scheduler/internal/models"
	ucAvailability "github.com/vitalpoint/clinic-scheduler/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	db           *gorm.DB
	resolveSlots *ucAvailability.ResolveSlots
	resolveMonth *ucAvailability.ResolveMonth
	monthCache   *cache.MonthCache // nil when Redis is not configured
	defaultSlot  int
}

func NewAvailabilityHandler(
	db *gorm.DB,
	resolveSlots *ucAvailability.ResolveSlots,
	resolveMonth *ucAvailability.ResolveMonth,
	monthCache *cache.MonthCache,
	defaultSlotMinutes int,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		db:           db,
		resolveSlots: resolveSlots,
		resolveMonth: resolveMonth,
		monthCache:   monthCache,
		defaultSlot:  defaultSlotMinutes,
	}
}

// ======================================================
// HELPERS
// ======================================================

func (h *AvailabilityHandler) durationFromQuery(c *gin.Context) (int, bool) {
	raw := c.Query("duration")
	if raw == "" {
		return h.defaultSlot, true
	}
	d, err := strconv.Atoi(raw)
	if err != nil || d <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Duration must be a positive number of minutes.")
		return 0, false
	}
	return d, true
}

// publicProvider resolves the provider whose calendar a public caller
// is looking at: an explicit provider_id inside the clinic, or the
// clinic owner when none is given.
func (h *AvailabilityHandler) publicProvider(c *gin.Context) (*models.Provider, bool) {
	slug := c.Param("slug")

	var clinic models.Clinic
	if err := h.db.Where("slug = ?", slug).First(&clinic).Error; err != nil {
		httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
		return nil, false
	}

	if raw := c.Query("provider_id"); raw != "" {
		providerID, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_provider_id", "Provider id must be a UUID.")
			return nil, false
		}

		var provider models.Provider
		if err := h.db.
			Where("id = ? AND clinic_id = ?", providerID, clinic.ID).
			First(&provider).Error; err != nil {
			httperr.NotFound(c, "provider_not_found", "Provider not found.")
			return nil, false
		}
		return &provider, true
	}

	var owner models.Provider
	if err := h.db.
		Where("clinic_id = ? AND role = ?", clinic.ID, "owner").
		First(&owner).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Provider not found.")
		return nil, false
	}
	return &owner, true
}

// ======================================================
// PUBLIC — SLOTS FOR ONE DAY
// ======================================================

func (h *AvailabilityHandler) Slots(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required (YYYY-MM-DD).")
		return
	}

	duration, ok := h.durationFromQuery(c)
	if !ok {
		return
	}

	provider, ok := h.publicProvider(c)
	if !ok {
		return
	}

	h.writeSlots(c, provider.ID, dateStr, duration)
}

// ======================================================
// PUBLIC — AVAILABLE DATES OF A MONTH
// ======================================================

func (h *AvailabilityHandler) Month(c *gin.Context) {
	provider, ok := h.publicProvider(c)
	if !ok {
		return
	}

	h.writeMonth(c, provider.ID)
}

// ======================================================
// PRIVATE — SAME QUERIES FOR THE LOGGED-IN PROVIDER
// ======================================================

func (h *AvailabilityHandler) MySlots(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uuid.UUID)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required (YYYY-MM-DD).")
		return
	}

	duration, ok := h.durationFromQuery(c)
	if !ok {
		return
	}

	h.writeSlots(c, providerID, dateStr, duration)
}

func (h *AvailabilityHandler) MyMonth(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uuid.UUID)
	h.writeMonth(c, providerID)
}

// ======================================================
// SHARED RESPONSE PATHS
// ======================================================

func (h *AvailabilityHandler) writeSlots(
	c *gin.Context,
	providerID uuid.UUID,
	dateStr string,
	duration int,
) {
	slots, err := h.resolveSlots.Execute(c.Request.Context(), domain.SlotsInput{
		ProviderID:  providerID,
		Date:        dateStr,
		DurationMin: duration,
	})
	if err != nil {
		httperr.Availability(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

func (h *AvailabilityHandler) writeMonth(c *gin.Context, providerID uuid.UUID) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Year is required.")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Month is required (1-12).")
		return
	}

	duration, ok := h.durationFromQuery(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if h.monthCache != nil {
		if dates, hit := h.monthCache.Get(ctx, providerID, year, month, duration); hit {
			c.JSON(http.StatusOK, gin.H{
				"year":   year,
				"month":  month,
				"dates":  dates,
				"cached": true,
			})
			return
		}
	}

	dates, err := h.resolveMonth.Execute(ctx, domain.MonthInput{
		ProviderID:  providerID,
		Year:        year,
		Month:       month,
		DurationMin: duration,
	})
	if err != nil {
		httperr.Availability(c, err)
		return
	}

	if h.monthCache != nil {
		h.monthCache.Set(ctx, providerID, year, month, duration, dates)
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"dates": dates,
	})
}
