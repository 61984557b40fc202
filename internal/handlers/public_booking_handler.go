package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vitalpoint/clinic-scheduler/internal/httperr"
	"github.com/vitalpoint/clinic-scheduler/internal/httpresp"
	"github.com/vitalpoint/clinic-scheduler/internal/infra/cache"
	"github.com/vitalpoint/clinic-scheduler/internal/models"
	ucAppointment "github.com/vitalpoint/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// PUBLIC BOOKING
// Patients book through the clinic slug, reusing the same
// use case as the private surface.
// ======================================================

type PublicBookingHandler struct {
	db         *gorm.DB
	createUC   *ucAppointment.CreateAppointment
	monthCache *cache.MonthCache
}

func NewPublicBookingHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	monthCache *cache.MonthCache,
) *PublicBookingHandler {
	return &PublicBookingHandler{
		db:         db,
		createUC:   createUC,
		monthCache: monthCache,
	}
}

type PublicCreateAppointmentRequest struct {
	PatientName  string `json:"patient_name" binding:"required"`
	PatientPhone string `json:"patient_phone" binding:"required"`
	PatientEmail string `json:"patient_email"`
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	Time         string `json:"time" binding:"required"` // HH:MM
	DurationMin  int    `json:"duration_min"`
	Notes        string `json:"notes"`
}

func (h *PublicBookingHandler) CreateAppointment(c *gin.Context) {
	slug := c.Param("slug")

	var clinic models.Clinic
	if err := h.db.Where("slug = ?", slug).First(&clinic).Error; err != nil {
		httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment payload.")
		return
	}

	var provider models.Provider
	if err := h.db.
		Where("clinic_id = ? AND role = ?", clinic.ID, "owner").
		First(&provider).Error; err != nil {

		httperr.NotFound(c, "provider_not_found", "Provider not found.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			ClinicID:     clinic.ID,
			ProviderID:   provider.ID,
			PatientName:  req.PatientName,
			PatientPhone: req.PatientPhone,
			PatientEmail: req.PatientEmail,
			Date:         req.Date,
			Time:         req.Time,
			DurationMin:  req.DurationMin,
			Notes:        req.Notes,
		},
	)
	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	if h.monthCache != nil {
		h.monthCache.Invalidate(context.Background(), provider.ID)
	}

	httpresp.Created(c, ap)
}
