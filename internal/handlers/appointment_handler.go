package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vitalpoint/clinic-scheduler/internal/httperr"
	"github.com/vitalpoint/clinic-scheduler/internal/httpresp"
	"github.com/vitalpoint/clinic-scheduler/internal/infra/cache"
	"github.com/vitalpoint/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/vitalpoint/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC    *ucAppointment.CreateAppointment
	confirmUC   *ucAppointment.ConfirmAppointment
	cancelUC    *ucAppointment.CancelAppointment
	completeUC  *ucAppointment.CompleteAppointment
	listByDate  *ucAppointment.ListAppointmentsByDate
	listByMonth *ucAppointment.ListAppointmentsByMonth
	monthCache  *cache.MonthCache
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	monthCache *cache.MonthCache,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:    createUC,
		confirmUC:   confirmUC,
		cancelUC:    cancelUC,
		completeUC:  completeUC,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		monthCache:  monthCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientName  string `json:"patient_name" binding:"required"`
	PatientPhone string `json:"patient_phone" binding:"required"`
	PatientEmail string `json:"patient_email"`
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	Time         string `json:"time" binding:"required"` // HH:MM
	DurationMin  int    `json:"duration_min"`
	Notes        string `json:"notes"`
}

func mapCreateErrors(c *gin.Context, err error) {
	for _, code := range []string{
		"invalid_date_or_time",
		"too_soon",
		"outside_schedule",
		"provider_unavailable",
		"time_conflict",
	} {
		if httperr.IsBusiness(err, code) {
			httperr.BadRequest(c, code, "Could not book this time.")
			return
		}
	}

	httperr.Internal(c, "failed_to_create_appointment", "Could not create appointment.")
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uuid.UUID)
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment payload.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			ClinicID:     clinicID,
			ProviderID:   providerID,
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
		h.monthCache.Invalidate(context.Background(), providerID)
	}

	httpresp.Created(c, ap)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.stateChange(c, func(ctx context.Context, clinicID, providerID, apptID uuid.UUID) (any, error) {
		return h.confirmUC.Execute(ctx, clinicID, providerID, apptID)
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.stateChange(c, func(ctx context.Context, clinicID, providerID, apptID uuid.UUID) (any, error) {
		return h.cancelUC.Execute(ctx, clinicID, providerID, apptID)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.stateChange(c, func(ctx context.Context, clinicID, providerID, apptID uuid.UUID) (any, error) {
		return h.completeUC.Execute(ctx, clinicID, providerID, apptID)
	})
}

func (h *AppointmentHandler) stateChange(
	c *gin.Context,
	run func(ctx context.Context, clinicID, providerID, apptID uuid.UUID) (any, error),
) {
	providerID := c.MustGet(middleware.ContextProviderID).(uuid.UUID)
	clinicID := c.MustGet(middleware.ContextClinicID).(uuid.UUID)

	apptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Appointment id must be a UUID.")
		return
	}

	ap, err := run(c.Request.Context(), clinicID, providerID, apptID)
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
			return
		}
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "invalid_state", "Appointment cannot change to that state.")
			return
		}
		httperr.Internal(c, "failed_to_update_appointment", "Could not update appointment.")
		return
	}

	if h.monthCache != nil {
		h.monthCache.Invalidate(context.Background(), providerID)
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LISTING
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uuid.UUID)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required (YYYY-MM-DD).")
		return
	}

	appts, err := h.listByDate.Execute(c.Request.Context(), providerID, dateStr)
	if err != nil {
		httperr.Availability(c, err)
		return
	}

	httpresp.List(c, appts)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uuid.UUID)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Year is required.")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Month is required (1-12).")
		return
	}

	appts, err := h.listByMonth.Execute(c.Request.Context(), providerID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": appts,
	})
}
