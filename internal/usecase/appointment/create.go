package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vitalpoint/clinic-scheduler/internal/audit"
	domain "github.com/vitalpoint/clinic-scheduler/internal/domain/appointment"
	availdomain "github.com/vitalpoint/clinic-scheduler/internal/domain/availability"
	"github.com/vitalpoint/clinic-scheduler/internal/httperr"
	"github.com/vitalpoint/clinic-scheduler/internal/models"
	"github.com/vitalpoint/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClinicID   uuid.UUID
	ProviderID uuid.UUID

	PatientName  string
	PatientPhone string
	PatientEmail string

	Date        string // YYYY-MM-DD, clinic-local
	Time        string // HH:MM, clinic-local
	DurationMin int    // 0 means the configured default
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo               domain.Repository
	avail              availdomain.Repository
	loc                *time.Location
	defaultDurationMin int
	audit              *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	avail availdomain.Repository,
	loc *time.Location,
	defaultDurationMin int,
	auditDispatcher *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:               repo,
		avail:              avail,
		loc:                loc,
		defaultDurationMin: defaultDurationMin,
		audit:              auditDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	start, err := timezone.AtWallClock(in.Date, in.Time, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	durationMin := in.DurationMin
	if durationMin <= 0 {
		durationMin = uc.defaultDurationMin
	}
	end := start.Add(time.Duration(durationMin) * time.Minute)

	minAdvance := clinic.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}
	if start.Before(time.Now().Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	inside, err := uc.withinWeeklySchedule(ctx, in.ProviderID, in.Date, start, end)
	if err != nil {
		return nil, err
	}
	if !inside {
		return nil, httperr.ErrBusiness("outside_schedule")
	}

	blocks, err := uc.avail.GetUnavailabilityBlocks(ctx, in.ProviderID, start, end)
	if err != nil {
		return nil, err
	}
	for _, b := range blocks {
		if availdomain.Overlaps(b.StartsAt, b.EndsAt, start, end) {
			return nil, httperr.ErrBusiness("provider_unavailable")
		}
	}

	patient, err := uc.repo.GetOrCreatePatient(
		ctx,
		in.ClinicID,
		in.PatientName,
		in.PatientPhone,
		in.PatientEmail,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.AssertNoTimeConflict(ctx, in.ProviderID, start, end); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ClinicID:    in.ClinicID,
		ProviderID:  in.ProviderID,
		PatientID:   patient.ID,
		StartTime:   start,
		EndTime:     end,
		DurationMin: durationMin,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID:   in.ClinicID,
		ProviderID: &in.ProviderID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}

// withinWeeklySchedule checks that [start, end) fits entirely inside
// one of the provider's windows on that date. Unparseable rows are
// skipped, matching the resolver.
func (uc *CreateAppointment) withinWeeklySchedule(
	ctx context.Context,
	providerID uuid.UUID,
	dateStr string,
	start time.Time,
	end time.Time,
) (bool, error) {

	weekday, err := timezone.DayOfWeek(dateStr, uc.loc)
	if err != nil {
		return false, httperr.ErrBusiness("invalid_date_or_time")
	}

	rules, err := uc.avail.GetWeeklyRules(ctx, providerID, weekday)
	if err != nil {
		return false, err
	}

	for _, r := range rules {
		ws, err1 := timezone.AtWallClock(dateStr, r.StartTime, uc.loc)
		we, err2 := timezone.AtWallClock(dateStr, r.EndTime, uc.loc)
		if err1 != nil || err2 != nil {
			continue
		}
		if !start.Before(ws) && !end.After(we) {
			return true, nil
		}
	}

	return false, nil
}
