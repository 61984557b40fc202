package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/vitalpoint/clinic-scheduler/internal/domain/appointment"
	"github.com/vitalpoint/clinic-scheduler/internal/dto"
	"github.com/vitalpoint/clinic-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
		loc:  loc,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	providerID uuid.UUID,
	dateStr string,
) ([]dto.AppointmentListDTO, error) {

	start, end, err := timezone.DayBoundsUTC(dateStr, uc.loc)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		providerID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			DurationMin: ap.DurationMin,
			Status:      ap.Status,
			PatientName: ap.Patient.Name,
		})
	}

	return out, nil
}
