package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vitalpoint/clinic-scheduler/internal/models"
)

// Repository is the write-side boundary of the booking path. The
// availability engine never writes; double-booking prevention lives
// here, at insert time, not in the resolver.
type Repository interface {
	// -------- Clinic --------
	GetClinicByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Clinic, error)

	GetClinicBySlug(
		ctx context.Context,
		slug string,
	) (*models.Clinic, error)

	GetOwnerProvider(
		ctx context.Context,
		clinicID uuid.UUID,
	) (*models.Provider, error)

	// -------- Patient --------
	GetOrCreatePatient(
		ctx context.Context,
		clinicID uuid.UUID,
		name string,
		phone string,
		email string,
	) (*models.Patient, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		providerID uuid.UUID,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForProvider(
		ctx context.Context,
		appointmentID uuid.UUID,
		providerID uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		providerID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
