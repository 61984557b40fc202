package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vitalpoint/clinic-scheduler/internal/models"
)

// Repository is the read-only boundary between the availability engine
// and the store. All range arguments are absolute UTC instants; the
// engine never pushes local-time strings into queries.
type Repository interface {
	// -------- Weekly schedule --------
	GetWeeklyRules(
		ctx context.Context,
		providerID uuid.UUID,
		weekday time.Weekday,
	) ([]models.WeeklySchedule, error)

	GetWeeklyRulesForAllDays(
		ctx context.Context,
		providerID uuid.UUID,
	) ([]models.WeeklySchedule, error)

	// -------- Exceptions --------
	// Blocks overlapping [from, to).
	GetUnavailabilityBlocks(
		ctx context.Context,
		providerID uuid.UUID,
		from time.Time,
		to time.Time,
	) ([]models.UnavailabilityBlock, error)

	// -------- Bookings --------
	// Appointments in a blocking status starting within [from, to).
	GetBlockingAppointments(
		ctx context.Context,
		providerID uuid.UUID,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)
}
