package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apptdomain "github.com/vitalpoint/clinic-scheduler/internal/domain/appointment"
	domain "github.com/vitalpoint/clinic-scheduler/internal/domain/availability"
	"github.com/vitalpoint/clinic-scheduler/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Weekly schedule
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetWeeklyRules(
	ctx context.Context,
	providerID uuid.UUID,
	weekday time.Weekday,
) ([]models.WeeklySchedule, error) {

	var rules []models.WeeklySchedule
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND weekday = ?", providerID, int(weekday)).
		Order("start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *AvailabilityGormRepository) GetWeeklyRulesForAllDays(
	ctx context.Context,
	providerID uuid.UUID,
) ([]models.WeeklySchedule, error) {

	var rules []models.WeeklySchedule
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("weekday ASC, start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

// --------------------------------------------------
// Unavailability blocks
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetUnavailabilityBlocks(
	ctx context.Context,
	providerID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.UnavailabilityBlock, error) {

	var blocks []models.UnavailabilityBlock
	if err := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND starts_at < ? AND ends_at > ?",
			providerID, to, from,
		).
		Order("starts_at ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	return blocks, nil
}

// --------------------------------------------------
// Blocking appointments
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetBlockingAppointments(
	ctx context.Context,
	providerID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var appts []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "duration_min", "status").
		Where(
			"provider_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			providerID, apptdomain.BlockingStatusStrings(), from, to,
		).
		Order("start_time ASC").
		Find(&appts).Error; err != nil {
		return nil, err
	}

	return appts, nil
}

// Compile-time check
var _ domain.Repository = (*AvailabilityGormRepository)(nil)
