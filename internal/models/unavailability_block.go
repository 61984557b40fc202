package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnavailabilityBlock is a one-off exception period (time off, meeting,
// vacation) stored as absolute UTC instants. It overrides the weekly
// schedule for its duration and may span several days.
type UnavailabilityBlock struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID uuid.UUID `gorm:"type:uuid;index" json:"provider_id"`

	StartsAt time.Time `gorm:"index;not null" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`
	Reason   string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *UnavailabilityBlock) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
