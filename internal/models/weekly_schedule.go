package models

import (
	"time"

	"github.com/google/uuid"
)

// WeeklySchedule is one recurring availability window for a provider,
// expressed as local wall-clock times (HH:MM) in the clinic time zone.
// A provider may have several windows on the same weekday.
type WeeklySchedule struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProviderID uuid.UUID `gorm:"type:uuid;index:idx_schedule_provider_weekday" json:"provider_id"`

	Weekday int `gorm:"index:idx_schedule_provider_weekday" json:"weekday"` // 0=Sunday .. 6=Saturday

	StartTime string `gorm:"size:5" json:"start_time"` // HH:MM
	EndTime   string `gorm:"size:5" json:"end_time"`   // HH:MM, exclusive

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
