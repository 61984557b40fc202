package availability

import (
	"time"

	"github.com/google/uuid"
)

// Slot is one bookable candidate produced by the resolver. It is a pure
// computation result, recomputed on every call and never persisted.
type Slot struct {
	Start     time.Time `json:"start"`      // absolute UTC instant
	LocalTime string    `json:"local_time"` // HH:MM wall clock in the clinic zone
}

type SlotsInput struct {
	ProviderID  uuid.UUID
	Date        string // YYYY-MM-DD, a calendar date in the clinic zone
	DurationMin int
}

type MonthInput struct {
	ProviderID  uuid.UUID
	Year        int
	Month       int // 1..12
	DurationMin int
}
