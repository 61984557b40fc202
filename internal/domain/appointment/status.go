package appointment

import "github.com/vitalpoint/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// BlockingStatuses is the single source of truth for which states
// occupy a time slot. Cancelled never blocks; confirmed and completed
// are resolved states owned by the dashboard, not by availability.
// Every call site (resolver, conflict check, repository queries) reads
// this set instead of spelling its own.
var BlockingStatuses = []Status{StatusScheduled, StatusPending}

func IsBlocking(s Status) bool {
	for _, b := range BlockingStatuses {
		if s == b {
			return true
		}
	}
	return false
}

// BlockingStatusStrings is the same set in the form SQL IN clauses want.
func BlockingStatusStrings() []string {
	out := make([]string, 0, len(BlockingStatuses))
	for _, s := range BlockingStatuses {
		out = append(out, string(s))
	}
	return out
}

// ===============================
// Transitions
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending && current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	switch current {
	case StatusScheduled, StatusPending, StatusConfirmed:
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

func CanComplete(current Status) error {
	if current != StatusScheduled && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
