package availability

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Strict comparisons keep adjacent intervals
// non-conflicting: a block ending exactly at a slot start does not
// exclude that slot, so back-to-back scheduling stays possible.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// AppointmentOverlapsSlot applies the half-open overlap rule to a booked
// appointment. An appointment with a missing or zero duration collapses
// to an instant: it blocks a slot only when its start falls inside
// [slotStart, slotEnd).
func AppointmentOverlapsSlot(apptStart time.Time, apptDurationMin int, slotStart, slotEnd time.Time) bool {
	if apptDurationMin <= 0 {
		return !apptStart.Before(slotStart) && apptStart.Before(slotEnd)
	}
	apptEnd := apptStart.Add(time.Duration(apptDurationMin) * time.Minute)
	return Overlaps(apptStart, apptEnd, slotStart, slotEnd)
}
