// Package timezone is the single point of truth for converting between
// the clinic's local wall-clock representations and absolute UTC
// instants. Every function takes the zone explicitly; there is no
// system-local or default-zone fallback, because implicit fallbacks are
// exactly how cross-timezone slot bugs happen.
package timezone

import (
	"time"

	"github.com/vitalpoint/clinic-scheduler/internal/domain/availability"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Load resolves an IANA zone name. An empty or unknown name is an
// input error, never silently replaced.
func Load(name string) (*time.Location, error) {
	if name == "" {
		return nil, &availability.InvalidInputError{Field: "timezone", Value: name}
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &availability.InvalidInputError{Field: "timezone", Value: name}
	}
	return loc, nil
}

func parseLocalMidnight(dateStr string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		return time.Time{}, &availability.InvalidInputError{Field: "timezone", Value: "<nil>"}
	}
	day, err := time.ParseInLocation(DateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, &availability.InvalidInputError{Field: "date", Value: dateStr}
	}
	return day, nil
}

// DayBoundsUTC interprets dateStr as midnight-to-midnight in loc and
// returns the UTC instants bounding that local day. The end bound is
// computed with AddDate, not +24h, so days containing a DST transition
// (23h or 25h long) come out correct.
func DayBoundsUTC(dateStr string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := parseLocalMidnight(dateStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day.UTC(), day.AddDate(0, 0, 1).UTC(), nil
}

// AtWallClock combines a calendar date and a local HH:MM time-of-day
// into one absolute UTC instant. Wall-clock times skipped by a DST
// spring-forward are normalized by the runtime rather than rejected.
func AtWallClock(dateStr, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		return time.Time{}, &availability.InvalidInputError{Field: "timezone", Value: "<nil>"}
	}
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, dateStr+" "+clock, loc)
	if err != nil {
		return time.Time{}, &availability.InvalidInputError{Field: "time", Value: dateStr + " " + clock}
	}
	return t.UTC(), nil
}

// LocalClock formats an instant as HH:MM wall-clock time in loc.
func LocalClock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(ClockLayout)
}

// LocalDate reports which calendar date an instant falls on in loc.
func LocalDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// DayOfWeek is the weekday of a calendar date as observed in loc, not
// in the server zone, which off-by-one-day bugs tend to come from.
func DayOfWeek(dateStr string, loc *time.Location) (time.Weekday, error) {
	day, err := parseLocalMidnight(dateStr, loc)
	if err != nil {
		return 0, err
	}
	return day.Weekday(), nil
}
