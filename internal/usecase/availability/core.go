package availability

import (
	"sort"
	"time"

	"go.uber.org/zap"

	domain "github.com/vitalpoint/clinic-scheduler/internal/domain/availability"
	"github.com/vitalpoint/clinic-scheduler/internal/models"
	"github.com/vitalpoint/clinic-scheduler/internal/timezone"
)

// ======================================================
// Shared per-day machinery. The daily resolver and the
// monthly scanner both go through these helpers so the
// two can never disagree about a date.
// ======================================================

// dayWindow is one weekly rule expanded onto a concrete calendar date,
// already converted to absolute UTC instants.
type dayWindow struct {
	start time.Time
	end   time.Time
}

// expandRuleWindows turns the day's schedule rows into UTC windows.
// A row that fails to parse, sits in a DST spring-forward gap, or
// whose end does not follow its start, is logged and skipped; it must
// not abort the rest of the day.
func expandRuleWindows(
	rules []models.WeeklySchedule,
	dateStr string,
	loc *time.Location,
	log *zap.Logger,
) []dayWindow {

	var windows []dayWindow
	for _, r := range rules {
		start, err := timezone.AtWallClock(dateStr, r.StartTime, loc)
		if err != nil {
			log.Warn("skipping schedule rule with bad start time",
				zap.Uint("rule_id", r.ID),
				zap.String("start_time", r.StartTime),
			)
			continue
		}

		end, err := timezone.AtWallClock(dateStr, r.EndTime, loc)
		if err != nil {
			log.Warn("skipping schedule rule with bad end time",
				zap.Uint("rule_id", r.ID),
				zap.String("end_time", r.EndTime),
			)
			continue
		}

		// A wall-clock time inside the spring-forward gap does not
		// exist on this date; the runtime normalizes it to a nearby
		// hour instead of failing. Round-tripping the labels catches
		// that, so the rule is skipped rather than emitting slots at
		// times the provider never declared.
		if timezone.LocalClock(start, loc) != r.StartTime || timezone.LocalClock(end, loc) != r.EndTime {
			log.Warn("skipping schedule rule falling in a DST gap",
				zap.Uint("rule_id", r.ID),
				zap.String("date", dateStr),
				zap.String("start_time", r.StartTime),
				zap.String("end_time", r.EndTime),
			)
			continue
		}

		if !start.Before(end) {
			log.Warn("skipping schedule rule with inverted window",
				zap.Uint("rule_id", r.ID),
				zap.String("start_time", r.StartTime),
				zap.String("end_time", r.EndTime),
			)
			continue
		}

		windows = append(windows, dayWindow{start: start, end: end})
	}

	return windows
}

// candidateStarts concatenates slot starts across all windows,
// deduplicates starts shared by overlapping rules, and sorts ascending.
func candidateStarts(windows []dayWindow, duration time.Duration) []time.Time {
	seen := make(map[time.Time]struct{})
	var starts []time.Time

	for _, w := range windows {
		for _, s := range domain.GenerateSlots(w.start, w.end, duration) {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			starts = append(starts, s)
		}
	}

	sort.Slice(starts, func(i, j int) bool {
		return starts[i].Before(starts[j])
	})
	return starts
}

// slotFree applies the half-open exclusion rules against blocks and
// blocking appointments. All comparisons are on UTC instants.
func slotFree(
	start time.Time,
	duration time.Duration,
	blocks []models.UnavailabilityBlock,
	appts []models.Appointment,
) bool {

	end := start.Add(duration)

	for _, b := range blocks {
		if domain.Overlaps(b.StartsAt, b.EndsAt, start, end) {
			return false
		}
	}

	for _, ap := range appts {
		if domain.AppointmentOverlapsSlot(ap.StartTime, ap.DurationMin, start, end) {
			return false
		}
	}

	return true
}
