package availability

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domain "github.com/vitalpoint/clinic-scheduler/internal/domain/availability"
	"github.com/vitalpoint/clinic-scheduler/internal/models"
	"github.com/vitalpoint/clinic-scheduler/internal/timezone"
)

// ======================================================
// USE CASE — monthly availability scan
// ======================================================

type ResolveMonth struct {
	repo domain.Repository
	loc  *time.Location
	log  *zap.Logger
}

func NewResolveMonth(
	repo domain.Repository,
	loc *time.Location,
	log *zap.Logger,
) *ResolveMonth {
	return &ResolveMonth{
		repo: repo,
		loc:  loc,
		log:  log,
	}
}

// Execute answers "which dates of the month have at least one free
// slot", for calendar highlighting. It fetches the whole month's rules,
// blocks and appointments in three queries, partitions them by clinic-
// local date in memory, and per day runs the same expansion and
// exclusion as the daily resolver, stopping at the first free slot.
// Dates with no availability are simply absent from the result.
func (uc *ResolveMonth) Execute(
	ctx context.Context,
	in domain.MonthInput,
) ([]string, error) {

	if in.Month < 1 || in.Month > 12 {
		return nil, &domain.InvalidInputError{
			Field: "month",
			Value: strconv.Itoa(in.Month),
		}
	}
	if in.Year < 1 || in.Year > 9999 {
		return nil, &domain.InvalidInputError{
			Field: "year",
			Value: strconv.Itoa(in.Year),
		}
	}
	if in.DurationMin <= 0 {
		return nil, &domain.InvalidInputError{
			Field: "duration_min",
			Value: strconv.Itoa(in.DurationMin),
		}
	}

	monthStart := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, uc.loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var (
		rules  []models.WeeklySchedule
		blocks []models.UnavailabilityBlock
		appts  []models.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		rules, err = uc.repo.GetWeeklyRulesForAllDays(gctx, in.ProviderID)
		if err != nil {
			return &domain.DataAccessError{Op: "weekly_rules", Err: err}
		}
		return nil
	})

	g.Go(func() error {
		var err error
		blocks, err = uc.repo.GetUnavailabilityBlocks(gctx, in.ProviderID, monthStart.UTC(), monthEnd.UTC())
		if err != nil {
			return &domain.DataAccessError{Op: "unavailability_blocks", Err: err}
		}
		return nil
	})

	g.Go(func() error {
		var err error
		appts, err = uc.repo.GetBlockingAppointments(gctx, in.ProviderID, monthStart.UTC(), monthEnd.UTC())
		if err != nil {
			return &domain.DataAccessError{Op: "blocking_appointments", Err: err}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	rulesByWeekday := make(map[time.Weekday][]models.WeeklySchedule)
	for _, r := range rules {
		wd := time.Weekday(r.Weekday)
		rulesByWeekday[wd] = append(rulesByWeekday[wd], r)
	}

	// Appointments are bucketed by the clinic-local date they start on,
	// which is exactly the set the daily resolver's UTC day bounds
	// fetch would return for that date.
	apptsByDate := make(map[string][]models.Appointment)
	for _, ap := range appts {
		key := timezone.LocalDate(ap.StartTime, uc.loc)
		apptsByDate[key] = append(apptsByDate[key], ap)
	}

	duration := time.Duration(in.DurationMin) * time.Minute

	var dates []string
	for day := monthStart; day.Before(monthEnd); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format(timezone.DateLayout)

		dayRules := rulesByWeekday[day.Weekday()]
		if len(dayRules) == 0 {
			continue
		}

		dayStart := day.UTC()
		dayEnd := day.AddDate(0, 0, 1).UTC()

		// Blocks can span several days, so filter per day instead of
		// bucketing by start date.
		var dayBlocks []models.UnavailabilityBlock
		for _, b := range blocks {
			if domain.Overlaps(b.StartsAt, b.EndsAt, dayStart, dayEnd) {
				dayBlocks = append(dayBlocks, b)
			}
		}

		dayAppts := apptsByDate[dateStr]

		windows := expandRuleWindows(dayRules, dateStr, uc.loc, uc.log)
		for _, s := range candidateStarts(windows, duration) {
			if slotFree(s, duration, dayBlocks, dayAppts) {
				dates = append(dates, dateStr)
				break
			}
		}
	}

	uc.log.Debug("monthly availability resolved",
		zap.String("provider_id", in.ProviderID.String()),
		zap.Int("year", in.Year),
		zap.Int("month", in.Month),
		zap.Int("rules", len(rules)),
		zap.Int("blocks", len(blocks)),
		zap.Int("appointments", len(appts)),
		zap.Int("available_dates", len(dates)),
	)

	return dates, nil
}
