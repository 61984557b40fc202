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
// USE CASE — per-day slot resolution
// ======================================================

type ResolveSlots struct {
	repo domain.Repository
	loc  *time.Location
	log  *zap.Logger
}

func NewResolveSlots(
	repo domain.Repository,
	loc *time.Location,
	log *zap.Logger,
) *ResolveSlots {
	return &ResolveSlots{
		repo: repo,
		loc:  loc,
		log:  log,
	}
}

// Execute resolves the bookable slots for one provider and one clinic
// calendar date. The three reads are independent, so they run
// concurrently; filtering starts only once all three are in. A
// cancelled fetch aborts the whole resolution; a partial slot list is
// never returned as if it were complete.
func (uc *ResolveSlots) Execute(
	ctx context.Context,
	in domain.SlotsInput,
) ([]domain.Slot, error) {

	if in.DurationMin <= 0 {
		return nil, &domain.InvalidInputError{
			Field: "duration_min",
			Value: strconv.Itoa(in.DurationMin),
		}
	}

	weekday, err := timezone.DayOfWeek(in.Date, uc.loc)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd, err := timezone.DayBoundsUTC(in.Date, uc.loc)
	if err != nil {
		return nil, err
	}

	var (
		rules  []models.WeeklySchedule
		blocks []models.UnavailabilityBlock
		appts  []models.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		rules, err = uc.repo.GetWeeklyRules(gctx, in.ProviderID, weekday)
		if err != nil {
			return &domain.DataAccessError{Op: "weekly_rules", Err: err}
		}
		return nil
	})

	g.Go(func() error {
		var err error
		blocks, err = uc.repo.GetUnavailabilityBlocks(gctx, in.ProviderID, dayStart, dayEnd)
		if err != nil {
			return &domain.DataAccessError{Op: "unavailability_blocks", Err: err}
		}
		return nil
	})

	g.Go(func() error {
		var err error
		appts, err = uc.repo.GetBlockingAppointments(gctx, in.ProviderID, dayStart, dayEnd)
		if err != nil {
			return &domain.DataAccessError{Op: "blocking_appointments", Err: err}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	duration := time.Duration(in.DurationMin) * time.Minute

	windows := expandRuleWindows(rules, in.Date, uc.loc, uc.log)
	candidates := candidateStarts(windows, duration)

	slots := make([]domain.Slot, 0, len(candidates))
	for _, s := range candidates {
		if slotFree(s, duration, blocks, appts) {
			slots = append(slots, domain.Slot{
				Start:     s,
				LocalTime: timezone.LocalClock(s, uc.loc),
			})
		}
	}

	uc.log.Debug("availability resolved",
		zap.String("provider_id", in.ProviderID.String()),
		zap.String("date", in.Date),
		zap.Int("rules", len(rules)),
		zap.Int("blocks", len(blocks)),
		zap.Int("appointments", len(appts)),
		zap.Int("candidates", len(candidates)),
		zap.Int("slots", len(slots)),
	)

	return slots, nil
}
