package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apptdomain "github.com/vitalpoint/clinic-scheduler/internal/domain/appointment"
	domain "github.com/vitalpoint/clinic-scheduler/internal/domain/availability"
	"github.com/vitalpoint/clinic-scheduler/internal/models"
)

// fakeRepo serves canned rows the way the GORM repository would: rules
// filtered by weekday, blocks by range overlap, appointments by start
// falling inside the range.
type fakeRepo struct {
	rules  []models.WeeklySchedule
	blocks []models.UnavailabilityBlock
	appts  []models.Appointment

	err error
}

func (f *fakeRepo) GetWeeklyRules(_ context.Context, _ uuid.UUID, weekday time.Weekday) ([]models.WeeklySchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.WeeklySchedule
	for _, r := range f.rules {
		if time.Weekday(r.Weekday) == weekday {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetWeeklyRulesForAllDays(_ context.Context, _ uuid.UUID) ([]models.WeeklySchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rules, nil
}

func (f *fakeRepo) GetUnavailabilityBlocks(_ context.Context, _ uuid.UUID, from, to time.Time) ([]models.UnavailabilityBlock, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.UnavailabilityBlock
	for _, b := range f.blocks {
		if b.StartsAt.Before(to) && b.EndsAt.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetBlockingAppointments(_ context.Context, _ uuid.UUID, from, to time.Time) ([]models.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Appointment
	for _, ap := range f.appts {
		if !apptdomain.IsBlocking(apptdomain.Status(ap.Status)) {
			continue
		}
		if !ap.StartTime.Before(from) && ap.StartTime.Before(to) {
			out = append(out, ap)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ---------------------------------------------------------------------

func testLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load test timezone: %v", err)
	}
	return loc
}

// nyInstant builds the UTC instant for a New York local wall-clock time.
func nyInstant(t *testing.T, loc *time.Location, dateStr, clock string) time.Time {
	t.Helper()
	at, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+clock, loc)
	if err != nil {
		t.Fatalf("bad test time %s %s: %v", dateStr, clock, err)
	}
	return at.UTC()
}

func mondayRule(start, end string) models.WeeklySchedule {
	return models.WeeklySchedule{ID: 1, Weekday: 1, StartTime: start, EndTime: end}
}

func localTimes(slots []domain.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.LocalTime)
	}
	return out
}

// 2024-06-03 is a Monday.
const monday = "2024-06-03"

func newResolveSlots(repo domain.Repository, loc *time.Location) *ResolveSlots {
	return NewResolveSlots(repo, loc, zap.NewNop())
}

// ---------------------------------------------------------------------

func TestResolveSlots_NoRulesMeansNoSlots(t *testing.T) {
	loc := testLoc(t)
	uc := newResolveSlots(&fakeRepo{}, loc)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		ProviderID:  uuid.New(),
		Date:        monday,
		DurationMin: 30,
	})
	if err != nil {
		t.Fatalf("a day without rules is not an error, got %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots, got %v", localTimes(slots))
	}
}

func TestResolveSlots_OpenWindowProducesOrderedSlots(t *testing.T) {
	loc := testLoc(t)
	uc := newResolveSlots(&fakeRepo{
		rules: []models.WeeklySchedule{mondayRule("09:00", "11:00")},
	}, loc)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		ProviderID:  uuid.New(),
		Date:        monday,
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:00", "10:00"}
	got := localTimes(slots)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	for i := 1; i < len(slots); i++ {
		if !slots[i-1].Start.Before(slots[i].Start) {
			t.Errorf("slots out of order at %d: %v >= %v", i, slots[i-1].Start, slots[i].Start)
		}
	}
}

func TestResolveSlots_BlockEndingAtSlotStartDoesNotExclude(t *testing.T) {
	loc := testLoc(t)
	uc := newResolveSlots(&fakeRepo{
		rules: []models.WeeklySchedule{mondayRule("09:00", "10:00")},
		blocks: []models.UnavailabilityBlock{{
			StartsAt: nyInstant(t, loc, monday, "08:00"),
			EndsAt:   nyInstant(t, loc, monday, "09:00"),
		}},
	}, loc)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		ProviderID:  uuid.New(),
		Date:        monday,
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := localTimes(slots); len(got) != 1 || got[0] != "09:00" {
		t.Errorf("back-to-back block must not exclude the 09:00 slot, got %v", got)
	}
}

func TestResolveSlots_OverlappingBlockExcludes(t *testing.T) {
	loc := testLoc(t)
	uc := newResolveSlots(&fakeRepo{
		rules: []models.WeeklySchedule{mondayRule("09:00", "11:00")},
		blocks: []models.UnavailabilityBlock{{
			StartsAt: nyInstant(t, loc, monday, "09:30"),
			EndsAt:   nyInstant(t, loc, monday, "10:30"),
		}},
	}, loc)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		ProviderID:  uuid.New(),
		Date:        monday,
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The block clips both 09:00-10:00 and 10:00-11:00.
	if len(slots) != 0 {
		t.Errorf("expected no slots, got %v", localTimes(slots))
	}
}

func TestResolveSlots_BlockingAppointmentExcludesItsSlot(t *testing.T) {
	loc := testLoc(t)
	uc := newResolveSlots(&fakeRepo{
		rules: []models.WeeklySchedule{mondayRule("09:00", "11:00")},
		appts: []models.Appointment{{
			StartTime:   nyInstant(t, loc, monday, "10:00"),
			DurationMin: 60,
			Status:      "scheduled",
		}},
	}, loc)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		ProviderID:  uuid.New(),
		Date:        monday,
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := localTimes(slots); len(got) != 1 || got[0] != "09:00" {
		t.Errorf("expected only 09:00 to survive, got %v", got)
	}
}

func TestResolveSlots_CancelledAppointmentNeverBlocks(t *testing.T) {
	loc := testLoc(t)
	uc := newResolveSlots(&fakeRepo{
		rules: []models.WeeklySchedule{mondayRule("09:00", "11:00")},
		appts: []models.Appointment{{
			StartTime:   nyInstant(t, loc, monday, "10:00"),
			DurationMin: 60,
			Status:      "cancelled",
		}},
	}, loc)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		ProviderID:  uuid.New(),
		Date:        monday,
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "10:00"}
	got := localTimes(slots)
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestResolveSlots_ZeroDurationAppointmentBlocksOneSlot(t *testing.T) {
	loc := testLoc(t)
	uc := newResolveSlots(&fakeRepo{
		rules: []models.WeeklySchedule{mondayRule("09:00", "11:00")},
		appts: []models.Appointment{{
			StartTime:   nyInstant(t, loc, monday, "10:00"),
			DurationMin: 0,
			Status:      "scheduled",
		}},
	}, loc)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		ProviderID:  uuid.New(),
		Date:        monday,
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := localTimes(slots); len(got) != 1 || got[0] != "09:00" {
		t.Errorf("instant appointment should block only the slot containing it, got %v", got)
	}
}

func TestResolveSlots_MalformedRuleIsSkippedNotFatal(t *testing.T) {
	loc := testLoc(t)
	uc := newResolveSlots(&fakeRepo{
		rules: []models.WeeklySchedule{
			{ID: 1, Weekday: 1, StartTime: "9am", EndTime: "noon"},
			{ID: 2, Weekday: 1, StartTime: "14:00", EndTime: "15:00"},
		},
	}, loc)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		ProviderID:  uuid.New(),
		Date:        monday,
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("one bad rule must not fail the whole day: %v", err)
	}
	if got := localTimes(slots); len(got) != 1 || got[0] != "14:00" {
		t.Errorf("expected the valid rule's slot, got %v", got)
	}
}

func TestResolveSlots_OverlappingRulesDeduplicate(t *testing.T) {
	loc := testLoc(t)
	uc := newResolveSlots(&fakeRepo{
		rules: []models.WeeklySchedule{
			{ID: 1, Weekday: 1, StartTime: "09:00", EndTime: "11:00"},
			{ID: 2, Weekday: 1, StartTime: "09:00", EndTime: "12:00"},
		},
	}, loc)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		ProviderID:  uuid.New(),
		Date:        monday,
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]int)
	for _, s := range slots {
		seen[s.LocalTime]++
	}
	for clock, n := range seen {
		if n > 1 {
			t.Errorf("slot %s appears %d times", clock, n)
		}
	}
	if len(slots) != 3 {
		t.Errorf("expected 09:00, 10:00, 11:00, got %v", localTimes(slots))
	}
}

func TestResolveSlots_GapWindowRuleSkippedOnTransitionDay(t *testing.T) {
	loc := testLoc(t)
	// 2024-03-10 in New York has no 02:00; a rule sitting in the gap
	// must be skipped, not normalized into slots at other times.
	uc := newResolveSlots(&fakeRepo{
		rules: []models.WeeklySchedule{
			{ID: 1, Weekday: 0, StartTime: "02:00", EndTime: "03:00"},
			{ID: 2, Weekday: 0, StartTime: "09:00", EndTime: "10:00"},
		},
	}, loc)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		ProviderID:  uuid.New(),
		Date:        "2024-03-10",
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := localTimes(slots); len(got) != 1 || got[0] != "09:00" {
		t.Errorf("expected only the 09:00 slot, got %v", got)
	}
}

func TestResolveSlots_GapWindowRuleStillAppliesOnOtherDays(t *testing.T) {
	loc := testLoc(t)
	// The same 02:00 window is perfectly valid one week later.
	uc := newResolveSlots(&fakeRepo{
		rules: []models.WeeklySchedule{
			{ID: 1, Weekday: 0, StartTime: "02:00", EndTime: "03:00"},
		},
	}, loc)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		ProviderID:  uuid.New(),
		Date:        "2024-03-17",
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := localTimes(slots); len(got) != 1 || got[0] != "02:00" {
		t.Errorf("expected the 02:00 slot, got %v", got)
	}
}

func TestResolveSlots_InvertedWindowRuleSkipped(t *testing.T) {
	loc := testLoc(t)
	uc := newResolveSlots(&fakeRepo{
		rules: []models.WeeklySchedule{
			{ID: 1, Weekday: 1, StartTime: "15:00", EndTime: "14:00"},
			{ID: 2, Weekday: 1, StartTime: "09:00", EndTime: "10:00"},
		},
	}, loc)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		ProviderID:  uuid.New(),
		Date:        monday,
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("an inverted rule must not fail the day: %v", err)
	}
	if got := localTimes(slots); len(got) != 1 || got[0] != "09:00" {
		t.Errorf("expected only the valid rule's slot, got %v", got)
	}
}

func TestResolveSlots_SpringForwardDayResolvesWithoutError(t *testing.T) {
	loc := testLoc(t)
	// 2024-03-10 is the spring-forward Sunday in New York.
	uc := newResolveSlots(&fakeRepo{
		rules: []models.WeeklySchedule{{ID: 1, Weekday: 0, StartTime: "09:00", EndTime: "11:00"}},
	}, loc)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		ProviderID:  uuid.New(),
		Date:        "2024-03-10",
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("DST transition day must resolve, got %v", err)
	}
	if len(slots) != 2 {
		t.Errorf("expected 2 slots on the 23h day, got %v", localTimes(slots))
	}
}

func TestResolveSlots_InvalidInput(t *testing.T) {
	loc := testLoc(t)
	uc := newResolveSlots(&fakeRepo{}, loc)

	cases := []domain.SlotsInput{
		{ProviderID: uuid.New(), Date: monday, DurationMin: 0},
		{ProviderID: uuid.New(), Date: monday, DurationMin: -30},
		{ProviderID: uuid.New(), Date: "06/03/2024", DurationMin: 30},
		{ProviderID: uuid.New(), Date: "", DurationMin: 30},
	}

	for _, in := range cases {
		_, err := uc.Execute(context.Background(), in)
		var invalid *domain.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Errorf("input %+v: expected InvalidInputError, got %v", in, err)
		}
	}
}

func TestResolveSlots_RepositoryFailureIsTyped(t *testing.T) {
	loc := testLoc(t)
	boom := errors.New("connection refused")
	uc := newResolveSlots(&fakeRepo{err: boom}, loc)

	_, err := uc.Execute(context.Background(), domain.SlotsInput{
		ProviderID:  uuid.New(),
		Date:        monday,
		DurationMin: 30,
	})

	var da *domain.DataAccessError
	if !errors.As(err, &da) {
		t.Fatalf("expected DataAccessError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("DataAccessError must unwrap to the underlying cause")
	}
}
