package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/vitalpoint/clinic-scheduler/internal/domain/availability"
	"github.com/vitalpoint/clinic-scheduler/internal/models"
)

func newResolveMonth(repo domain.Repository, loc *time.Location) *ResolveMonth {
	return NewResolveMonth(repo, loc, zap.NewNop())
}

// June 2024 Mondays: 3, 10, 17, 24.
func juneMondaysRepo(t *testing.T, loc *time.Location) *fakeRepo {
	t.Helper()
	return &fakeRepo{
		rules: []models.WeeklySchedule{
			{ID: 1, Weekday: 1, StartTime: "09:00", EndTime: "10:00"},
		},
		blocks: []models.UnavailabilityBlock{{
			// All of June 10, local time.
			StartsAt: nyInstant(t, loc, "2024-06-10", "00:00"),
			EndsAt:   nyInstant(t, loc, "2024-06-11", "00:00"),
		}},
		appts: []models.Appointment{{
			// Fills the only slot of June 17.
			StartTime:   nyInstant(t, loc, "2024-06-17", "09:00"),
			DurationMin: 60,
			Status:      "scheduled",
		}},
	}
}

func TestResolveMonth_OnlyDatesWithAFreeSlot(t *testing.T) {
	loc := testLoc(t)
	uc := newResolveMonth(juneMondaysRepo(t, loc), loc)

	dates, err := uc.Execute(context.Background(), domain.MonthInput{
		ProviderID:  uuid.New(),
		Year:        2024,
		Month:       6,
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2024-06-03", "2024-06-24"}
	if len(dates) != len(want) {
		t.Fatalf("expected %v, got %v", want, dates)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("date %d: expected %s, got %s", i, want[i], dates[i])
		}
	}
}

// The monthly scan and the daily resolver must agree on every single
// date of the month, in both directions.
func TestResolveMonth_ConsistentWithDailyResolver(t *testing.T) {
	loc := testLoc(t)
	repo := juneMondaysRepo(t, loc)
	providerID := uuid.New()

	monthUC := newResolveMonth(repo, loc)
	dailyUC := newResolveSlots(repo, loc)

	dates, err := monthUC.Execute(context.Background(), domain.MonthInput{
		ProviderID:  providerID,
		Year:        2024,
		Month:       6,
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	available := make(map[string]bool)
	for _, d := range dates {
		available[d] = true
	}

	for day := 1; day <= 30; day++ {
		dateStr := time.Date(2024, 6, day, 0, 0, 0, 0, loc).Format("2006-01-02")

		slots, err := dailyUC.Execute(context.Background(), domain.SlotsInput{
			ProviderID:  providerID,
			Date:        dateStr,
			DurationMin: 60,
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", dateStr, err)
		}

		if available[dateStr] && len(slots) == 0 {
			t.Errorf("%s listed as available but the daily resolver found no slots", dateStr)
		}
		if !available[dateStr] && len(slots) > 0 {
			t.Errorf("%s omitted from the month but the daily resolver found %v", dateStr, localTimes(slots))
		}
	}
}

func TestResolveMonth_EmptyScheduleGivesNoDates(t *testing.T) {
	loc := testLoc(t)
	uc := newResolveMonth(&fakeRepo{}, loc)

	dates, err := uc.Execute(context.Background(), domain.MonthInput{
		ProviderID:  uuid.New(),
		Year:        2024,
		Month:       6,
		DurationMin: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 0 {
		t.Errorf("expected no dates, got %v", dates)
	}
}

func TestResolveMonth_InvalidInput(t *testing.T) {
	loc := testLoc(t)
	uc := newResolveMonth(&fakeRepo{}, loc)

	cases := []domain.MonthInput{
		{ProviderID: uuid.New(), Year: 2024, Month: 0, DurationMin: 30},
		{ProviderID: uuid.New(), Year: 2024, Month: 13, DurationMin: 30},
		{ProviderID: uuid.New(), Year: 0, Month: 6, DurationMin: 30},
		{ProviderID: uuid.New(), Year: 2024, Month: 6, DurationMin: 0},
	}

	for _, in := range cases {
		_, err := uc.Execute(context.Background(), in)
		var invalid *domain.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Errorf("input %+v: expected InvalidInputError, got %v", in, err)
		}
	}
}

func TestResolveMonth_RepositoryFailureIsTyped(t *testing.T) {
	loc := testLoc(t)
	boom := errors.New("connection refused")
	uc := newResolveMonth(&fakeRepo{err: boom}, loc)

	_, err := uc.Execute(context.Background(), domain.MonthInput{
		ProviderID:  uuid.New(),
		Year:        2024,
		Month:       6,
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
