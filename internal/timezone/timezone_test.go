package timezone

import (
	"errors"
	"testing"
	"time"

	"github.com/vitalpoint/clinic-scheduler/internal/domain/availability"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load America/New_York: %v", err)
	}
	return loc
}

func TestLoad(t *testing.T) {
	loc, err := Load("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("expected valid zone to load, got %v", err)
	}
	if loc.String() != "America/Sao_Paulo" {
		t.Errorf("unexpected location %q", loc)
	}

	for _, name := range []string{"", "Not/AZone"} {
		_, err := Load(name)
		var invalid *availability.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Errorf("Load(%q): expected InvalidInputError, got %v", name, err)
		}
	}
}

func TestDayBoundsUTC_RegularDay(t *testing.T) {
	loc := newYork(t)

	start, end, err := DayBoundsUTC("2024-06-03", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// EDT is UTC-4, so local midnight is 04:00Z.
	wantStart := time.Date(2024, 6, 3, 4, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 6, 4, 4, 0, 0, 0, time.UTC)

	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("regular day should be 24h, got %v", end.Sub(start))
	}
}

func TestDayBoundsUTC_SpringForwardIs23Hours(t *testing.T) {
	loc := newYork(t)

	// 2024-03-10: clocks jump 02:00 -> 03:00 local.
	start, end, err := DayBoundsUTC("2024-03-10", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := end.Sub(start); got != 23*time.Hour {
		t.Errorf("spring-forward day should span 23h, got %v", got)
	}
}

func TestDayBoundsUTC_FallBackIs25Hours(t *testing.T) {
	loc := newYork(t)

	start, end, err := DayBoundsUTC("2024-11-03", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := end.Sub(start); got != 25*time.Hour {
		t.Errorf("fall-back day should span 25h, got %v", got)
	}
}

func TestDayBoundsUTC_BadDate(t *testing.T) {
	loc := newYork(t)

	for _, bad := range []string{"", "03/10/2024", "2024-13-40", "yesterday"} {
		_, _, err := DayBoundsUTC(bad, loc)
		var invalid *availability.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Errorf("DayBoundsUTC(%q): expected InvalidInputError, got %v", bad, err)
		}
	}
}

func TestAtWallClock(t *testing.T) {
	loc := newYork(t)

	got, err := AtWallClock("2024-06-03", "09:00", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2024, 6, 3, 13, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("result must be in UTC, got %v", got.Location())
	}

	if _, err := AtWallClock("2024-06-03", "9am", loc); err == nil {
		t.Error("expected error for non HH:MM clock")
	}
	if _, err := AtWallClock("2024-06-03", "09:00", nil); err == nil {
		t.Error("expected error for nil location")
	}
}

func TestLocalClockAndDate_RoundTrip(t *testing.T) {
	loc := newYork(t)

	instant, err := AtWallClock("2024-06-03", "14:30", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := LocalClock(instant, loc); got != "14:30" {
		t.Errorf("LocalClock = %q, want %q", got, "14:30")
	}
	if got := LocalDate(instant, loc); got != "2024-06-03" {
		t.Errorf("LocalDate = %q, want %q", got, "2024-06-03")
	}
}

func TestLocalDate_CrossesMidnightInUTC(t *testing.T) {
	loc := newYork(t)

	// 23:00 local on June 3 is 03:00Z on June 4; the local date must win.
	instant, err := AtWallClock("2024-06-03", "23:00", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := LocalDate(instant, loc); got != "2024-06-03" {
		t.Errorf("LocalDate = %q, want %q", got, "2024-06-03")
	}
}

func TestDayOfWeek(t *testing.T) {
	loc := newYork(t)

	wd, err := DayOfWeek("2024-06-03", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wd != time.Monday {
		t.Errorf("2024-06-03 should be Monday in New York, got %v", wd)
	}

	if _, err := DayOfWeek("not-a-date", loc); err == nil {
		t.Error("expected error for malformed date")
	}
}
