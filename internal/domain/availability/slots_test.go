package availability

import (
	"testing"
	"time"
)

func utc(h, m int) time.Time {
	return time.Date(2024, 6, 3, h, m, 0, 0, time.UTC)
}

func TestGenerateSlots_StepsByDuration(t *testing.T) {
	starts := GenerateSlots(utc(9, 0), utc(12, 0), 60*time.Minute)

	want := []time.Time{utc(9, 0), utc(10, 0), utc(11, 0)}
	if len(starts) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(starts))
	}
	for i := range want {
		if !starts[i].Equal(want[i]) {
			t.Errorf("slot %d: expected %v, got %v", i, want[i], starts[i])
		}
	}
}

func TestGenerateSlots_LastSlotMustFitEntirely(t *testing.T) {
	// 09:00-10:30 with 60min slots: 09:30+60 would spill past the end.
	starts := GenerateSlots(utc(9, 0), utc(10, 30), 60*time.Minute)

	if len(starts) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(starts))
	}
	if !starts[0].Equal(utc(9, 0)) {
		t.Errorf("expected slot at 09:00, got %v", starts[0])
	}
}

func TestGenerateSlots_ExactFit(t *testing.T) {
	starts := GenerateSlots(utc(9, 0), utc(10, 0), 60*time.Minute)

	if len(starts) != 1 {
		t.Fatalf("expected exactly 1 slot for a window equal to the duration, got %d", len(starts))
	}
}

func TestGenerateSlots_DegenerateInputs(t *testing.T) {
	if got := GenerateSlots(utc(10, 0), utc(9, 0), 30*time.Minute); got != nil {
		t.Errorf("inverted window: expected nil, got %v", got)
	}
	if got := GenerateSlots(utc(9, 0), utc(9, 0), 30*time.Minute); got != nil {
		t.Errorf("empty window: expected nil, got %v", got)
	}
	if got := GenerateSlots(utc(9, 0), utc(10, 0), 0); got != nil {
		t.Errorf("zero duration: expected nil, got %v", got)
	}
	if got := GenerateSlots(utc(9, 0), utc(10, 0), -time.Minute); got != nil {
		t.Errorf("negative duration: expected nil, got %v", got)
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	a := GenerateSlots(utc(8, 0), utc(18, 0), 45*time.Minute)
	b := GenerateSlots(utc(8, 0), utc(18, 0), 45*time.Minute)

	if len(a) != len(b) {
		t.Fatalf("two identical calls returned %d and %d slots", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Errorf("slot %d differs between calls: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{"adjacent, a before b", utc(8, 0), utc(9, 0), utc(9, 0), utc(10, 0), false},
		{"adjacent, b before a", utc(10, 0), utc(11, 0), utc(9, 0), utc(10, 0), false},
		{"partial overlap", utc(9, 30), utc(10, 30), utc(9, 0), utc(10, 0), true},
		{"a inside b", utc(9, 15), utc(9, 45), utc(9, 0), utc(10, 0), true},
		{"b inside a", utc(8, 0), utc(12, 0), utc(9, 0), utc(10, 0), true},
		{"identical", utc(9, 0), utc(10, 0), utc(9, 0), utc(10, 0), true},
		{"disjoint", utc(6, 0), utc(7, 0), utc(9, 0), utc(10, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAppointmentOverlapsSlot_ZeroDurationCollapsesToInstant(t *testing.T) {
	slotStart, slotEnd := utc(9, 0), utc(10, 0)

	if !AppointmentOverlapsSlot(utc(9, 30), 0, slotStart, slotEnd) {
		t.Error("zero-duration appointment inside the slot should block it")
	}
	if !AppointmentOverlapsSlot(utc(9, 0), 0, slotStart, slotEnd) {
		t.Error("zero-duration appointment at the slot start should block it")
	}
	if AppointmentOverlapsSlot(utc(10, 0), 0, slotStart, slotEnd) {
		t.Error("zero-duration appointment at the exclusive slot end must not block it")
	}
	if AppointmentOverlapsSlot(utc(8, 59), 0, slotStart, slotEnd) {
		t.Error("zero-duration appointment before the slot must not block it")
	}
}

func TestAppointmentOverlapsSlot_EndingAtSlotStartDoesNotBlock(t *testing.T) {
	// Appointment 08:00-09:00 against slot 09:00-10:00.
	if AppointmentOverlapsSlot(utc(8, 0), 60, utc(9, 0), utc(10, 0)) {
		t.Error("back-to-back appointment must not block the following slot")
	}
	if !AppointmentOverlapsSlot(utc(8, 0), 61, utc(9, 0), utc(10, 0)) {
		t.Error("appointment spilling one minute into the slot should block it")
	}
}
