package appointment

import (
	"testing"

	"github.com/vitalpoint/clinic-scheduler/internal/httperr"
)

func TestIsBlocking(t *testing.T) {
	blocking := map[Status]bool{
		StatusScheduled: true,
		StatusPending:   true,
		StatusConfirmed: false,
		StatusCompleted: false,
		StatusCancelled: false,
	}

	for s, want := range blocking {
		if got := IsBlocking(s); got != want {
			t.Errorf("IsBlocking(%s) = %v, want %v", s, got, want)
		}
	}
}

func TestBlockingStatusStrings_MatchesBlockingSet(t *testing.T) {
	strs := BlockingStatusStrings()
	if len(strs) != len(BlockingStatuses) {
		t.Fatalf("expected %d entries, got %d", len(BlockingStatuses), len(strs))
	}
	for i, s := range BlockingStatuses {
		if strs[i] != string(s) {
			t.Errorf("entry %d: got %q, want %q", i, strs[i], s)
		}
	}
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		name    string
		check   func(Status) error
		allowed []Status
	}{
		{"confirm", CanConfirm, []Status{StatusPending, StatusScheduled}},
		{"cancel", CanCancel, []Status{StatusScheduled, StatusPending, StatusConfirmed}},
		{"complete", CanComplete, []Status{StatusScheduled, StatusConfirmed}},
	}

	all := []Status{StatusScheduled, StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			allowed := make(map[Status]bool)
			for _, s := range tc.allowed {
				allowed[s] = true
			}

			for _, s := range all {
				err := tc.check(s)
				if allowed[s] && err != nil {
					t.Errorf("%s from %s: expected nil, got %v", tc.name, s, err)
				}
				if !allowed[s] {
					if !httperr.IsBusiness(err, "invalid_state") {
						t.Errorf("%s from %s: expected invalid_state, got %v", tc.name, s, err)
					}
				}
			}
		})
	}
}

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(); got != StatusScheduled {
		t.Errorf("InitialStatus = %s, want %s", got, StatusScheduled)
	}
}
