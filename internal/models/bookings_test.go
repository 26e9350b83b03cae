package models

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, time.July, d, 0, 0, 0, 0, time.UTC)
}

func TestStayRangeOverlaps(t *testing.T) {
	base := StayRange{CheckIn: day(10), CheckOut: day(15)}

	cases := []struct {
		name  string
		other StayRange
		want  bool
	}{
		{"identical", StayRange{day(10), day(15)}, true},
		{"straddles start", StayRange{day(8), day(11)}, true},
		{"straddles end", StayRange{day(14), day(17)}, true},
		{"contained", StayRange{day(11), day(13)}, true},
		{"containing", StayRange{day(8), day(17)}, true},
		{"touching before", StayRange{day(5), day(10)}, false},
		{"touching after", StayRange{day(15), day(20)}, false},
		{"disjoint before", StayRange{day(1), day(5)}, false},
		{"disjoint after", StayRange{day(20), day(25)}, false},
	}

	for _, tc := range cases {
		if got := base.Overlaps(tc.other); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
		// Overlap is symmetric
		if got := tc.other.Overlaps(base); got != tc.want {
			t.Errorf("%s (reversed): Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestStayRangeNights(t *testing.T) {
	if n := (StayRange{day(10), day(12)}).Nights(); n != 2 {
		t.Errorf("Nights = %d, want 2", n)
	}
	if n := (StayRange{day(1), day(31)}).Nights(); n != 30 {
		t.Errorf("Nights = %d, want 30", n)
	}
}

func TestStayRangeIsValid(t *testing.T) {
	if (StayRange{day(10), day(10)}).IsValid() {
		t.Error("zero-night range should be invalid")
	}
	if (StayRange{day(12), day(10)}).IsValid() {
		t.Error("reversed range should be invalid")
	}
	if !(StayRange{day(10), day(11)}).IsValid() {
		t.Error("one-night range should be valid")
	}
}

func TestBookingStatusBlocking(t *testing.T) {
	blocking := []BookingStatus{BookingRequested, BookingPending, BookingConfirmed, BookingModified}
	released := []BookingStatus{BookingCancelled, BookingRejected, BookingCompleted}

	for _, s := range blocking {
		if !s.IsBlocking() {
			t.Errorf("%s should block dates", s)
		}
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range released {
		if s.IsBlocking() {
			t.Errorf("%s should release dates", s)
		}
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	allowed := map[BookingStatus][]BookingStatus{
		BookingRequested: {BookingConfirmed, BookingModified, BookingCancelled, BookingRejected},
		BookingPending:   {BookingConfirmed, BookingModified, BookingCancelled, BookingRejected},
		BookingConfirmed: {BookingModified, BookingCancelled, BookingCompleted},
		BookingModified:  {BookingModified, BookingCancelled, BookingCompleted},
		BookingCancelled: {},
		BookingRejected:  {},
		BookingCompleted: {},
	}

	all := []BookingStatus{
		BookingRequested, BookingPending, BookingConfirmed, BookingModified,
		BookingCancelled, BookingRejected, BookingCompleted,
	}

	for from, nexts := range allowed {
		permitted := make(map[BookingStatus]bool)
		for _, next := range nexts {
			permitted[next] = true
		}
		for _, next := range all {
			if got := from.CanTransitionTo(next); got != permitted[next] {
				t.Errorf("%s -> %s = %v, want %v", from, next, got, permitted[next])
			}
		}
	}
}

func TestBlockingStatusStrings(t *testing.T) {
	got := BlockingStatusStrings()
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	for _, s := range got {
		if !BookingStatus(s).IsBlocking() {
			t.Errorf("%s listed as blocking but IsBlocking is false", s)
		}
	}
}
