package calc

import (
	"math"
	"testing"
	"time"

	"github.com/skybridgeair/flightops/types"
)

func TestComputeFDP(t *testing.T) {
	ref := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	flights := []types.Flight{
		{Date: "2026-08-20", PIC: "ABC", FlightTime: 2.5},        // today
		{Date: "2026-08-18", SIC: "ABC", FlightTime: 1.5},        // this week, SIC seat
		{Date: "2026-08-05", PIC: "ABC", FlightTime: 3.0},        // this month only
		{Date: "2026-07-20", PIC: "ABC", FlightTime: 4.0},        // 31 days back, outside all windows
		{Date: "2026-08-20", PIC: "XYZ", FlightTime: 2.0},        // other crew
		{Date: "2026-08-20", PIC: "ABC", FlightTime: 0},          // no time recorded
		{Date: "not-a-date", PIC: "ABC", FlightTime: 1.0},        // unparseable date
		{Date: "2026-08-21", PIC: "ABC", FlightTime: 9.0},        // future of reference date
	}

	got := ComputeFDP(flights, "ABC", ref)

	if math.Abs(got.Daily-2.5) > 1e-9 {
		t.Errorf("daily = %v, want 2.5", got.Daily)
	}
	if math.Abs(got.Weekly-4.0) > 1e-9 {
		t.Errorf("weekly = %v, want 4.0", got.Weekly)
	}
	if math.Abs(got.Monthly-7.0) > 1e-9 {
		t.Errorf("monthly = %v, want 7.0", got.Monthly)
	}
}

// A flight dated today must land in all three windows at once.
func TestComputeFDPTodayCountsEverywhere(t *testing.T) {
	ref := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	flights := []types.Flight{{Date: "2026-03-15", PIC: "JRM", FlightTime: 1.2}}

	got := ComputeFDP(flights, "JRM", ref)
	if got.Daily != 1.2 || got.Weekly != 1.2 || got.Monthly != 1.2 {
		t.Errorf("got %+v, want 1.2 in every window", got)
	}
}

func TestComputeFDPWindowBoundaries(t *testing.T) {
	ref := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    string
		weekly  float64
		monthly float64
	}{
		{"seven days back is inside the week", "2026-08-13", 1, 1},
		{"eight days back is outside the week", "2026-08-12", 0, 1},
		{"first of the month is inside", "2026-08-01", 0, 1},
		{"last of previous month is outside", "2026-07-31", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flights := []types.Flight{{Date: tt.date, PIC: "ABC", FlightTime: 1}}
			got := ComputeFDP(flights, "ABC", ref)
			if got.Weekly != tt.weekly || got.Monthly != tt.monthly {
				t.Errorf("date %s: weekly=%v monthly=%v, want %v/%v",
					tt.date, got.Weekly, got.Monthly, tt.weekly, tt.monthly)
			}
		})
	}
}

func TestComputeFDPEmptyRoster(t *testing.T) {
	got := ComputeFDP(nil, "ABC", time.Now())
	if got.Daily != 0 || got.Weekly != 0 || got.Monthly != 0 {
		t.Errorf("expected zero totals, got %+v", got)
	}
}
