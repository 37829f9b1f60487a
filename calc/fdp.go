package calc

import (
	"time"

	"github.com/skybridgeair/flightops/types"
)

const isoDate = "2006-01-02"

// FDPTotals is accumulated flight time for one crew member, in decimal
// hours, over the three regulatory windows ending at the reference date.
type FDPTotals struct {
	Daily   float64 `json:"daily"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
}

// ComputeFDP sums flight time for every flight where the crew member
// holds the PIC or SIC seat. Daily matches the flight's date string
// against the reference date exactly; weekly covers the seven days up to
// and including the reference date; monthly covers the reference month up
// to and including the reference date. A flight with no flight time
// recorded (zero) is excluded from all three windows, and a whole flight
// counts toward whichever windows its calendar date falls in, with no
// splitting across midnight.
func ComputeFDP(flights []types.Flight, crewCode string, referenceDate time.Time) FDPTotals {
	refDay := time.Date(referenceDate.Year(), referenceDate.Month(), referenceDate.Day(), 0, 0, 0, 0, time.UTC)
	refStr := refDay.Format(isoDate)
	weekStart := refDay.AddDate(0, 0, -7)
	monthStart := time.Date(refDay.Year(), refDay.Month(), 1, 0, 0, 0, 0, time.UTC)

	var totals FDPTotals
	for _, f := range flights {
		if f.PIC != crewCode && f.SIC != crewCode {
			continue
		}
		if f.FlightTime == 0 {
			continue
		}
		if f.Date == refStr {
			totals.Daily += f.FlightTime
		}
		day, err := time.ParseInLocation(isoDate, f.Date, time.UTC)
		if err != nil {
			continue
		}
		if !day.Before(weekStart) && !day.After(refDay) {
			totals.Weekly += f.FlightTime
		}
		if !day.Before(monthStart) && !day.After(refDay) {
			totals.Monthly += f.FlightTime
		}
	}
	return totals
}
