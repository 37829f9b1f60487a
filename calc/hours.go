// Package calc holds the dispatch and crew arithmetic: weight and
// balance, fuel planning, flight-duty-period totals, maintenance
// intervals, and the clock-time helpers they share. Everything in here
// is a pure function over its arguments; persistence and HTTP live
// elsewhere.
package calc

import (
	"fmt"
	"strconv"
	"strings"
)

// HmToDecimal parses a clock-style duration ("1:30") into decimal hours.
// Input without a colon is treated as an already-decimal figure; empty or
// unparseable input becomes 0.
func HmToDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if !strings.Contains(s, ":") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return v
	}
	parts := strings.SplitN(s, ":", 2)
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return float64(hours) + float64(minutes)/60
}

// DecimalToHm formats decimal hours as "H:MM". The minute remainder is
// rounded, and a carry into the next hour is handled so 1.999 renders as
// "2:00" rather than "1:60".
func DecimalToHm(v float64) string {
	if v < 0 {
		v = 0
	}
	hours := int(v)
	minutes := int((v-float64(hours))*60 + 0.5)
	if minutes >= 60 {
		hours++
		minutes -= 60
	}
	return fmt.Sprintf("%d:%02d", hours, minutes)
}

// DurationBetween returns the elapsed decimal hours from start to end,
// both "HH:MM" clock times. A negative raw difference is taken to cross
// midnight exactly once. Returns 0 when either input fails to parse.
func DurationBetween(start, end string) float64 {
	startMin, ok := clockToMinutes(start)
	if !ok {
		return 0
	}
	endMin, ok := clockToMinutes(end)
	if !ok {
		return 0
	}
	diff := endMin - startMin
	if diff < 0 {
		diff += 24 * 60
	}
	return float64(diff) / 60
}

// ProjectETA adds durationMinutes to an "HH:MM" departure time, wrapping
// past midnight. Returns "" when the departure time fails to parse.
func ProjectETA(etd string, durationMinutes int) string {
	etdMin, ok := clockToMinutes(etd)
	if !ok {
		return ""
	}
	eta := (etdMin + durationMinutes) % (24 * 60)
	if eta < 0 {
		eta += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", eta/60, eta%60)
}

func clockToMinutes(s string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}
