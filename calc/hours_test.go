package calc

import (
	"math"
	"testing"
)

func TestHmToDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"whole hours", "2:00", 2.0},
		{"hour and a half", "1:30", 1.5},
		{"minutes only", "0:45", 0.75},
		{"no colon falls back to decimal", "2.5", 2.5},
		{"empty string", "", 0},
		{"garbage", "abc", 0},
		{"garbage minutes", "1:xx", 0},
		{"whitespace", "  1:30 ", 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HmToDecimal(tt.input)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("HmToDecimal(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecimalToHm(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"whole hours", 2.0, "2:00"},
		{"hour and a half", 1.5, "1:30"},
		{"rounding carries into next hour", 1.999, "2:00"},
		{"just under a minute rounds up", 0.999, "1:00"},
		{"zero", 0, "0:00"},
		{"negative clamps to zero", -1.5, "0:00"},
		{"zero padded minutes", 3.1, "3:06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecimalToHm(tt.input); got != tt.want {
				t.Errorf("DecimalToHm(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Round-tripping through the formatter and parser must stay within one
// minute of the original value.
func TestHmRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.25, 1.5, 1.999, 7.05, 12.333, 99.9} {
		got := HmToDecimal(DecimalToHm(v))
		if math.Abs(got-v) > 1.0/60+1e-9 {
			t.Errorf("round trip of %v came back as %v", v, got)
		}
	}
}

func TestDurationBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       float64
	}{
		{"same day", "09:00", "10:30", 1.5},
		{"midnight rollover", "23:30", "00:30", 1.0},
		{"zero duration", "12:00", "12:00", 0},
		{"unparseable start", "9am", "10:30", 0},
		{"unparseable end", "09:00", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DurationBetween(tt.start, tt.end)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DurationBetween(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestProjectETA(t *testing.T) {
	tests := []struct {
		name     string
		etd      string
		duration int
		want     string
	}{
		{"simple addition", "09:00", 90, "10:30"},
		{"wraps past midnight", "23:30", 60, "00:30"},
		{"multiple day wrap", "12:00", 48 * 60, "12:00"},
		{"unparseable etd", "noon", 60, ""},
		{"zero padded output", "08:05", 5, "08:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProjectETA(tt.etd, tt.duration); got != tt.want {
				t.Errorf("ProjectETA(%q, %d) = %q, want %q", tt.etd, tt.duration, got, tt.want)
			}
		})
	}
}
