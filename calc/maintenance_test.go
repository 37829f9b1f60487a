package calc

import "testing"

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name          string
		current       float64
		interval      float64
		lastPerformed float64
		wantRemaining float64
		wantStatus    string
	}{
		{"fresh check", 10, 100, 0, 90, StatusGood},
		{"approaching the interval", 95, 100, 0, 5, StatusWarning},
		{"exactly due", 100, 100, 0, 0, StatusCritical},
		{"overdue", 101, 100, 0, -1, StatusCritical},
		{"just outside warning window", 50, 100, 0, 50, StatusGood},
		{"just inside warning window", 51, 100, 0, 49, StatusWarning},
		{"interval offset by last performance", 1095, 100, 1000, 5, StatusWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckStatus(tt.current, tt.interval, tt.lastPerformed)
			if got.Remaining != tt.wantRemaining {
				t.Errorf("remaining = %v, want %v", got.Remaining, tt.wantRemaining)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.NextDue != tt.lastPerformed+tt.interval {
				t.Errorf("next due = %v, want %v", got.NextDue, tt.lastPerformed+tt.interval)
			}
		})
	}
}

func TestCheckStatusPercent(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		want    float64
	}{
		{"halfway", 50, 50},
		{"overdue clamps at 100", 150, 100},
		{"hours rolled back clamps at 0", -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckStatus(tt.current, 100, 0)
			if got.PercentUsed != tt.want {
				t.Errorf("percent used = %v, want %v", got.PercentUsed, tt.want)
			}
		})
	}
}

func TestTrainingStatus(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{-1, StatusCritical},
		{0, StatusWarning},
		{59, StatusWarning},
		{60, StatusGood},
		{365, StatusGood},
	}

	for _, tt := range tests {
		if got := TrainingStatus(tt.days); got != tt.want {
			t.Errorf("TrainingStatus(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}
