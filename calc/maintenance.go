package calc

// Maintenance traffic-light states.
const (
	StatusGood     = "Good"
	StatusWarning  = "Warning"
	StatusCritical = "Critical"
)

// warningWindowHours is the remaining-hours threshold below which a check
// turns Warning. It applies to every check type.
const warningWindowHours = 50

// MaintenanceStatus is the derived position of one check against its
// interval.
type MaintenanceStatus struct {
	NextDue     float64 `json:"next_due"`
	Remaining   float64 `json:"remaining"`
	PercentUsed float64 `json:"percent_used"`
	Status      string  `json:"status"`
}

// CheckStatus computes where an airframe sits in a check interval.
// Critical means the check is due or overdue; Warning means it comes due
// within the warning window.
func CheckStatus(currentHours, intervalHours, lastPerformedHours float64) MaintenanceStatus {
	nextDue := lastPerformedHours + intervalHours
	remaining := nextDue - currentHours

	var percent float64
	if intervalHours > 0 {
		percent = (currentHours - lastPerformedHours) / intervalHours * 100
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	status := StatusGood
	switch {
	case remaining <= 0:
		status = StatusCritical
	case remaining < warningWindowHours:
		status = StatusWarning
	}

	return MaintenanceStatus{
		NextDue:     nextDue,
		Remaining:   remaining,
		PercentUsed: percent,
		Status:      status,
	}
}

// TrainingStatus derives the traffic light for a training expiry given
// days until expiry. A negative value means already expired.
func TrainingStatus(daysUntilExpiry int) string {
	switch {
	case daysUntilExpiry < 0:
		return StatusCritical
	case daysUntilExpiry < 60:
		return StatusWarning
	default:
		return StatusGood
	}
}
