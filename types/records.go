package types

import "time"

type FlightStatus string

const (
	FlightScheduled FlightStatus = "Scheduled"
	FlightDelayed   FlightStatus = "Delayed"
	FlightOutbound  FlightStatus = "Outbound"
	FlightInbound   FlightStatus = "Inbound"
	FlightOnGround  FlightStatus = "On Ground"
	FlightCompleted FlightStatus = "Completed"
	FlightCancelled FlightStatus = "Cancelled"
)

// Flight is a scheduled leg. Date is the ISO calendar date ("2006-01-02")
// and ETD is the local clock time ("HH:MM"); FlightTime is planned block
// time in decimal hours.
type Flight struct {
	ID           int64        `json:"id"`
	Date         string       `json:"date"`
	ETD          string       `json:"etd"`
	Origin       string       `json:"origin"`
	Destination  string       `json:"destination"`
	Registration string       `json:"registration"`
	PIC          string       `json:"pic"`
	SIC          string       `json:"sic,omitempty"`
	FlightTime   float64      `json:"flight_time"`
	CustomerID   int64        `json:"customer_id,omitempty"`
	Status       FlightStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// CrewMember is a roster entry keyed by a stable three-letter code.
type CrewMember struct {
	ID               int64    `json:"id"`
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	Role             string   `json:"role"`
	ApprovedAirports []string `json:"approved_airports,omitempty"`
}

type AircraftStatus string

const (
	AircraftActive      AircraftStatus = "Active"
	AircraftMaintenance AircraftStatus = "Maintenance"
	AircraftAOG         AircraftStatus = "AOG"
)

// Aircraft carries the certified weight limits used by dispatch. All
// weights are pounds; CurrentHours is total airframe time.
type Aircraft struct {
	ID                int64          `json:"id"`
	Registration      string         `json:"registration"`
	Type              string         `json:"type"`
	Status            AircraftStatus `json:"status"`
	MaxTakeoffWeight  float64        `json:"max_takeoff_weight"`
	MaxLandingWeight  float64        `json:"max_landing_weight"`
	MaxZeroFuelWeight float64        `json:"max_zero_fuel_weight"`
	BasicEmptyWeight  float64        `json:"basic_empty_weight"`
	CurrentHours      float64        `json:"current_hours"`
}

// Route is a published city pair with planning times per aircraft type.
type Route struct {
	ID         int64       `json:"id"`
	Code       string      `json:"code"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	DistanceNM float64     `json:"distance_nm"`
	Times      []RouteTime `json:"times,omitempty"`
}

// RouteTime holds planning figures for one aircraft type on a route,
// all in decimal hours.
type RouteTime struct {
	AircraftType string  `json:"aircraft_type"`
	FlightTime   float64 `json:"flight_time"`
	Buffer       float64 `json:"buffer"`
	Contingency  float64 `json:"contingency"`
}

type Location struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// MaintenanceCheck is a recurring inspection on one airframe. The due
// point is derived from IntervalHours and LastPerformedHours, never stored.
type MaintenanceCheck struct {
	ID                 int64   `json:"id"`
	Registration       string  `json:"registration"`
	Name               string  `json:"name"`
	IntervalHours      float64 `json:"interval_hours"`
	LastPerformedHours float64 `json:"last_performed_hours"`
}

// VoyageReport is one pilot-logbook line for a completed flight.
type VoyageReport struct {
	ID         int64   `json:"id"`
	FlightID   int64   `json:"flight_id"`
	Date       string  `json:"date"`
	PIC        string  `json:"pic"`
	SIC        string  `json:"sic,omitempty"`
	BlockOff   string  `json:"block_off"`
	BlockOn    string  `json:"block_on"`
	FlightTime float64 `json:"flight_time"`
	Landings   int     `json:"landings"`
	Remarks    string  `json:"remarks,omitempty"`
}

// TrainingRecord tracks a completed course and its expiry for one crew
// member. Dates are ISO calendar dates; ExpiresOn may be empty for
// non-expiring courses.
type TrainingRecord struct {
	ID          int64  `json:"id"`
	CrewCode    string `json:"crew_code"`
	Course      string `json:"course"`
	CompletedOn string `json:"completed_on"`
	ExpiresOn   string `json:"expires_on,omitempty"`
}

// DutyDay is one rolled-up ledger row from crew_duty_daily.
type DutyDay struct {
	CrewCode string  `json:"crew_code"`
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Flights  int     `json:"flights"`
}
