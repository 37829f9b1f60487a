package types

import "time"

type DispatchStatus string

const (
	DispatchDraft    DispatchStatus = "Draft"
	DispatchReleased DispatchStatus = "Released"
	DispatchFiled    DispatchStatus = "Filed"
)

// Passenger is a load-sheet line item. Weights are pounds.
type Passenger struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Weight          float64 `json:"weight"`
	FreeBagWeight   float64 `json:"free_bag_weight"`
	ExcessBagWeight float64 `json:"excess_bag_weight"`
	Infant          bool    `json:"infant"`
}

type CargoItem struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	Dangerous   bool    `json:"dangerous"`
}

// FuelData holds the planned fuel categories plus the operator-entered
// total on board. TotalFOB is authoritative for weight computation; the
// category sum is the planning minimum and the two are displayed side by
// side without reconciliation.
type FuelData struct {
	Taxi        float64 `json:"taxi"`
	Trip        float64 `json:"trip"`
	Contingency float64 `json:"contingency"`
	Alternate   float64 `json:"alternate"`
	Holding     float64 `json:"holding"`
	TotalFOB    float64 `json:"total_fob"`
	Density     float64 `json:"density,omitempty"`
}

// DispatchRecord is the release paperwork for one flight. The weight
// fields are a snapshot taken when the record is released; editing and
// re-saving a released record overwrites the snapshot.
type DispatchRecord struct {
	ID         int64          `json:"id"`
	FlightID   int64          `json:"flight_id"`
	Status     DispatchStatus `json:"status"`
	Passengers []Passenger    `json:"passengers"`
	Cargo      []CargoItem    `json:"cargo"`
	Fuel       FuelData       `json:"fuel"`

	Payload        float64 `json:"payload"`
	ZeroFuelWeight float64 `json:"zero_fuel_weight"`
	RampWeight     float64 `json:"ramp_weight"`
	TakeoffWeight  float64 `json:"takeoff_weight"`
	LandingWeight  float64 `json:"landing_weight"`

	Remarks    string     `json:"remarks,omitempty"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
