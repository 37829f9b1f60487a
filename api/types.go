package api

import (
	"github.com/skybridgeair/flightops/calc"
	"github.com/skybridgeair/flightops/services/metar"
	"github.com/skybridgeair/flightops/types"
)

type FlightListResponse struct {
	Flights []types.Flight `json:"flights"`
	Total   int            `json:"total"`
}

// DutyResponse is the duty-period view for one crew member: decimal
// totals plus the same figures formatted H:MM for display.
type DutyResponse struct {
	CrewCode      string         `json:"crew_code"`
	Name          string         `json:"name,omitempty"`
	ReferenceDate string         `json:"reference_date"`
	Totals        calc.FDPTotals `json:"totals"`
	Display       DutyDisplay    `json:"display"`
}

type DutyDisplay struct {
	Daily   string `json:"daily"`
	Weekly  string `json:"weekly"`
	Monthly string `json:"monthly"`
}

type DutyHistoryResponse struct {
	CrewCode   string          `json:"crew_code"`
	Days       []types.DutyDay `json:"days"`
	TotalHours float64         `json:"total_hours"`
}

// CheckStatusEntry pairs a stored maintenance check with its derived
// position against the airframe's current hours.
type CheckStatusEntry struct {
	Check  types.MaintenanceCheck `json:"check"`
	Status calc.MaintenanceStatus `json:"status"`
}

type MaintenanceStatusResponse struct {
	Registration string             `json:"registration"`
	CurrentHours float64            `json:"current_hours"`
	Checks       []CheckStatusEntry `json:"checks"`
}

// DispatchView is the full release package for one flight: the stored
// record plus every derived figure the dispatch form displays. The
// weight sheet is recomputed on every read; the snapshot inside Record
// is only written at release.
type DispatchView struct {
	Flight   types.Flight         `json:"flight"`
	Aircraft types.Aircraft       `json:"aircraft"`
	Record   types.DispatchRecord `json:"record"`

	Sheet          calc.WeightSheet `json:"weight_sheet"`
	RequiredFuel   float64          `json:"required_fuel"`
	GallonsOnBoard float64          `json:"gallons_on_board"`
	Overweight     bool             `json:"overweight"`
	ReleaseBlocked bool             `json:"release_blocked"`
	ETA            string           `json:"eta,omitempty"`

	Weather *WeatherBriefing `json:"weather,omitempty"`
}

type WeatherBriefing struct {
	Origin      *metar.Report `json:"origin,omitempty"`
	Destination *metar.Report `json:"destination,omitempty"`
}

type TrainingStatusEntry struct {
	Record          types.TrainingRecord `json:"record"`
	DaysUntilExpiry int                  `json:"days_until_expiry"`
	Status          string               `json:"status"`
}

type CrewTrainingResponse struct {
	CrewCode string                `json:"crew_code"`
	Items    []TrainingStatusEntry `json:"items"`
}
