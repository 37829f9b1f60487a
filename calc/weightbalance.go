package calc

import "github.com/skybridgeair/flightops/types"

// WeightSheet is the computed weight breakdown for one dispatch. All
// figures are pounds.
type WeightSheet struct {
	Payload        float64 `json:"payload"`
	ZeroFuelWeight float64 `json:"zero_fuel_weight"`
	RampWeight     float64 `json:"ramp_weight"`
	TakeoffWeight  float64 `json:"takeoff_weight"`
	LandingWeight  float64 `json:"landing_weight"`
}

// ComputeWeights builds the weight sheet from the load and fuel figures.
// Fuel on board is the operator-entered total, not the category sum.
// Takeoff weight is ramp weight less the taxi allowance, and landing
// weight is takeoff weight less trip fuel. Inputs arrive pre-validated
// from the form layer; nothing is rejected here.
func ComputeWeights(emptyWeight float64, passengers []types.Passenger, cargo []types.CargoItem, fuel types.FuelData) WeightSheet {
	var payload float64
	for _, p := range passengers {
		payload += p.Weight + p.FreeBagWeight + p.ExcessBagWeight
	}
	for _, c := range cargo {
		payload += c.Weight
	}

	zfw := emptyWeight + payload
	ramp := zfw + fuel.TotalFOB
	takeoff := ramp - fuel.Taxi
	return WeightSheet{
		Payload:        payload,
		ZeroFuelWeight: zfw,
		RampWeight:     ramp,
		TakeoffWeight:  takeoff,
		LandingWeight:  takeoff - fuel.Trip,
	}
}

// Overweight reports whether any computed weight exceeds the aircraft's
// certified limit. The comparison is strictly greater-than: a sheet
// exactly at a limit passes. The result is advisory; it drives a
// confirmation step, never the arithmetic.
func Overweight(sheet WeightSheet, aircraft types.Aircraft) bool {
	return sheet.TakeoffWeight > aircraft.MaxTakeoffWeight ||
		sheet.LandingWeight > aircraft.MaxLandingWeight ||
		sheet.ZeroFuelWeight > aircraft.MaxZeroFuelWeight
}

// ReleaseBlocked reports whether dispatch release is barred outright for
// the aircraft, independent of weight. Only meaningful when fleet safety
// checks are switched on in system settings.
func ReleaseBlocked(status types.AircraftStatus, fleetSafetyChecks bool) bool {
	if !fleetSafetyChecks {
		return false
	}
	return status == types.AircraftMaintenance || status == types.AircraftAOG
}
