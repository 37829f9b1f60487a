package calc

import (
	"testing"

	"github.com/skybridgeair/flightops/types"
)

func TestComputeWeights(t *testing.T) {
	sheet := ComputeWeights(
		4900,
		[]types.Passenger{{Weight: 180, FreeBagWeight: 20}},
		nil,
		types.FuelData{TotalFOB: 800, Taxi: 30, Trip: 400},
	)

	if sheet.Payload != 200 {
		t.Errorf("payload = %v, want 200", sheet.Payload)
	}
	if sheet.ZeroFuelWeight != 5100 {
		t.Errorf("zero fuel weight = %v, want 5100", sheet.ZeroFuelWeight)
	}
	if sheet.RampWeight != 5900 {
		t.Errorf("ramp weight = %v, want 5900", sheet.RampWeight)
	}
	if sheet.TakeoffWeight != 5870 {
		t.Errorf("takeoff weight = %v, want 5870 (ramp less taxi)", sheet.TakeoffWeight)
	}
	if sheet.LandingWeight != 5470 {
		t.Errorf("landing weight = %v, want 5470 (takeoff less trip)", sheet.LandingWeight)
	}
}

func TestComputeWeightsCargoAndBags(t *testing.T) {
	sheet := ComputeWeights(
		3000,
		[]types.Passenger{
			{Weight: 170, FreeBagWeight: 15, ExcessBagWeight: 10},
			{Weight: 140, Infant: true},
		},
		[]types.CargoItem{{Weight: 55}, {Weight: 45}},
		types.FuelData{},
	)
	if sheet.Payload != 435 {
		t.Errorf("payload = %v, want 435", sheet.Payload)
	}
	if sheet.ZeroFuelWeight != 3435 {
		t.Errorf("zero fuel weight = %v, want 3435", sheet.ZeroFuelWeight)
	}
}

func TestOverweightBoundary(t *testing.T) {
	aircraft := types.Aircraft{
		MaxTakeoffWeight:  6000,
		MaxLandingWeight:  5800,
		MaxZeroFuelWeight: 5500,
	}

	tests := []struct {
		name  string
		sheet WeightSheet
		want  bool
	}{
		{"all under limits", WeightSheet{TakeoffWeight: 5900, LandingWeight: 5700, ZeroFuelWeight: 5400}, false},
		{"exactly at every limit", WeightSheet{TakeoffWeight: 6000, LandingWeight: 5800, ZeroFuelWeight: 5500}, false},
		{"one pound over MTOW", WeightSheet{TakeoffWeight: 6001, LandingWeight: 5700, ZeroFuelWeight: 5400}, true},
		{"over MLW only", WeightSheet{TakeoffWeight: 5900, LandingWeight: 5801, ZeroFuelWeight: 5400}, true},
		{"over MZFW only", WeightSheet{TakeoffWeight: 5900, LandingWeight: 5700, ZeroFuelWeight: 5501}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overweight(tt.sheet, aircraft); got != tt.want {
				t.Errorf("Overweight(%+v) = %v, want %v", tt.sheet, got, tt.want)
			}
		})
	}
}

func TestReleaseBlocked(t *testing.T) {
	tests := []struct {
		name    string
		status  types.AircraftStatus
		checks  bool
		blocked bool
	}{
		{"active aircraft", types.AircraftActive, true, false},
		{"maintenance with checks on", types.AircraftMaintenance, true, true},
		{"aog with checks on", types.AircraftAOG, true, true},
		{"aog with checks off", types.AircraftAOG, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReleaseBlocked(tt.status, tt.checks); got != tt.blocked {
				t.Errorf("ReleaseBlocked(%v, %v) = %v, want %v", tt.status, tt.checks, got, tt.blocked)
			}
		})
	}
}

func TestRequiredFuel(t *testing.T) {
	fuel := types.FuelData{Taxi: 30, Trip: 400, Contingency: 40, Alternate: 120, Holding: 90, TotalFOB: 800}
	if got := RequiredFuel(fuel); got != 680 {
		t.Errorf("RequiredFuel = %v, want 680", got)
	}
}

func TestGallons(t *testing.T) {
	if got := Gallons(670, 0); got != 100 {
		t.Errorf("Gallons with default density = %v, want 100", got)
	}
	if got := Gallons(804, 6.7); got != 120 {
		t.Errorf("Gallons(804, 6.7) = %v, want 120", got)
	}
}
