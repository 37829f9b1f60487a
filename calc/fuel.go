package calc

import "github.com/skybridgeair/flightops/types"

// DefaultFuelDensity is pounds per US gallon of Jet A, used when no
// density is entered on the dispatch form.
const DefaultFuelDensity = 6.7

// RequiredFuel is the planning minimum: the sum of the five fuel
// categories. It is displayed against the entered total on board; the
// two are never reconciled.
func RequiredFuel(fuel types.FuelData) float64 {
	return fuel.Taxi + fuel.Trip + fuel.Contingency + fuel.Alternate + fuel.Holding
}

// Gallons converts a fuel weight in pounds to US gallons. A zero or
// negative density falls back to DefaultFuelDensity.
func Gallons(weight, density float64) float64 {
	if density <= 0 {
		density = DefaultFuelDensity
	}
	return weight / density
}
