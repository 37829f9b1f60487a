package db

import (
	"github.com/lib/pq"

	"github.com/skybridgeair/flightops/types"
)

const flightColumns = `
	id, flight_date::text, etd, origin, destination, registration,
	pic, sic, flight_time, COALESCE(customer_id, 0), status,
	created_at, updated_at`

func scanFlight(row interface{ Scan(...interface{}) error }) (types.Flight, error) {
	var f types.Flight
	err := row.Scan(
		&f.ID, &f.Date, &f.ETD, &f.Origin, &f.Destination, &f.Registration,
		&f.PIC, &f.SIC, &f.FlightTime, &f.CustomerID, &f.Status,
		&f.CreatedAt, &f.UpdatedAt,
	)
	return f, err
}

// GetFlight loads one flight by id.
func GetFlight(id int64) (types.Flight, error) {
	row := DB.QueryRow(`SELECT `+flightColumns+` FROM flights WHERE id = $1`, id)
	return scanFlight(row)
}

// FlightsForCrew returns every flight on which the crew member holds a
// seat, on or after sinceDate ("2006-01-02"). Used by the duty-period
// endpoints and the nightly ledger rollup.
func FlightsForCrew(crewCode, sinceDate string) ([]types.Flight, error) {
	rows, err := DB.Query(`
		SELECT `+flightColumns+`
		FROM flights
		WHERE (pic = $1 OR sic = $1) AND flight_date >= $2::date
		ORDER BY flight_date, etd
	`, crewCode, sinceDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flights []types.Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// FlightsOnDate returns all flights flown on one calendar date.
func FlightsOnDate(date string) ([]types.Flight, error) {
	rows, err := DB.Query(`
		SELECT `+flightColumns+`
		FROM flights
		WHERE flight_date = $1::date
		ORDER BY etd
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flights []types.Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// GetAircraftByRegistration loads one airframe, including its weight
// limits, for the dispatch and maintenance views.
func GetAircraftByRegistration(registration string) (types.Aircraft, error) {
	var a types.Aircraft
	err := DB.QueryRow(`
		SELECT id, registration, type, status,
		       max_takeoff_weight, max_landing_weight, max_zero_fuel_weight,
		       basic_empty_weight, current_hours
		FROM aircraft WHERE registration = $1
	`, registration).Scan(
		&a.ID, &a.Registration, &a.Type, &a.Status,
		&a.MaxTakeoffWeight, &a.MaxLandingWeight, &a.MaxZeroFuelWeight,
		&a.BasicEmptyWeight, &a.CurrentHours,
	)
	return a, err
}

// GetCrewMemberByCode resolves a roster code to the full crew record.
// A dangling code on a flight simply fails with sql.ErrNoRows; callers
// decide whether that is an error.
func GetCrewMemberByCode(code string) (types.CrewMember, error) {
	var c types.CrewMember
	err := DB.QueryRow(`
		SELECT id, code, name, role, COALESCE(approved_airports, '{}')
		FROM crew_members WHERE code = $1
	`, code).Scan(&c.ID, &c.Code, &c.Name, &c.Role, pq.Array(&c.ApprovedAirports))
	return c, err
}
