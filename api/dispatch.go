package api

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/skybridgeair/flightops/calc"
	"github.com/skybridgeair/flightops/config"
	"github.com/skybridgeair/flightops/db"
	"github.com/skybridgeair/flightops/services/metar"
	"github.com/skybridgeair/flightops/types"
)

var weatherClient = metar.NewClient()

// GetDispatch returns the full release package for a flight: the stored
// record (an empty draft if none exists yet) plus the weight sheet, fuel
// plan, ETA projection and weather briefing, all derived fresh on this
// read.
func GetDispatch(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flightID, err := strconv.ParseInt(mux.Vars(r)["flightID"], 10, 64)
		if err != nil {
			http.Error(w, "Invalid flight id", http.StatusBadRequest)
			return
		}

		flight, err := db.GetFlight(flightID)
		if err != nil {
			if err == sql.ErrNoRows {
				http.Error(w, "Flight not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		// A flight without an assigned airframe still gets a draft view;
		// the limit checks just have nothing to compare against.
		aircraft, err := db.GetAircraftByRegistration(flight.Registration)
		if err != nil && err != sql.ErrNoRows {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		record, err := loadDispatchRecord(flightID)
		if err != nil {
			if err != sql.ErrNoRows {
				http.Error(w, "Database error", http.StatusInternalServerError)
				return
			}
			record = types.DispatchRecord{
				FlightID:   flightID,
				Status:     types.DispatchDraft,
				Passengers: make([]types.Passenger, 0),
				Cargo:      make([]types.CargoItem, 0),
			}
		}

		view := buildDispatchView(cfg, flight, aircraft, record)
		if cfg.Features.WeatherBriefing {
			view.Weather = fetchBriefing(flight.Origin, flight.Destination)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(view)
	}
}

// SaveDispatch upserts the editable part of the record: load sheet,
// fuel figures and remarks. It never touches the release snapshot or
// status; a released record can be edited and re-released, which
// overwrites the snapshot on the next release.
func SaveDispatch(w http.ResponseWriter, r *http.Request) {
	flightID, err := strconv.ParseInt(mux.Vars(r)["flightID"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid flight id", http.StatusBadRequest)
		return
	}
	if _, err := db.GetFlight(flightID); err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Flight not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	var req struct {
		Passengers []types.Passenger `json:"passengers"`
		Cargo      []types.CargoItem `json:"cargo"`
		Fuel       types.FuelData    `json:"fuel"`
		Remarks    string            `json:"remarks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tx, err := db.DB.Begin()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	var dispatchID int64
	err = tx.QueryRow(`
		INSERT INTO dispatch_records (flight_id, fuel_taxi, fuel_trip,
			fuel_contingency, fuel_alternate, fuel_holding, fuel_total_fob,
			fuel_density, remarks, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (flight_id) DO UPDATE SET
			fuel_taxi = EXCLUDED.fuel_taxi,
			fuel_trip = EXCLUDED.fuel_trip,
			fuel_contingency = EXCLUDED.fuel_contingency,
			fuel_alternate = EXCLUDED.fuel_alternate,
			fuel_holding = EXCLUDED.fuel_holding,
			fuel_total_fob = EXCLUDED.fuel_total_fob,
			fuel_density = EXCLUDED.fuel_density,
			remarks = EXCLUDED.remarks,
			updated_at = NOW()
		RETURNING id
	`, flightID, req.Fuel.Taxi, req.Fuel.Trip,
		req.Fuel.Contingency, req.Fuel.Alternate, req.Fuel.Holding,
		req.Fuel.TotalFOB, req.Fuel.Density, req.Remarks).Scan(&dispatchID)
	if err != nil {
		http.Error(w, "Failed to save dispatch record", http.StatusInternalServerError)
		return
	}

	// Line items are replaced wholesale on every save.
	if _, err := tx.Exec(`DELETE FROM dispatch_passengers WHERE dispatch_id = $1`, dispatchID); err != nil {
		http.Error(w, "Failed to save passengers", http.StatusInternalServerError)
		return
	}
	for _, p := range req.Passengers {
		_, err := tx.Exec(`
			INSERT INTO dispatch_passengers (dispatch_id, name, weight,
				free_bag_weight, excess_bag_weight, infant)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, dispatchID, p.Name, p.Weight, p.FreeBagWeight, p.ExcessBagWeight, p.Infant)
		if err != nil {
			http.Error(w, "Failed to save passengers", http.StatusInternalServerError)
			return
		}
	}

	if _, err := tx.Exec(`DELETE FROM dispatch_cargo WHERE dispatch_id = $1`, dispatchID); err != nil {
		http.Error(w, "Failed to save cargo", http.StatusInternalServerError)
		return
	}
	for _, c := range req.Cargo {
		_, err := tx.Exec(`
			INSERT INTO dispatch_cargo (dispatch_id, description, weight, dangerous)
			VALUES ($1, $2, $3, $4)
		`, dispatchID, c.Description, c.Weight, c.Dangerous)
		if err != nil {
			http.Error(w, "Failed to save cargo", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	record, err := loadDispatchRecord(flightID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// ReleaseDispatch moves a draft to Released, snapshotting the computed
// weights on the record. A grounded aircraft blocks release outright
// when fleet safety checks are enabled; an overweight sheet only needs
// the operator's explicit confirmation.
func ReleaseDispatch(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flightID, err := strconv.ParseInt(mux.Vars(r)["flightID"], 10, 64)
		if err != nil {
			http.Error(w, "Invalid flight id", http.StatusBadRequest)
			return
		}

		var req struct {
			ConfirmOverweight bool `json:"confirm_overweight"`
		}
		if r.Body != nil {
			// An empty body means no confirmation.
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		flight, err := db.GetFlight(flightID)
		if err != nil {
			if err == sql.ErrNoRows {
				http.Error(w, "Flight not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		aircraft, err := db.GetAircraftByRegistration(flight.Registration)
		if err != nil {
			if err == sql.ErrNoRows {
				http.Error(w, "Flight has no assigned aircraft", http.StatusConflict)
				return
			}
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		if calc.ReleaseBlocked(aircraft.Status, cfg.Features.FleetSafetyChecks) {
			http.Error(w, "Aircraft is grounded ("+string(aircraft.Status)+"); release blocked", http.StatusConflict)
			return
		}

		record, err := loadDispatchRecord(flightID)
		if err != nil {
			if err == sql.ErrNoRows {
				http.Error(w, "No dispatch record for flight", http.StatusNotFound)
				return
			}
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		sheet := calc.ComputeWeights(aircraft.BasicEmptyWeight, record.Passengers, record.Cargo, record.Fuel)
		if calc.Overweight(sheet, aircraft) && !req.ConfirmOverweight {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":        "Computed weights exceed aircraft limits; resend with confirm_overweight to release anyway",
				"weight_sheet": sheet,
				"limits": map[string]float64{
					"max_takeoff_weight":   aircraft.MaxTakeoffWeight,
					"max_landing_weight":   aircraft.MaxLandingWeight,
					"max_zero_fuel_weight": aircraft.MaxZeroFuelWeight,
				},
			})
			return
		}

		var releasedAt time.Time
		err = db.DB.QueryRow(`
			UPDATE dispatch_records
			SET status = $1, payload = $2, zero_fuel_weight = $3,
			    ramp_weight = $4, takeoff_weight = $5, landing_weight = $6,
			    released_at = NOW(), updated_at = NOW()
			WHERE flight_id = $7
			RETURNING released_at
		`, types.DispatchReleased, sheet.Payload, sheet.ZeroFuelWeight,
			sheet.RampWeight, sheet.TakeoffWeight, sheet.LandingWeight,
			flightID).Scan(&releasedAt)
		if err != nil {
			http.Error(w, "Failed to release dispatch", http.StatusInternalServerError)
			return
		}

		record.ReleasedAt = &releasedAt
		record.Status = types.DispatchReleased
		record.Payload = sheet.Payload
		record.ZeroFuelWeight = sheet.ZeroFuelWeight
		record.RampWeight = sheet.RampWeight
		record.TakeoffWeight = sheet.TakeoffWeight
		record.LandingWeight = sheet.LandingWeight

		log.Printf("Released dispatch for flight %d (%s %s-%s), takeoff weight %.0f lb",
			flight.ID, flight.Registration, flight.Origin, flight.Destination, sheet.TakeoffWeight)

		view := buildDispatchView(cfg, flight, aircraft, record)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(view)
	}
}

func buildDispatchView(cfg *config.Config, flight types.Flight, aircraft types.Aircraft, record types.DispatchRecord) DispatchView {
	sheet := calc.ComputeWeights(aircraft.BasicEmptyWeight, record.Passengers, record.Cargo, record.Fuel)

	density := record.Fuel.Density
	if density <= 0 {
		density = cfg.Dispatch.FuelDensity
	}

	return DispatchView{
		Flight:         flight,
		Aircraft:       aircraft,
		Record:         record,
		Sheet:          sheet,
		RequiredFuel:   calc.RequiredFuel(record.Fuel),
		GallonsOnBoard: calc.Gallons(record.Fuel.TotalFOB, density),
		Overweight:     calc.Overweight(sheet, aircraft),
		ReleaseBlocked: calc.ReleaseBlocked(aircraft.Status, cfg.Features.FleetSafetyChecks),
		ETA:            calc.ProjectETA(flight.ETD, int(flight.FlightTime*60)),
	}
}

// fetchBriefing pulls METARs for both ends of the leg. Weather is
// best-effort; a fetch failure is logged and the field left empty.
func fetchBriefing(origin, destination string) *WeatherBriefing {
	briefing := &WeatherBriefing{}
	if report, err := weatherClient.FetchStation(origin); err == nil {
		briefing.Origin = report
	} else {
		log.Printf("Weather briefing unavailable for %s: %v", origin, err)
	}
	if report, err := weatherClient.FetchStation(destination); err == nil {
		briefing.Destination = report
	} else {
		log.Printf("Weather briefing unavailable for %s: %v", destination, err)
	}
	if briefing.Origin == nil && briefing.Destination == nil {
		return nil
	}
	return briefing
}

func loadDispatchRecord(flightID int64) (types.DispatchRecord, error) {
	var rec types.DispatchRecord
	var releasedAt sql.NullTime
	err := db.DB.QueryRow(`
		SELECT id, flight_id, status,
		       fuel_taxi, fuel_trip, fuel_contingency, fuel_alternate,
		       fuel_holding, fuel_total_fob, fuel_density,
		       payload, zero_fuel_weight, ramp_weight, takeoff_weight,
		       landing_weight, COALESCE(remarks, ''), released_at, updated_at
		FROM dispatch_records
		WHERE flight_id = $1
	`, flightID).Scan(
		&rec.ID, &rec.FlightID, &rec.Status,
		&rec.Fuel.Taxi, &rec.Fuel.Trip, &rec.Fuel.Contingency, &rec.Fuel.Alternate,
		&rec.Fuel.Holding, &rec.Fuel.TotalFOB, &rec.Fuel.Density,
		&rec.Payload, &rec.ZeroFuelWeight, &rec.RampWeight, &rec.TakeoffWeight,
		&rec.LandingWeight, &rec.Remarks, &releasedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return rec, err
	}
	if releasedAt.Valid {
		rec.ReleasedAt = &releasedAt.Time
	}

	rec.Passengers = make([]types.Passenger, 0)
	rows, err := db.DB.Query(`
		SELECT id, name, weight, free_bag_weight, excess_bag_weight, infant
		FROM dispatch_passengers WHERE dispatch_id = $1 ORDER BY id
	`, rec.ID)
	if err != nil {
		return rec, err
	}
	defer rows.Close()
	for rows.Next() {
		var p types.Passenger
		if err := rows.Scan(&p.ID, &p.Name, &p.Weight, &p.FreeBagWeight, &p.ExcessBagWeight, &p.Infant); err != nil {
			return rec, err
		}
		rec.Passengers = append(rec.Passengers, p)
	}

	rec.Cargo = make([]types.CargoItem, 0)
	cargoRows, err := db.DB.Query(`
		SELECT id, description, weight, dangerous
		FROM dispatch_cargo WHERE dispatch_id = $1 ORDER BY id
	`, rec.ID)
	if err != nil {
		return rec, err
	}
	defer cargoRows.Close()
	for cargoRows.Next() {
		var c types.CargoItem
		if err := cargoRows.Scan(&c.ID, &c.Description, &c.Weight, &c.Dangerous); err != nil {
			return rec, err
		}
		rec.Cargo = append(rec.Cargo, c)
	}

	return rec, nil
}
