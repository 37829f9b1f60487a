package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/skybridgeair/flightops/calc"
	"github.com/skybridgeair/flightops/db"
	"github.com/skybridgeair/flightops/types"
)

var validAircraftStatuses = map[types.AircraftStatus]bool{
	types.AircraftActive:      true,
	types.AircraftMaintenance: true,
	types.AircraftAOG:         true,
}

func ListAircraft(w http.ResponseWriter, r *http.Request) {
	rows, err := db.DB.Query(`
		SELECT id, registration, type, status,
		       max_takeoff_weight, max_landing_weight, max_zero_fuel_weight,
		       basic_empty_weight, current_hours
		FROM aircraft
		ORDER BY registration
	`)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	fleet := make([]types.Aircraft, 0)
	for rows.Next() {
		var a types.Aircraft
		err := rows.Scan(
			&a.ID, &a.Registration, &a.Type, &a.Status,
			&a.MaxTakeoffWeight, &a.MaxLandingWeight, &a.MaxZeroFuelWeight,
			&a.BasicEmptyWeight, &a.CurrentHours,
		)
		if err != nil {
			continue
		}
		fleet = append(fleet, a)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(fleet)
}

// CreateAircraft registers an airframe. The weight limits must be
// positive; beyond that, figures are stored as entered.
func CreateAircraft(w http.ResponseWriter, r *http.Request) {
	var req types.Aircraft
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Registration = strings.ToUpper(strings.TrimSpace(req.Registration))
	if req.Registration == "" || req.Type == "" {
		http.Error(w, "registration and type are required", http.StatusBadRequest)
		return
	}
	if req.MaxTakeoffWeight <= 0 || req.MaxLandingWeight <= 0 || req.MaxZeroFuelWeight <= 0 {
		http.Error(w, "Weight limits must be positive", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		req.Status = types.AircraftActive
	}
	if !validAircraftStatuses[req.Status] {
		http.Error(w, "Invalid aircraft status", http.StatusBadRequest)
		return
	}

	err := db.DB.QueryRow(`
		INSERT INTO aircraft (registration, type, status,
			max_takeoff_weight, max_landing_weight, max_zero_fuel_weight,
			basic_empty_weight, current_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, req.Registration, req.Type, req.Status,
		req.MaxTakeoffWeight, req.MaxLandingWeight, req.MaxZeroFuelWeight,
		req.BasicEmptyWeight, req.CurrentHours,
	).Scan(&req.ID)
	if err != nil {
		http.Error(w, "Failed to create aircraft", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(req)
}

func GetAircraft(w http.ResponseWriter, r *http.Request) {
	registration := strings.ToUpper(mux.Vars(r)["registration"])

	aircraft, err := db.GetAircraftByRegistration(registration)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Aircraft not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(aircraft)
}

func UpdateAircraft(w http.ResponseWriter, r *http.Request) {
	registration := strings.ToUpper(mux.Vars(r)["registration"])

	var req types.Aircraft
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status != "" && !validAircraftStatuses[req.Status] {
		http.Error(w, "Invalid aircraft status", http.StatusBadRequest)
		return
	}

	result, err := db.DB.Exec(`
		UPDATE aircraft
		SET type = $1, status = $2,
		    max_takeoff_weight = $3, max_landing_weight = $4,
		    max_zero_fuel_weight = $5, basic_empty_weight = $6,
		    current_hours = $7
		WHERE registration = $8
	`, req.Type, req.Status,
		req.MaxTakeoffWeight, req.MaxLandingWeight,
		req.MaxZeroFuelWeight, req.BasicEmptyWeight,
		req.CurrentHours, registration)
	if err != nil {
		http.Error(w, "Failed to update aircraft", http.StatusInternalServerError)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		http.Error(w, "Aircraft not found", http.StatusNotFound)
		return
	}

	aircraft, err := db.GetAircraftByRegistration(registration)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(aircraft)
}

func ListMaintenanceChecks(w http.ResponseWriter, r *http.Request) {
	registration := strings.ToUpper(mux.Vars(r)["registration"])

	checks, err := loadMaintenanceChecks(registration)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(checks)
}

func CreateMaintenanceCheck(w http.ResponseWriter, r *http.Request) {
	registration := strings.ToUpper(mux.Vars(r)["registration"])

	var req types.MaintenanceCheck
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.IntervalHours <= 0 {
		http.Error(w, "A name and a positive interval are required", http.StatusBadRequest)
		return
	}
	req.Registration = registration

	err := db.DB.QueryRow(`
		INSERT INTO maintenance_checks (registration, name, interval_hours, last_performed_hours)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, req.Registration, req.Name, req.IntervalHours, req.LastPerformedHours).Scan(&req.ID)
	if err != nil {
		http.Error(w, "Failed to create maintenance check", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(req)
}

// GetMaintenanceStatus derives the traffic-light state of every check on
// an airframe from its current hours. Nothing is stored; the same call
// after an hours update reflects the new position immediately.
func GetMaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	registration := strings.ToUpper(mux.Vars(r)["registration"])

	aircraft, err := db.GetAircraftByRegistration(registration)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Aircraft not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	checks, err := loadMaintenanceChecks(registration)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	response := MaintenanceStatusResponse{
		Registration: aircraft.Registration,
		CurrentHours: aircraft.CurrentHours,
		Checks:       make([]CheckStatusEntry, 0, len(checks)),
	}
	for _, check := range checks {
		response.Checks = append(response.Checks, CheckStatusEntry{
			Check:  check,
			Status: calc.CheckStatus(aircraft.CurrentHours, check.IntervalHours, check.LastPerformedHours),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// SignOffMaintenanceCheck records that a check was performed at the
// given airframe hours, restarting its interval.
func SignOffMaintenanceCheck(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid check id", http.StatusBadRequest)
		return
	}

	var req struct {
		PerformedAtHours float64 `json:"performed_at_hours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := db.DB.Exec(`
		UPDATE maintenance_checks SET last_performed_hours = $1 WHERE id = $2
	`, req.PerformedAtHours, id)
	if err != nil {
		http.Error(w, "Failed to sign off check", http.StatusInternalServerError)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		http.Error(w, "Maintenance check not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func loadMaintenanceChecks(registration string) ([]types.MaintenanceCheck, error) {
	rows, err := db.DB.Query(`
		SELECT id, registration, name, interval_hours, last_performed_hours
		FROM maintenance_checks
		WHERE registration = $1
		ORDER BY name
	`, registration)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checks := make([]types.MaintenanceCheck, 0)
	for rows.Next() {
		var c types.MaintenanceCheck
		if err := rows.Scan(&c.ID, &c.Registration, &c.Name, &c.IntervalHours, &c.LastPerformedHours); err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}
