package api

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/skybridgeair/flightops/db"
	"github.com/skybridgeair/flightops/types"
)

var validFlightStatuses = map[types.FlightStatus]bool{
	types.FlightScheduled: true,
	types.FlightDelayed:   true,
	types.FlightOutbound:  true,
	types.FlightInbound:   true,
	types.FlightOnGround:  true,
	types.FlightCompleted: true,
	types.FlightCancelled: true,
}

// ListFlights returns the schedule, filterable by date, crew code,
// registration and status.
func ListFlights(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sqlQuery := `
		SELECT id, flight_date::text, etd, origin, destination, registration,
		       pic, sic, flight_time, COALESCE(customer_id, 0), status,
		       created_at, updated_at
		FROM flights
		WHERE 1=1
	`
	params := make([]interface{}, 0)
	paramCount := 1

	if date := query.Get("date"); date != "" {
		sqlQuery += fmt.Sprintf(" AND flight_date = $%d::date", paramCount)
		params = append(params, date)
		paramCount++
	}
	if crew := query.Get("crew"); crew != "" {
		sqlQuery += fmt.Sprintf(" AND (pic = $%d OR sic = $%d)", paramCount, paramCount)
		params = append(params, crew)
		paramCount++
	}
	if reg := query.Get("registration"); reg != "" {
		sqlQuery += fmt.Sprintf(" AND registration = $%d", paramCount)
		params = append(params, reg)
		paramCount++
	}
	if status := query.Get("status"); status != "" {
		sqlQuery += fmt.Sprintf(" AND status = $%d", paramCount)
		params = append(params, status)
	}
	sqlQuery += " ORDER BY flight_date DESC, etd"

	rows, err := db.DB.Query(sqlQuery, params...)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	response := FlightListResponse{Flights: make([]types.Flight, 0)}
	for rows.Next() {
		var f types.Flight
		err := rows.Scan(
			&f.ID, &f.Date, &f.ETD, &f.Origin, &f.Destination, &f.Registration,
			&f.PIC, &f.SIC, &f.FlightTime, &f.CustomerID, &f.Status,
			&f.CreatedAt, &f.UpdatedAt,
		)
		if err != nil {
			continue
		}
		response.Flights = append(response.Flights, f)
	}
	response.Total = len(response.Flights)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// CreateFlight adds a leg to the schedule.
func CreateFlight(w http.ResponseWriter, r *http.Request) {
	var req types.Flight
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Date == "" || req.Origin == "" || req.Destination == "" {
		http.Error(w, "date, origin and destination are required", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		req.Status = types.FlightScheduled
	}
	if !validFlightStatuses[req.Status] {
		http.Error(w, "Invalid flight status", http.StatusBadRequest)
		return
	}

	var customerID interface{}
	if req.CustomerID != 0 {
		customerID = req.CustomerID
	}
	err := db.DB.QueryRow(`
		INSERT INTO flights (flight_date, etd, origin, destination, registration,
			pic, sic, flight_time, customer_id, status)
		VALUES ($1::date, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, req.Date, req.ETD, req.Origin, req.Destination, req.Registration,
		req.PIC, req.SIC, req.FlightTime, customerID, req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		http.Error(w, "Failed to create flight", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(req)
}

func GetFlightHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid flight id", http.StatusBadRequest)
		return
	}

	flight, err := db.GetFlight(id)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Flight not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(flight)
}

// UpdateFlight replaces the planning fields of a flight.
func UpdateFlight(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid flight id", http.StatusBadRequest)
		return
	}

	var req types.Flight
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status != "" && !validFlightStatuses[req.Status] {
		http.Error(w, "Invalid flight status", http.StatusBadRequest)
		return
	}

	var customerID interface{}
	if req.CustomerID != 0 {
		customerID = req.CustomerID
	}
	result, err := db.DB.Exec(`
		UPDATE flights
		SET flight_date = $1::date, etd = $2, origin = $3, destination = $4,
		    registration = $5, pic = $6, sic = $7, flight_time = $8,
		    customer_id = $9, updated_at = NOW()
		WHERE id = $10
	`, req.Date, req.ETD, req.Origin, req.Destination,
		req.Registration, req.PIC, req.SIC, req.FlightTime, customerID, id)
	if err != nil {
		http.Error(w, "Failed to update flight", http.StatusInternalServerError)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		http.Error(w, "Flight not found", http.StatusNotFound)
		return
	}

	flight, err := db.GetFlight(id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(flight)
}

// UpdateFlightStatus moves a flight through its lifecycle.
func UpdateFlightStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid flight id", http.StatusBadRequest)
		return
	}

	var req struct {
		Status types.FlightStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !validFlightStatuses[req.Status] {
		http.Error(w, "Invalid flight status", http.StatusBadRequest)
		return
	}

	result, err := db.DB.Exec(`
		UPDATE flights SET status = $1, updated_at = NOW() WHERE id = $2
	`, req.Status, id)
	if err != nil {
		http.Error(w, "Failed to update status", http.StatusInternalServerError)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		http.Error(w, "Flight not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"id": id, "status": req.Status})
}
