package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/skybridgeair/flightops/db"
	"github.com/skybridgeair/flightops/reports"
	"github.com/skybridgeair/flightops/types"
)

func ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := loadRoutes("")
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(routes)
}

func GetRoute(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])

	routes, err := loadRoutes(code)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if len(routes) == 0 {
		http.Error(w, "Route not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(routes[0])
}

func CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req types.Route
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.Code == "" || req.From == "" || req.To == "" {
		http.Error(w, "code, from and to are required", http.StatusBadRequest)
		return
	}

	if err := upsertRoute(&req); err != nil {
		http.Error(w, "Failed to create route", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(req)
}

func UpdateRoute(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])

	var req types.Route
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Code = code

	if err := upsertRoute(&req); err != nil {
		http.Error(w, "Failed to update route", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

func DeleteRoute(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])

	result, err := db.DB.Exec(`DELETE FROM routes WHERE code = $1`, code)
	if err != nil {
		http.Error(w, "Failed to delete route", http.StatusInternalServerError)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		http.Error(w, "Route not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportRoutesCSV streams the whole route database in the interchange
// format used for spreadsheet round trips.
func ExportRoutesCSV(w http.ResponseWriter, r *http.Request) {
	routes, err := loadRoutes("")
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	data, err := reports.RoutesToCSV(routes)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to build CSV: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="routes.csv"`)
	w.Write(data)
}

// ImportRoutesCSV upserts routes from an uploaded CSV. Existing routes
// with matching codes are replaced, including their per-type times.
func ImportRoutesCSV(w http.ResponseWriter, r *http.Request) {
	routes, err := reports.RoutesFromCSV(r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid CSV: %v", err), http.StatusBadRequest)
		return
	}

	imported := 0
	for i := range routes {
		if err := upsertRoute(&routes[i]); err != nil {
			http.Error(w, fmt.Sprintf("Failed to import route %s: %v", routes[i].Code, err), http.StatusInternalServerError)
			return
		}
		imported++
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"imported": imported})
}

func upsertRoute(route *types.Route) error {
	tx, err := db.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO routes (code, origin, destination, distance_nm)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO UPDATE SET
			origin = EXCLUDED.origin,
			destination = EXCLUDED.destination,
			distance_nm = EXCLUDED.distance_nm
		RETURNING id
	`, route.Code, route.From, route.To, route.DistanceNM).Scan(&route.ID)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM route_times WHERE route_id = $1`, route.ID); err != nil {
		return err
	}
	for _, rt := range route.Times {
		_, err := tx.Exec(`
			INSERT INTO route_times (route_id, aircraft_type, flight_time, buffer_time, contingency_time)
			VALUES ($1, $2, $3, $4, $5)
		`, route.ID, rt.AircraftType, rt.FlightTime, rt.Buffer, rt.Contingency)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func loadRoutes(code string) ([]types.Route, error) {
	query := `
		SELECT id, code, origin, destination, distance_nm
		FROM routes
	`
	params := make([]interface{}, 0)
	if code != "" {
		query += " WHERE code = $1"
		params = append(params, code)
	}
	query += " ORDER BY code"

	rows, err := db.DB.Query(query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]types.Route, 0)
	byID := make(map[int64]int)
	for rows.Next() {
		var route types.Route
		if err := rows.Scan(&route.ID, &route.Code, &route.From, &route.To, &route.DistanceNM); err != nil {
			return nil, err
		}
		byID[route.ID] = len(routes)
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return routes, nil
	}

	timeRows, err := db.DB.Query(`
		SELECT route_id, aircraft_type, flight_time, buffer_time, contingency_time
		FROM route_times
		ORDER BY aircraft_type
	`)
	if err != nil {
		return nil, err
	}
	defer timeRows.Close()

	for timeRows.Next() {
		var routeID int64
		var rt types.RouteTime
		if err := timeRows.Scan(&routeID, &rt.AircraftType, &rt.FlightTime, &rt.Buffer, &rt.Contingency); err != nil {
			return nil, err
		}
		if idx, ok := byID[routeID]; ok {
			routes[idx].Times = append(routes[idx].Times, rt)
		}
	}
	return routes, timeRows.Err()
}
