package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/lib/pq"

	"github.com/skybridgeair/flightops/calc"
	"github.com/skybridgeair/flightops/db"
	"github.com/skybridgeair/flightops/types"
)

func ListCrew(w http.ResponseWriter, r *http.Request) {
	rows, err := db.DB.Query(`
		SELECT id, code, name, role, COALESCE(approved_airports, '{}')
		FROM crew_members
		ORDER BY code
	`)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	crew := make([]types.CrewMember, 0)
	for rows.Next() {
		var c types.CrewMember
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Role, pq.Array(&c.ApprovedAirports)); err != nil {
			continue
		}
		crew = append(crew, c)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(crew)
}

// CreateCrewMember adds a roster entry. The three-letter code is the
// stable identifier flights reference.
func CreateCrewMember(w http.ResponseWriter, r *http.Request) {
	var req types.CrewMember
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if len(req.Code) != 3 || req.Name == "" {
		http.Error(w, "A three-letter code and a name are required", http.StatusBadRequest)
		return
	}
	if req.Role == "" {
		req.Role = "Pilot"
	}

	err := db.DB.QueryRow(`
		INSERT INTO crew_members (code, name, role, approved_airports)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, req.Code, req.Name, req.Role, pq.Array(req.ApprovedAirports)).Scan(&req.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			http.Error(w, "Crew code already in use", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create crew member", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(req)
}

func GetCrewMember(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])

	member, err := db.GetCrewMemberByCode(code)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Crew member not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(member)
}

func UpdateCrewMember(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])

	var req types.CrewMember
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := db.DB.Exec(`
		UPDATE crew_members
		SET name = $1, role = $2, approved_airports = $3
		WHERE code = $4
	`, req.Name, req.Role, pq.Array(req.ApprovedAirports), code)
	if err != nil {
		http.Error(w, "Failed to update crew member", http.StatusInternalServerError)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		http.Error(w, "Crew member not found", http.StatusNotFound)
		return
	}

	member, err := db.GetCrewMemberByCode(code)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(member)
}

// GetCrewDuty computes the daily/weekly/monthly flight-time totals for
// one crew member at a reference date (today unless ?date= is given).
// Totals are recomputed from the flight list on every call.
func GetCrewDuty(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])

	member, err := db.GetCrewMemberByCode(code)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Crew member not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	ref := time.Now().UTC()
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.UTC)
		if err != nil {
			http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		ref = parsed
	}

	// Load from the earlier of the month start and the week window so
	// both sums see every flight they need.
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	weekStart := ref.AddDate(0, 0, -7)
	since := monthStart
	if weekStart.Before(since) {
		since = weekStart
	}

	flights, err := db.FlightsForCrew(code, since.Format("2006-01-02"))
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	totals := calc.ComputeFDP(flights, code, ref)
	response := DutyResponse{
		CrewCode:      code,
		Name:          member.Name,
		ReferenceDate: ref.Format("2006-01-02"),
		Totals:        totals,
		Display: DutyDisplay{
			Daily:   calc.DecimalToHm(totals.Daily),
			Weekly:  calc.DecimalToHm(totals.Weekly),
			Monthly: calc.DecimalToHm(totals.Monthly),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetCrewDutyHistory reads the nightly rollup ledger for the last 90
// days.
func GetCrewDutyHistory(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])

	rows, err := db.DB.Query(`
		SELECT crew_code, duty_date::text, hours, flights
		FROM crew_duty_daily
		WHERE crew_code = $1 AND duty_date > NOW() - INTERVAL '90 days'
		ORDER BY duty_date DESC
	`, code)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	response := DutyHistoryResponse{CrewCode: code, Days: make([]types.DutyDay, 0)}
	for rows.Next() {
		var d types.DutyDay
		if err := rows.Scan(&d.CrewCode, &d.Date, &d.Hours, &d.Flights); err != nil {
			continue
		}
		response.TotalHours += d.Hours
		response.Days = append(response.Days, d)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
