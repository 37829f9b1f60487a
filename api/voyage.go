package api

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gorilla/mux"

	"github.com/skybridgeair/flightops/calc"
	"github.com/skybridgeair/flightops/db"
	"github.com/skybridgeair/flightops/reports"
	"github.com/skybridgeair/flightops/types"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

func ListVoyageReports(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sqlQuery := `
		SELECT id, flight_id, report_date::text, pic, sic, block_off, block_on,
		       flight_time, landings, COALESCE(remarks, '')
		FROM voyage_reports
		WHERE 1=1
	`
	params := make([]interface{}, 0)
	paramCount := 1

	if month := query.Get("month"); month != "" {
		if !monthPattern.MatchString(month) {
			http.Error(w, "Invalid month, expected YYYY-MM", http.StatusBadRequest)
			return
		}
		sqlQuery += fmt.Sprintf(" AND to_char(report_date, 'YYYY-MM') = $%d", paramCount)
		params = append(params, month)
		paramCount++
	}
	if pic := query.Get("pic"); pic != "" {
		sqlQuery += fmt.Sprintf(" AND pic = $%d", paramCount)
		params = append(params, strings.ToUpper(pic))
	}
	sqlQuery += " ORDER BY report_date, id"

	rows, err := db.DB.Query(sqlQuery, params...)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	entries := make([]types.VoyageReport, 0)
	for rows.Next() {
		var v types.VoyageReport
		err := rows.Scan(&v.ID, &v.FlightID, &v.Date, &v.PIC, &v.SIC,
			&v.BlockOff, &v.BlockOn, &v.FlightTime, &v.Landings, &v.Remarks)
		if err != nil {
			continue
		}
		entries = append(entries, v)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// CreateVoyageReport files a logbook line for a flown flight. When the
// flight time is omitted it is derived from the block times, midnight
// rollover included.
func CreateVoyageReport(w http.ResponseWriter, r *http.Request) {
	var req types.VoyageReport
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	flight, err := db.GetFlight(req.FlightID)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Flight not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	if req.Date == "" {
		req.Date = flight.Date
	}
	if req.PIC == "" {
		req.PIC = flight.PIC
	}
	if req.SIC == "" {
		req.SIC = flight.SIC
	}
	if req.FlightTime == 0 {
		req.FlightTime = calc.DurationBetween(req.BlockOff, req.BlockOn)
	}
	if req.Landings == 0 {
		req.Landings = 1
	}

	err = db.DB.QueryRow(`
		INSERT INTO voyage_reports (flight_id, report_date, pic, sic,
			block_off, block_on, flight_time, landings, remarks)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, req.FlightID, req.Date, req.PIC, req.SIC,
		req.BlockOff, req.BlockOn, req.FlightTime, req.Landings, req.Remarks).Scan(&req.ID)
	if err != nil {
		http.Error(w, "Failed to create voyage report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(req)
}

// ExportVoyageMonth streams the month's logbook as an Excel workbook.
func ExportVoyageMonth(w http.ResponseWriter, r *http.Request) {
	month := mux.Vars(r)["month"]
	if !monthPattern.MatchString(month) {
		http.Error(w, "Invalid month, expected YYYY-MM", http.StatusBadRequest)
		return
	}

	rows, err := db.DB.Query(`
		SELECT id, flight_id, report_date::text, pic, sic, block_off, block_on,
		       flight_time, landings, COALESCE(remarks, '')
		FROM voyage_reports
		WHERE to_char(report_date, 'YYYY-MM') = $1
		ORDER BY report_date, id
	`, month)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	entries := make([]types.VoyageReport, 0)
	for rows.Next() {
		var v types.VoyageReport
		err := rows.Scan(&v.ID, &v.FlightID, &v.Date, &v.PIC, &v.SIC,
			&v.BlockOff, &v.BlockOn, &v.FlightTime, &v.Landings, &v.Remarks)
		if err != nil {
			continue
		}
		entries = append(entries, v)
	}

	workbook, err := reports.VoyageWorkbook(month, entries)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to build workbook: %v", err), http.StatusInternalServerError)
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="voyage-%s.xlsx"`, month))
	if err := workbook.Write(w); err != nil {
		http.Error(w, "Failed to write workbook", http.StatusInternalServerError)
	}
}
