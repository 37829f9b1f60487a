package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/skybridgeair/flightops/calc"
	"github.com/skybridgeair/flightops/db"
	"github.com/skybridgeair/flightops/types"
)

func ListTrainingRecords(w http.ResponseWriter, r *http.Request) {
	rows, err := db.DB.Query(`
		SELECT id, crew_code, course, completed_on::text,
		       COALESCE(expires_on::text, '')
		FROM training_records
		ORDER BY crew_code, course
	`)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	records := make([]types.TrainingRecord, 0)
	for rows.Next() {
		var t types.TrainingRecord
		if err := rows.Scan(&t.ID, &t.CrewCode, &t.Course, &t.CompletedOn, &t.ExpiresOn); err != nil {
			continue
		}
		records = append(records, t)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func CreateTrainingRecord(w http.ResponseWriter, r *http.Request) {
	var req types.TrainingRecord
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.CrewCode = strings.ToUpper(strings.TrimSpace(req.CrewCode))
	if req.CrewCode == "" || req.Course == "" || req.CompletedOn == "" {
		http.Error(w, "crew_code, course and completed_on are required", http.StatusBadRequest)
		return
	}

	var expires interface{}
	if req.ExpiresOn != "" {
		expires = req.ExpiresOn
	}
	err := db.DB.QueryRow(`
		INSERT INTO training_records (crew_code, course, completed_on, expires_on)
		VALUES ($1, $2, $3::date, $4::date)
		RETURNING id
	`, req.CrewCode, req.Course, req.CompletedOn, expires).Scan(&req.ID)
	if err != nil {
		http.Error(w, "Failed to create training record", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(req)
}

// GetCrewTraining returns one crew member's records with a derived
// expiry traffic light. Courses without an expiry date always read Good.
func GetCrewTraining(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])

	rows, err := db.DB.Query(`
		SELECT id, crew_code, course, completed_on::text,
		       COALESCE(expires_on::text, '')
		FROM training_records
		WHERE crew_code = $1
		ORDER BY course
	`, code)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	response := CrewTrainingResponse{CrewCode: code, Items: make([]TrainingStatusEntry, 0)}
	for rows.Next() {
		var rec types.TrainingRecord
		if err := rows.Scan(&rec.ID, &rec.CrewCode, &rec.Course, &rec.CompletedOn, &rec.ExpiresOn); err != nil {
			continue
		}

		entry := TrainingStatusEntry{Record: rec, Status: calc.StatusGood}
		if rec.ExpiresOn != "" {
			if expiry, err := time.ParseInLocation("2006-01-02", rec.ExpiresOn, time.UTC); err == nil {
				entry.DaysUntilExpiry = int(expiry.Sub(today).Hours() / 24)
				entry.Status = calc.TrainingStatus(entry.DaysUntilExpiry)
			}
		}
		response.Items = append(response.Items, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
