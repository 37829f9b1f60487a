package api

import (
	"encoding/json"
	"net/http"
)

// GetRollupStats returns statistics about the duty ledger rollup job
func GetRollupStats(ledger DutyLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ledger.GetStats())
	}
}
