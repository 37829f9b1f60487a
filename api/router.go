package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/skybridgeair/flightops/config"
	"github.com/skybridgeair/flightops/rollup"
)

type DutyLedger interface {
	GetStats() rollup.Stats
}

// NewRouter creates and configures a new router with all API endpoints
func NewRouter(cfg *config.Config, ledger DutyLedger) *mux.Router {
	r := mux.NewRouter()

	// API key management endpoints, guarded by the master key instead of
	// the rate limiter
	r.HandleFunc("/api/keys", CreateAPIKey).Methods("POST")
	r.HandleFunc("/api/keys", ListAPIKeys).Methods("GET")
	r.HandleFunc("/api/keys", DeleteAPIKey).Methods("DELETE")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(RateLimit)

	// Flight schedule
	api.HandleFunc("/flights", ListFlights).Methods("GET")
	api.HandleFunc("/flights", CreateFlight).Methods("POST")
	api.HandleFunc("/flights/{id}", GetFlightHandler).Methods("GET")
	api.HandleFunc("/flights/{id}", UpdateFlight).Methods("PUT")
	api.HandleFunc("/flights/{id}/status", UpdateFlightStatus).Methods("PUT")

	// Crew roster and duty times
	api.HandleFunc("/crew", ListCrew).Methods("GET")
	api.HandleFunc("/crew", CreateCrewMember).Methods("POST")
	api.HandleFunc("/crew/{code}", GetCrewMember).Methods("GET")
	api.HandleFunc("/crew/{code}", UpdateCrewMember).Methods("PUT")
	api.HandleFunc("/crew/{code}/duty", GetCrewDuty).Methods("GET")
	api.HandleFunc("/crew/{code}/duty/history", GetCrewDutyHistory).Methods("GET")
	api.HandleFunc("/rollup/stats", GetRollupStats(ledger)).Methods("GET")

	// Fleet and maintenance
	api.HandleFunc("/aircraft", ListAircraft).Methods("GET")
	api.HandleFunc("/aircraft", CreateAircraft).Methods("POST")
	api.HandleFunc("/aircraft/{registration}", GetAircraft).Methods("GET")
	api.HandleFunc("/aircraft/{registration}", UpdateAircraft).Methods("PUT")
	api.HandleFunc("/aircraft/{registration}/maintenance", ListMaintenanceChecks).Methods("GET")
	api.HandleFunc("/aircraft/{registration}/maintenance", CreateMaintenanceCheck).Methods("POST")
	api.HandleFunc("/aircraft/{registration}/maintenance/status", GetMaintenanceStatus).Methods("GET")
	api.HandleFunc("/maintenance/{id}/signoff", SignOffMaintenanceCheck).Methods("PUT")

	// Route, location and customer databases
	api.HandleFunc("/routes", ListRoutes).Methods("GET")
	api.HandleFunc("/routes", CreateRoute).Methods("POST")
	api.HandleFunc("/routes/export", ExportRoutesCSV).Methods("GET")
	api.HandleFunc("/routes/import", ImportRoutesCSV).Methods("POST")
	api.HandleFunc("/routes/{code}", GetRoute).Methods("GET")
	api.HandleFunc("/routes/{code}", UpdateRoute).Methods("PUT")
	api.HandleFunc("/routes/{code}", DeleteRoute).Methods("DELETE")
	api.HandleFunc("/locations", ListLocations).Methods("GET")
	api.HandleFunc("/locations", CreateLocation).Methods("POST")
	api.HandleFunc("/locations/{code}", UpdateLocation).Methods("PUT")
	api.HandleFunc("/customers", ListCustomers).Methods("GET")
	api.HandleFunc("/customers", CreateCustomer).Methods("POST")
	api.HandleFunc("/customers/{id}", UpdateCustomer).Methods("PUT")

	// Dispatch paperwork
	api.HandleFunc("/dispatch/{flightID}", GetDispatch(cfg)).Methods("GET")
	api.HandleFunc("/dispatch/{flightID}", SaveDispatch).Methods("PUT")
	api.HandleFunc("/dispatch/{flightID}/release", ReleaseDispatch(cfg)).Methods("POST")

	// Voyage reporting
	api.HandleFunc("/voyage", featureGate(cfg.Features.VoyageReports, ListVoyageReports)).Methods("GET")
	api.HandleFunc("/voyage", featureGate(cfg.Features.VoyageReports, CreateVoyageReport)).Methods("POST")
	api.HandleFunc("/reports/voyage/{month}/export", featureGate(cfg.Features.VoyageReports, ExportVoyageMonth)).Methods("GET")

	// Training records
	api.HandleFunc("/training", featureGate(cfg.Features.TrainingModule, ListTrainingRecords)).Methods("GET")
	api.HandleFunc("/training", featureGate(cfg.Features.TrainingModule, CreateTrainingRecord)).Methods("POST")
	api.HandleFunc("/training/crew/{code}", featureGate(cfg.Features.TrainingModule, GetCrewTraining)).Methods("GET")

	return r
}

// featureGate hides an endpoint when its system-settings flag is off.
func featureGate(enabled bool, next http.HandlerFunc) http.HandlerFunc {
	if enabled {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Feature disabled", http.StatusNotFound)
	}
}
