package main

import (
	"log"
	"net/http"

	"github.com/robfig/cron/v3"

	"github.com/skybridgeair/flightops/api"
	"github.com/skybridgeair/flightops/config"
	"github.com/skybridgeair/flightops/db"
	"github.com/skybridgeair/flightops/rollup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := db.InitDB(cfg.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Nightly duty-ledger rollup
	ledger := rollup.NewLedger()
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RollupSchedule, func() {
		if err := ledger.Run(); err != nil {
			log.Printf("Error running duty ledger rollup: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid rollup schedule %q: %v", cfg.RollupSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Catch up the ledger on startup
	if err := ledger.Run(); err != nil {
		log.Printf("Error running duty ledger rollup: %v", err)
	}

	router := api.NewRouter(cfg, ledger)

	log.Printf("Starting flight operations API server on %s", cfg.Server.Listen)
	if err := http.ListenAndServe(cfg.Server.Listen, router); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}
}
