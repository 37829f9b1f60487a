// Package rollup maintains the crew_duty_daily ledger: a nightly
// aggregation of completed flights into per-crew, per-day duty hours.
// The live duty endpoints compute from the flight list directly; the
// ledger exists for history queries over longer spans.
package rollup

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/skybridgeair/flightops/db"
)

// lookbackDays is how far back each run re-aggregates. Re-running over
// a window keeps the ledger right after late status changes.
const lookbackDays = 14

type Stats struct {
	LastRun      time.Time `json:"last_run"`
	RowsUpserted int64     `json:"rows_upserted"`
	TotalRuns    int64     `json:"total_runs"`
}

type Ledger struct {
	mu    sync.Mutex
	stats Stats
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Run re-aggregates the lookback window. Both seats accrue the full
// flight time, matching the duty-period computation.
func (l *Ledger) Run() error {
	result, err := db.DB.Exec(fmt.Sprintf(`
		INSERT INTO crew_duty_daily (crew_code, duty_date, hours, flights)
		SELECT crew_code, flight_date, SUM(flight_time), COUNT(*)
		FROM (
			SELECT pic AS crew_code, flight_date, flight_time
			FROM flights
			WHERE pic <> '' AND flight_time > 0 AND status = 'Completed'
			AND flight_date > NOW() - INTERVAL '%d days'
			UNION ALL
			SELECT sic, flight_date, flight_time
			FROM flights
			WHERE sic <> '' AND flight_time > 0 AND status = 'Completed'
			AND flight_date > NOW() - INTERVAL '%d days'
		) seats
		GROUP BY crew_code, flight_date
		ON CONFLICT (crew_code, duty_date) DO UPDATE SET
			hours = EXCLUDED.hours,
			flights = EXCLUDED.flights
	`, lookbackDays, lookbackDays))
	if err != nil {
		return fmt.Errorf("error rolling up duty ledger: %v", err)
	}

	rows, _ := result.RowsAffected()

	// Nightly airframe-hours snapshot, for maintenance trend queries.
	_, err = db.DB.Exec(`
		INSERT INTO aircraft_hours_daily (registration, snapshot_date, current_hours)
		SELECT registration, CURRENT_DATE, current_hours
		FROM aircraft
		ON CONFLICT (registration, snapshot_date) DO UPDATE SET
			current_hours = EXCLUDED.current_hours
	`)
	if err != nil {
		return fmt.Errorf("error snapshotting airframe hours: %v", err)
	}

	l.mu.Lock()
	l.stats.LastRun = time.Now()
	l.stats.RowsUpserted = rows
	l.stats.TotalRuns++
	l.mu.Unlock()

	log.Printf("Duty ledger rollup complete: %d rows upserted", rows)
	return nil
}

func (l *Ledger) GetStats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}
