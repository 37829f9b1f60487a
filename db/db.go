package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/skybridgeair/flightops/config"
)

var DB *sql.DB

func InitDB(cfg config.DatabaseConfig) error {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("error opening database: %v", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("error connecting to the database: %v", err)
	}

	if err = createTables(); err != nil {
		return fmt.Errorf("error creating tables: %v", err)
	}

	return nil
}

func createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS api_keys (
			id SERIAL PRIMARY KEY,
			key VARCHAR(64) NOT NULL UNIQUE,
			description TEXT,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			last_used_at TIMESTAMP WITH TIME ZONE,
			is_active BOOLEAN NOT NULL DEFAULT true
		)`,
		`CREATE TABLE IF NOT EXISTS crew_members (
			id SERIAL PRIMARY KEY,
			code VARCHAR(3) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'Pilot',
			approved_airports TEXT[]
		)`,
		`CREATE TABLE IF NOT EXISTS aircraft (
			id SERIAL PRIMARY KEY,
			registration VARCHAR(10) NOT NULL UNIQUE,
			type VARCHAR(50) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'Active',
			max_takeoff_weight DOUBLE PRECISION NOT NULL,
			max_landing_weight DOUBLE PRECISION NOT NULL,
			max_zero_fuel_weight DOUBLE PRECISION NOT NULL,
			basic_empty_weight DOUBLE PRECISION NOT NULL,
			current_hours DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS locations (
			id SERIAL PRIMARY KEY,
			code VARCHAR(4) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			city VARCHAR(255),
			country VARCHAR(255)
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			contact VARCHAR(255),
			email VARCHAR(255),
			phone VARCHAR(50)
		)`,
		`CREATE TABLE IF NOT EXISTS routes (
			id SERIAL PRIMARY KEY,
			code VARCHAR(20) NOT NULL UNIQUE,
			origin VARCHAR(4) NOT NULL,
			destination VARCHAR(4) NOT NULL,
			distance_nm DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS route_times (
			id SERIAL PRIMARY KEY,
			route_id INTEGER NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
			aircraft_type VARCHAR(50) NOT NULL,
			flight_time DOUBLE PRECISION NOT NULL DEFAULT 0,
			buffer_time DOUBLE PRECISION NOT NULL DEFAULT 0,
			contingency_time DOUBLE PRECISION NOT NULL DEFAULT 0,
			UNIQUE (route_id, aircraft_type)
		)`,
		`CREATE TABLE IF NOT EXISTS flights (
			id SERIAL PRIMARY KEY,
			flight_date DATE NOT NULL,
			etd VARCHAR(5) NOT NULL DEFAULT '',
			origin VARCHAR(4) NOT NULL,
			destination VARCHAR(4) NOT NULL,
			registration VARCHAR(10) NOT NULL DEFAULT '',
			pic VARCHAR(3) NOT NULL DEFAULT '',
			sic VARCHAR(3) NOT NULL DEFAULT '',
			flight_time DOUBLE PRECISION NOT NULL DEFAULT 0,
			customer_id INTEGER,
			status VARCHAR(20) NOT NULL DEFAULT 'Scheduled',
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS dispatch_records (
			id SERIAL PRIMARY KEY,
			flight_id INTEGER NOT NULL UNIQUE REFERENCES flights(id),
			status VARCHAR(20) NOT NULL DEFAULT 'Draft',
			fuel_taxi DOUBLE PRECISION NOT NULL DEFAULT 0,
			fuel_trip DOUBLE PRECISION NOT NULL DEFAULT 0,
			fuel_contingency DOUBLE PRECISION NOT NULL DEFAULT 0,
			fuel_alternate DOUBLE PRECISION NOT NULL DEFAULT 0,
			fuel_holding DOUBLE PRECISION NOT NULL DEFAULT 0,
			fuel_total_fob DOUBLE PRECISION NOT NULL DEFAULT 0,
			fuel_density DOUBLE PRECISION NOT NULL DEFAULT 0,
			payload DOUBLE PRECISION NOT NULL DEFAULT 0,
			zero_fuel_weight DOUBLE PRECISION NOT NULL DEFAULT 0,
			ramp_weight DOUBLE PRECISION NOT NULL DEFAULT 0,
			takeoff_weight DOUBLE PRECISION NOT NULL DEFAULT 0,
			landing_weight DOUBLE PRECISION NOT NULL DEFAULT 0,
			remarks TEXT,
			released_at TIMESTAMP WITH TIME ZONE,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS dispatch_passengers (
			id SERIAL PRIMARY KEY,
			dispatch_id INTEGER NOT NULL REFERENCES dispatch_records(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			weight DOUBLE PRECISION NOT NULL DEFAULT 0,
			free_bag_weight DOUBLE PRECISION NOT NULL DEFAULT 0,
			excess_bag_weight DOUBLE PRECISION NOT NULL DEFAULT 0,
			infant BOOLEAN NOT NULL DEFAULT false
		)`,
		`CREATE TABLE IF NOT EXISTS dispatch_cargo (
			id SERIAL PRIMARY KEY,
			dispatch_id INTEGER NOT NULL REFERENCES dispatch_records(id) ON DELETE CASCADE,
			description VARCHAR(255) NOT NULL,
			weight DOUBLE PRECISION NOT NULL DEFAULT 0,
			dangerous BOOLEAN NOT NULL DEFAULT false
		)`,
		`CREATE TABLE IF NOT EXISTS maintenance_checks (
			id SERIAL PRIMARY KEY,
			registration VARCHAR(10) NOT NULL,
			name VARCHAR(100) NOT NULL,
			interval_hours DOUBLE PRECISION NOT NULL,
			last_performed_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			UNIQUE (registration, name)
		)`,
		`CREATE TABLE IF NOT EXISTS voyage_reports (
			id SERIAL PRIMARY KEY,
			flight_id INTEGER NOT NULL REFERENCES flights(id),
			report_date DATE NOT NULL,
			pic VARCHAR(3) NOT NULL,
			sic VARCHAR(3) NOT NULL DEFAULT '',
			block_off VARCHAR(5) NOT NULL DEFAULT '',
			block_on VARCHAR(5) NOT NULL DEFAULT '',
			flight_time DOUBLE PRECISION NOT NULL DEFAULT 0,
			landings INTEGER NOT NULL DEFAULT 1,
			remarks TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS training_records (
			id SERIAL PRIMARY KEY,
			crew_code VARCHAR(3) NOT NULL,
			course VARCHAR(100) NOT NULL,
			completed_on DATE NOT NULL,
			expires_on DATE
		)`,
		`CREATE TABLE IF NOT EXISTS crew_duty_daily (
			id SERIAL PRIMARY KEY,
			crew_code VARCHAR(3) NOT NULL,
			duty_date DATE NOT NULL,
			hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			flights INTEGER NOT NULL DEFAULT 0,
			UNIQUE (crew_code, duty_date)
		)`,
		`CREATE TABLE IF NOT EXISTS aircraft_hours_daily (
			id SERIAL PRIMARY KEY,
			registration VARCHAR(10) NOT NULL,
			snapshot_date DATE NOT NULL,
			current_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			UNIQUE (registration, snapshot_date)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_flights_date ON flights (flight_date)`,
		`CREATE INDEX IF NOT EXISTS idx_flights_pic ON flights (pic)`,
		`CREATE INDEX IF NOT EXISTS idx_flights_sic ON flights (sic)`,
		`CREATE INDEX IF NOT EXISTS idx_flights_registration ON flights (registration)`,
		`CREATE INDEX IF NOT EXISTS idx_maintenance_checks_registration ON maintenance_checks (registration)`,
		`CREATE INDEX IF NOT EXISTS idx_voyage_reports_date ON voyage_reports (report_date)`,
		`CREATE INDEX IF NOT EXISTS idx_training_records_crew ON training_records (crew_code)`,
		`CREATE INDEX IF NOT EXISTS idx_crew_duty_daily_crew ON crew_duty_daily (crew_code, duty_date)`,
	}

	for _, query := range queries {
		_, err := DB.Exec(query)
		if err != nil {
			return err
		}
	}

	return nil
}

func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
