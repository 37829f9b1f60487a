package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Dispatch DispatchConfig `yaml:"dispatch"`
	Features FeatureFlags   `yaml:"features"`
	// RollupSchedule is a cron expression for the nightly duty ledger job.
	RollupSchedule string `yaml:"rollup_schedule"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     string `yaml:"port" env:"DB_PORT"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME"`
}

type DispatchConfig struct {
	// FuelDensity is pounds per gallon used for the gallons display.
	FuelDensity float64 `yaml:"fuel_density"`
}

// FeatureFlags are the system settings that gate optional modules.
type FeatureFlags struct {
	FleetSafetyChecks bool `yaml:"fleet_safety_checks"`
	TrainingModule    bool `yaml:"training_module"`
	VoyageReports     bool `yaml:"voyage_reports"`
	WeatherBriefing   bool `yaml:"weather_briefing"`
}

// Load reads config.yaml (or CONFIG_FILE) over a defaulted Config, then
// lets environment variables override the database settings. A missing
// config file is not an error; the defaults plus environment are enough
// to run.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Server:   ServerConfig{Listen: ":8080"},
		Dispatch: DispatchConfig{FuelDensity: 6.7},
		Features: FeatureFlags{
			FleetSafetyChecks: true,
			TrainingModule:    true,
			VoyageReports:     true,
			WeatherBriefing:   true,
		},
		RollupSchedule: "15 0 * * *",
	}

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		cfg.Database.Port = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Listen = v
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required (set DB_HOST or database.host)")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required (set DB_USER or database.user)")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required (set DB_NAME or database.name)")
	}
	if c.Database.Port == "" {
		c.Database.Port = "5432"
	}
	if c.Dispatch.FuelDensity <= 0 {
		return fmt.Errorf("dispatch fuel density must be positive")
	}
	return nil
}
