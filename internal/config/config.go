// Package config loads the induction scheduling core's tunable
// thresholds, from environment variables for library callers and from
// a YAML file for the CLI.
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full set of options §6 of the external-interfaces
// contract recognizes, plus the ambient app/metrics settings every
// entry point needs regardless of domain.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Induction InductionConfig `yaml:"induction"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// AppConfig carries cross-cutting process settings.
type AppConfig struct {
	Name     string `yaml:"name"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
}

// InductionConfig is the scheduling core's own configuration surface.
type InductionConfig struct {
	RosterSize          int           `yaml:"roster_size"`
	SolverBudget        time.Duration `yaml:"solver_budget"`
	EnableRelaxation    bool          `yaml:"enable_relaxation"`
	DepotBalanceLo      int           `yaml:"depot_balance_lo"`
	DepotBalanceHi      int           `yaml:"depot_balance_hi"`
	AgeNewYearsMax      int           `yaml:"age_new_years_max"`
	CriticalBrandingMin int           `yaml:"critical_branding_min"`
	MileageBandLo       float64       `yaml:"mileage_band_lo"`
	MileageBandHi       float64       `yaml:"mileage_band_hi"`
	HomeBayMin          int           `yaml:"home_bay_min"`
	Seed                int64         `yaml:"seed"`
}

// MetricsConfig controls whether the in-process Prometheus registry is
// populated. No HTTP exposition is wired from this core.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// defaultConfig returns the documented defaults for every option.
func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:     "induct-scheduler",
			Env:      "development",
			LogLevel: "info",
		},
		Induction: InductionConfig{
			RosterSize:          24,
			SolverBudget:        10 * time.Second,
			EnableRelaxation:    true,
			DepotBalanceLo:      9,
			DepotBalanceHi:      15,
			AgeNewYearsMax:      5,
			CriticalBrandingMin: 6,
			MileageBandLo:       50000,
			MileageBandHi:       150000,
			HomeBayMin:          18,
			Seed:                1,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load builds a Config from environment variables, falling back to the
// documented defaults for anything unset.
func Load() (*Config, error) {
	cfg := defaultConfig()
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.LogLevel = getEnv("APP_LOG_LEVEL", cfg.App.LogLevel)

	cfg.Induction.RosterSize = getEnvInt("INDUCTION_ROSTER_SIZE", cfg.Induction.RosterSize)
	cfg.Induction.SolverBudget = getEnvDuration("INDUCTION_SOLVER_BUDGET", cfg.Induction.SolverBudget)
	cfg.Induction.EnableRelaxation = getEnvBool("INDUCTION_ENABLE_RELAXATION", cfg.Induction.EnableRelaxation)
	cfg.Induction.DepotBalanceLo = getEnvInt("INDUCTION_DEPOT_BALANCE_LO", cfg.Induction.DepotBalanceLo)
	cfg.Induction.DepotBalanceHi = getEnvInt("INDUCTION_DEPOT_BALANCE_HI", cfg.Induction.DepotBalanceHi)
	cfg.Induction.AgeNewYearsMax = getEnvInt("INDUCTION_AGE_NEW_YEARS_MAX", cfg.Induction.AgeNewYearsMax)
	cfg.Induction.CriticalBrandingMin = getEnvInt("INDUCTION_CRITICAL_BRANDING_MIN", cfg.Induction.CriticalBrandingMin)
	cfg.Induction.MileageBandLo = getEnvFloat("INDUCTION_MILEAGE_BAND_LO", cfg.Induction.MileageBandLo)
	cfg.Induction.MileageBandHi = getEnvFloat("INDUCTION_MILEAGE_BAND_HI", cfg.Induction.MileageBandHi)
	cfg.Induction.HomeBayMin = getEnvInt("INDUCTION_HOME_BAY_MIN", cfg.Induction.HomeBayMin)
	cfg.Induction.Seed = int64(getEnvInt("INDUCTION_SEED", int(cfg.Induction.Seed)))

	cfg.Metrics.Enabled = getEnvBool("METRICS_ENABLED", cfg.Metrics.Enabled)

	return cfg, nil
}

// LoadFile reads a YAML config file, layering it on top of the
// documented defaults: any section or field the file omits keeps its
// default value, since decoding into an already-populated struct only
// overwrites the keys present in the document.
func LoadFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment reports whether App.Env is the development environment.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction reports whether App.Env is the production environment.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
