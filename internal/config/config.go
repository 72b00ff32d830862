package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/herdsim/internal/domain/models"
)

// Config represents the full application configuration surface.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Simulation SimulationConfig
	Revenue    RevenueConfig
	Sheets     SheetsConfig
	MongoDB    MongoDBConfig
	Callback   CallbackConfig
	Digest     DigestConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// SimulationConfig holds the default scenario and the upper bounds enforced
// on requests. Herd size grows exponentially with years.
type SimulationConfig struct {
	DefaultUnits      int
	DefaultYears      int
	DefaultStartYear  int
	DefaultStartMonth int
	MaxUnits          int
	MaxYears          int
}

// RevenueConfig holds the static rate card used when no sheet is configured.
type RevenueConfig struct {
	LandingMonths int
	HighMonths    int
	HighRate      decimal.Decimal
	MediumMonths  int
	MediumRate    decimal.Decimal
	RestMonths    int
}

// SheetsConfig contains configuration required to read the rate card from Google Sheets.
// Leaving SpreadsheetID empty disables the sheet source.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	RateCardRange   string
}

// MongoDBConfig holds settings for the scenario store. An empty URI selects
// the in-memory store.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// CallbackConfig points at the embedding shell that receives pushed results.
type CallbackConfig struct {
	URL   string
	Token string
}

// DigestConfig holds scheduler-related settings.
type DigestConfig struct {
	CronSchedule string
	Timezone     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	defaults := models.DefaultRevenueConfig()
	p := &envParser{}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Simulation: SimulationConfig{
			DefaultUnits:      p.int("SIM_DEFAULT_UNITS", 1),
			DefaultYears:      p.int("SIM_DEFAULT_YEARS", 10),
			DefaultStartYear:  p.int("SIM_DEFAULT_START_YEAR", 2026),
			DefaultStartMonth: p.int("SIM_DEFAULT_START_MONTH", 0),
			MaxUnits:          p.int("SIM_MAX_UNITS", 50),
			MaxYears:          p.int("SIM_MAX_YEARS", 20),
		},
		Revenue: RevenueConfig{
			LandingMonths: p.int("REVENUE_LANDING_MONTHS", defaults.LandingPeriod),
			HighMonths:    p.int("REVENUE_HIGH_MONTHS", defaults.High.Months),
			HighRate:      p.decimal("REVENUE_HIGH_RATE", defaults.High.Revenue),
			MediumMonths:  p.int("REVENUE_MEDIUM_MONTHS", defaults.Medium.Months),
			MediumRate:    p.decimal("REVENUE_MEDIUM_RATE", defaults.Medium.Revenue),
			RestMonths:    p.int("REVENUE_REST_MONTHS", defaults.Rest.Months),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_RATECARD_ID"),
			RateCardRange:   getenvWithDefault("GOOGLE_SHEET_RATECARD_RANGE", "RateCard!A:C"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "herdsim"),
		},
		Callback: CallbackConfig{
			URL:   os.Getenv("SHELL_CALLBACK_URL"),
			Token: os.Getenv("SHELL_CALLBACK_TOKEN"),
		},
		Digest: DigestConfig{
			CronSchedule: getenvWithDefault("DIGEST_CRON_SCHEDULE", "0 20 * * 5"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
		},
	}

	if p.err != nil {
		return nil, p.err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Simulation.MaxUnits < 1:
		return errors.New("SIM_MAX_UNITS must be at least 1")
	case c.Simulation.MaxYears < 1:
		return errors.New("SIM_MAX_YEARS must be at least 1")
	case c.Simulation.DefaultUnits < 1 || c.Simulation.DefaultUnits > c.Simulation.MaxUnits:
		return fmt.Errorf("SIM_DEFAULT_UNITS must be within 1-%d", c.Simulation.MaxUnits)
	case c.Simulation.DefaultYears < 1 || c.Simulation.DefaultYears > c.Simulation.MaxYears:
		return fmt.Errorf("SIM_DEFAULT_YEARS must be within 1-%d", c.Simulation.MaxYears)
	case c.Simulation.DefaultStartMonth < 0 || c.Simulation.DefaultStartMonth > 11:
		return errors.New("SIM_DEFAULT_START_MONTH must be within 0-11")
	}

	if err := c.Revenue.RateCard().Validate(); err != nil {
		return fmt.Errorf("REVENUE_* settings: %w", err)
	}

	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_RATECARD_ID is set")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	if c.Callback.URL != "" && c.Digest.CronSchedule == "" {
		return errors.New("DIGEST_CRON_SCHEDULE must be provided")
	}

	if c.Digest.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

// DefaultParams returns the scenario used by the digest and by empty requests.
func (s SimulationConfig) DefaultParams() models.SimulationParams {
	return models.SimulationParams{
		Units:      s.DefaultUnits,
		Years:      s.DefaultYears,
		StartYear:  s.DefaultStartYear,
		StartMonth: s.DefaultStartMonth,
	}
}

// RateCard converts the static settings into a domain rate card.
func (r RevenueConfig) RateCard() models.RevenueConfig {
	return models.RevenueConfig{
		LandingPeriod: r.LandingMonths,
		High:          models.RevenuePhase{Months: r.HighMonths, Revenue: r.HighRate},
		Medium:        models.RevenuePhase{Months: r.MediumMonths, Revenue: r.MediumRate},
		Rest:          models.RevenuePhase{Months: r.RestMonths, Revenue: decimal.Zero},
	}
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// envParser records the first malformed numeric variable.
type envParser struct {
	err error
}

func (p *envParser) int(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v
}

func (p *envParser) decimal(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := decimal.NewFromString(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s must be a number: %w", key, err)
	}
	return v
}
