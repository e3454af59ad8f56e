package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	RateLimit     string // ulule/limiter format, e.g. "100-M"

	// Employer-side unemployment tax parameters. Rates and wage bases vary
	// by state and year; a per-employee SUTA rate on the payroll profile
	// overrides the configured one.
	FUTARate     decimal.Decimal
	FUTAWageBase decimal.Decimal
	SUTARate     decimal.Decimal
	SUTAWageBase decimal.Decimal

	// ACH originator identity, rendered into every NACHA file header.
	ACHImmediateDestination string // receiving bank routing number (9 digits)
	ACHImmediateOrigin      string // company federal id (10 characters)
	ACHDestinationName      string
	ACHOriginName           string
	ACHCompanyName          string
	ACHCompanyID            string // 10 characters, batch header/control
	ACHODFIRouting          string // originating bank routing number (9 digits)
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("FUTA_RATE", "0.006")
	viper.SetDefault("FUTA_WAGE_BASE", "7000")
	viper.SetDefault("SUTA_RATE", "0.027")
	viper.SetDefault("SUTA_WAGE_BASE", "9000")
	viper.SetDefault("ACH_IMMEDIATE_DESTINATION", "")
	viper.SetDefault("ACH_IMMEDIATE_ORIGIN", "")
	viper.SetDefault("ACH_DESTINATION_NAME", "")
	viper.SetDefault("ACH_ORIGIN_NAME", "")
	viper.SetDefault("ACH_COMPANY_NAME", "")
	viper.SetDefault("ACH_COMPANY_ID", "")
	viper.SetDefault("ACH_ODFI_ROUTING", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	var err error
	if cfg.FUTARate, err = decimal.NewFromString(viper.GetString("FUTA_RATE")); err != nil {
		log.Printf("Warning: Invalid FUTA_RATE, defaulting to 0.006: %v\n", err)
		cfg.FUTARate = decimal.RequireFromString("0.006")
	}
	if cfg.FUTAWageBase, err = decimal.NewFromString(viper.GetString("FUTA_WAGE_BASE")); err != nil {
		log.Printf("Warning: Invalid FUTA_WAGE_BASE, defaulting to 7000: %v\n", err)
		cfg.FUTAWageBase = decimal.NewFromInt(7000)
	}
	if cfg.SUTARate, err = decimal.NewFromString(viper.GetString("SUTA_RATE")); err != nil {
		log.Printf("Warning: Invalid SUTA_RATE, defaulting to 0.027: %v\n", err)
		cfg.SUTARate = decimal.RequireFromString("0.027")
	}
	if cfg.SUTAWageBase, err = decimal.NewFromString(viper.GetString("SUTA_WAGE_BASE")); err != nil {
		log.Printf("Warning: Invalid SUTA_WAGE_BASE, defaulting to 9000: %v\n", err)
		cfg.SUTAWageBase = decimal.NewFromInt(9000)
	}

	cfg.ACHImmediateDestination = viper.GetString("ACH_IMMEDIATE_DESTINATION")
	cfg.ACHImmediateOrigin = viper.GetString("ACH_IMMEDIATE_ORIGIN")
	cfg.ACHDestinationName = viper.GetString("ACH_DESTINATION_NAME")
	cfg.ACHOriginName = viper.GetString("ACH_ORIGIN_NAME")
	cfg.ACHCompanyName = viper.GetString("ACH_COMPANY_NAME")
	cfg.ACHCompanyID = viper.GetString("ACH_COMPANY_ID")
	cfg.ACHODFIRouting = viper.GetString("ACH_ODFI_ROUTING")
	if cfg.ACHImmediateDestination == "" || cfg.ACHCompanyID == "" {
		log.Println("Warning: ACH originator identity not fully configured. NACHA generation will be rejected.")
	}

	return cfg, nil
}
