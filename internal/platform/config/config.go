package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds engine configuration for the accounting core.
type Config struct {
	// RoundingPlaces is the fixed decimal-place count monetary values are
	// rounded to (half-up) after every arithmetic operation.
	RoundingPlaces int32
	// Tolerance bounds rounding drift for balance and settlement checks.
	Tolerance decimal.Decimal
	// DefaultTaxRate applies when neither an invoice nor a line carries a rate.
	DefaultTaxRate decimal.Decimal
	// DefaultCurrency labels amounts; no conversion is performed.
	DefaultCurrency string
	// AuditLogCapacity bounds the audit trail (oldest evicted first).
	AuditLogCapacity int

	// Budget alert thresholds, in percent.
	BudgetWarningThreshold  decimal.Decimal
	BudgetCriticalThreshold decimal.Decimal

	// Control-account codes the invoice/expense/cash-flow subsystems post through.
	CashAccountCode       string
	ReceivableAccountCode string
	InventoryAccountCode  string
	PayableAccountCode    string
	TaxPayableAccountCode string
	RevenueAccountCode    string
}

// Load reads configuration from environment variables and a .env file if present.
func Load() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("ROUNDING_PLACES", 2)
	viper.SetDefault("ROUNDING_TOLERANCE", "0.01")
	viper.SetDefault("DEFAULT_TAX_RATE", "0.15")
	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("AUDIT_LOG_CAPACITY", 10000)
	viper.SetDefault("BUDGET_WARNING_THRESHOLD", "75")
	viper.SetDefault("BUDGET_CRITICAL_THRESHOLD", "90")
	viper.SetDefault("CASH_ACCOUNT_CODE", "1000")
	viper.SetDefault("RECEIVABLE_ACCOUNT_CODE", "1100")
	viper.SetDefault("INVENTORY_ACCOUNT_CODE", "1200")
	viper.SetDefault("PAYABLE_ACCOUNT_CODE", "2000")
	viper.SetDefault("TAX_PAYABLE_ACCOUNT_CODE", "2100")
	viper.SetDefault("REVENUE_ACCOUNT_CODE", "4000")

	viper.AutomaticEnv()

	cfg := &Config{
		RoundingPlaces:        viper.GetInt32("ROUNDING_PLACES"),
		DefaultCurrency:       viper.GetString("DEFAULT_CURRENCY"),
		AuditLogCapacity:      viper.GetInt("AUDIT_LOG_CAPACITY"),
		CashAccountCode:       viper.GetString("CASH_ACCOUNT_CODE"),
		ReceivableAccountCode: viper.GetString("RECEIVABLE_ACCOUNT_CODE"),
		InventoryAccountCode:  viper.GetString("INVENTORY_ACCOUNT_CODE"),
		PayableAccountCode:    viper.GetString("PAYABLE_ACCOUNT_CODE"),
		TaxPayableAccountCode: viper.GetString("TAX_PAYABLE_ACCOUNT_CODE"),
		RevenueAccountCode:    viper.GetString("REVENUE_ACCOUNT_CODE"),
	}

	var err error
	if cfg.Tolerance, err = parseDecimal("ROUNDING_TOLERANCE"); err != nil {
		return nil, err
	}
	if cfg.DefaultTaxRate, err = parseDecimal("DEFAULT_TAX_RATE"); err != nil {
		return nil, err
	}
	if cfg.BudgetWarningThreshold, err = parseDecimal("BUDGET_WARNING_THRESHOLD"); err != nil {
		return nil, err
	}
	if cfg.BudgetCriticalThreshold, err = parseDecimal("BUDGET_CRITICAL_THRESHOLD"); err != nil {
		return nil, err
	}

	if cfg.RoundingPlaces < 0 {
		return nil, fmt.Errorf("ROUNDING_PLACES must be non-negative, got %d", cfg.RoundingPlaces)
	}
	return cfg, nil
}

// Default returns the configuration used when no environment is consulted,
// matching the Load defaults. Intended for tests and embedded use.
func Default() *Config {
	return &Config{
		RoundingPlaces:          2,
		Tolerance:               decimal.RequireFromString("0.01"),
		DefaultTaxRate:          decimal.RequireFromString("0.15"),
		DefaultCurrency:         "USD",
		AuditLogCapacity:        10000,
		BudgetWarningThreshold:  decimal.NewFromInt(75),
		BudgetCriticalThreshold: decimal.NewFromInt(90),
		CashAccountCode:         "1000",
		ReceivableAccountCode:   "1100",
		InventoryAccountCode:    "1200",
		PayableAccountCode:      "2000",
		TaxPayableAccountCode:   "2100",
		RevenueAccountCode:      "4000",
	}
}

// Round applies the configured half-up rounding.
func (c *Config) Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(c.RoundingPlaces)
}

// WithinTolerance reports whether d is within the rounding tolerance of zero.
func (c *Config) WithinTolerance(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(c.Tolerance)
}

func parseDecimal(key string) (decimal.Decimal, error) {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
