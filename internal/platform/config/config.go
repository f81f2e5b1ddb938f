package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// AccountRef identifies a ledger account the journal bridge posts to.
type AccountRef struct {
	ID     string
	Number string
	Name   string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Payables above this total require explicit approval before payment-day
	// processing treats them as cleared for release.
	ApprovalThreshold decimal.Decimal
	DefaultCurrency   string

	// Default expense account assigned to line items that arrive without one.
	DefaultExpenseAccount AccountRef
	// The Accounts Payable control account debited when a payment is posted.
	APAccount AccountRef
	// Cash account credited when a payment carries no bank account.
	DefaultCashAccount AccountRef

	// Bounded retry attempts for transient read failures.
	ReadRetryAttempts int

	// ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("APPROVAL_THRESHOLD", "10000000")
	viper.SetDefault("DEFAULT_CURRENCY", "IDR")
	viper.SetDefault("DEFAULT_EXPENSE_ACCOUNT_ID", "acc-expense-default")
	viper.SetDefault("DEFAULT_EXPENSE_ACCOUNT_NUMBER", "6000")
	viper.SetDefault("DEFAULT_EXPENSE_ACCOUNT_NAME", "Project Expenses")
	viper.SetDefault("AP_ACCOUNT_ID", "acc-ap-control")
	viper.SetDefault("AP_ACCOUNT_NUMBER", "2100")
	viper.SetDefault("AP_ACCOUNT_NAME", "Accounts Payable")
	viper.SetDefault("DEFAULT_CASH_ACCOUNT_ID", "acc-cash-main")
	viper.SetDefault("DEFAULT_CASH_ACCOUNT_NUMBER", "1000")
	viper.SetDefault("DEFAULT_CASH_ACCOUNT_NAME", "Cash")
	viper.SetDefault("READ_RETRY_ATTEMPTS", 3)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	threshold, err := decimal.NewFromString(viper.GetString("APPROVAL_THRESHOLD"))
	if err != nil {
		log.Printf("Warning: Invalid value for APPROVAL_THRESHOLD (%q). Defaulting to 10000000.\n", viper.GetString("APPROVAL_THRESHOLD"))
		threshold = decimal.NewFromInt(10_000_000)
	}
	cfg.ApprovalThreshold = threshold

	cfg.DefaultCurrency = viper.GetString("DEFAULT_CURRENCY")

	cfg.DefaultExpenseAccount = AccountRef{
		ID:     viper.GetString("DEFAULT_EXPENSE_ACCOUNT_ID"),
		Number: viper.GetString("DEFAULT_EXPENSE_ACCOUNT_NUMBER"),
		Name:   viper.GetString("DEFAULT_EXPENSE_ACCOUNT_NAME"),
	}
	cfg.APAccount = AccountRef{
		ID:     viper.GetString("AP_ACCOUNT_ID"),
		Number: viper.GetString("AP_ACCOUNT_NUMBER"),
		Name:   viper.GetString("AP_ACCOUNT_NAME"),
	}
	cfg.DefaultCashAccount = AccountRef{
		ID:     viper.GetString("DEFAULT_CASH_ACCOUNT_ID"),
		Number: viper.GetString("DEFAULT_CASH_ACCOUNT_NUMBER"),
		Name:   viper.GetString("DEFAULT_CASH_ACCOUNT_NAME"),
	}

	cfg.ReadRetryAttempts = viper.GetInt("READ_RETRY_ATTEMPTS")
	if cfg.ReadRetryAttempts < 1 {
		cfg.ReadRetryAttempts = 1
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
