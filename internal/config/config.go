package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds the statutory rates and per-service bonus amounts.
// The tax bracket table itself lives in the payroll domain and is selected
// per fiscal year; only the scalar knobs are tunable through the
// environment.
type PayrollConfig struct {
	PensionRate           decimal.Decimal
	HealthRate            decimal.Decimal
	TaxUnitValue          decimal.Decimal
	DriverServiceBonus    decimal.Decimal
	AssistantServiceBonus decimal.Decimal
	NightShiftPremium     decimal.Decimal
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables win in deployment.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "funeraria"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Payroll configuration
	payroll, err := loadPayrollConfig()
	if err != nil {
		return nil, err
	}
	config.Payroll = payroll

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPayrollConfig() (PayrollConfig, error) {
	cfg := PayrollConfig{}

	fields := []struct {
		dst      *decimal.Decimal
		env      string
		fallback string
	}{
		{&cfg.PensionRate, "PAYROLL_PENSION_RATE", "0.10"},
		{&cfg.HealthRate, "PAYROLL_HEALTH_RATE", "0.07"},
		{&cfg.TaxUnitValue, "PAYROLL_TAX_UNIT_VALUE", "726984"},
		{&cfg.DriverServiceBonus, "PAYROLL_DRIVER_SERVICE_BONUS", "15000"},
		{&cfg.AssistantServiceBonus, "PAYROLL_ASSISTANT_SERVICE_BONUS", "10000"},
		{&cfg.NightShiftPremium, "PAYROLL_NIGHT_SHIFT_PREMIUM", "5000"},
	}

	for _, f := range fields {
		value, err := decimal.NewFromString(getEnv(f.env, f.fallback))
		if err != nil {
			return PayrollConfig{}, fmt.Errorf("invalid %s: %w", f.env, err)
		}
		*f.dst = value
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.PensionRate.IsNegative() || c.Payroll.HealthRate.IsNegative() {
		return fmt.Errorf("payroll rates must be non-negative")
	}
	if !c.Payroll.TaxUnitValue.IsPositive() {
		return fmt.Errorf("PAYROLL_TAX_UNIT_VALUE must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
