package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Storage. "memory" skips Redis entirely (dev/test convenience).
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`

	// Demo credentials provisioned at startup (hashed in memory, never stored).
	AdminPassword   string `mapstructure:"ADMIN_PASSWORD"`
	CashierPassword string `mapstructure:"CASHIER_PASSWORD"`

	// Business
	TaxRate           float64 `mapstructure:"TAX_RATE"`
	LowStockThreshold int     `mapstructure:"LOW_STOCK_THRESHOLD"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 8)
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.SetDefault("CASHIER_PASSWORD", "cashier123")
	viper.SetDefault("TAX_RATE", 0.16)
	viper.SetDefault("LOW_STOCK_THRESHOLD", 20)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
