package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string
	JWTIssuer    string

	// RateLimit is a limiter formatted rate such as "100-M".
	RateLimit string

	// Settlement retry tuning for transient store conflicts.
	SettlementMaxRetries   int
	SettlementRetryBackoff time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "flatledger")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("SETTLEMENT_MAX_RETRIES", 3)
	viper.SetDefault("SETTLEMENT_RETRY_BACKOFF", "50ms")

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

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "flatledger"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	settlementRetryBackoffStr := viper.GetString("SETTLEMENT_RETRY_BACKOFF")
	settlementRetryBackoff, err := time.ParseDuration(settlementRetryBackoffStr)
	if err != nil {
		settlementRetryBackoff = 50 * time.Millisecond
		if settlementRetryBackoffStr != "" {
			log.Printf("Warning: Invalid value for SETTLEMENT_RETRY_BACKOFF ('%s'). Defaulting to %s.\n", settlementRetryBackoffStr, settlementRetryBackoff.String())
		}
	}

	settlementMaxRetries := viper.GetInt("SETTLEMENT_MAX_RETRIES")
	if settlementMaxRetries < 0 {
		log.Printf("Warning: SETTLEMENT_MAX_RETRIES is negative (%d). Defaulting to 0.\n", settlementMaxRetries)
		settlementMaxRetries = 0
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.JWTSecret = jwtSecret
	cfg.JWTIssuer = jwtIssuer
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.SettlementMaxRetries = settlementMaxRetries
	cfg.SettlementRetryBackoff = settlementRetryBackoff

	return cfg, nil
}
