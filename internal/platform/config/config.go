package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// AdminPasswordHash is the bcrypt hash the single operator logs in
	// with. Empty disables the login endpoint entirely.
	AdminPasswordHash string

	// CacheDisabled swaps the report cache for a passthrough.
	CacheDisabled bool
	ReportTTL     time.Duration

	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "card-ledger-app")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("CACHE_DISABLED", false)
	viper.SetDefault("REPORT_TTL", "10m")
	viper.SetDefault("RATE_LIMIT", "100-M")

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

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "card-ledger-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	adminHash := viper.GetString("ADMIN_PASSWORD_HASH")
	if adminHash == "" {
		log.Println("Warning: ADMIN_PASSWORD_HASH not set. The login endpoint is disabled.")
	}

	reportTTLStr := viper.GetString("REPORT_TTL")
	reportTTL, err := time.ParseDuration(reportTTLStr)
	if err != nil || reportTTL <= 0 {
		reportTTL = 10 * time.Minute
		if reportTTLStr != "" {
			log.Printf("Warning: Invalid value for REPORT_TTL ('%s'). Defaulting to %s.\n", reportTTLStr, reportTTL.String())
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.AdminPasswordHash = adminHash
	cfg.CacheDisabled = viper.GetBool("CACHE_DISABLED")
	cfg.ReportTTL = reportTTL
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
