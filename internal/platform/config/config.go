package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// DatabaseURL is optional; when set, the event audit trail is persisted
	// to PostgreSQL instead of process memory.
	DatabaseURL string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Account wiring. AdminAccount administers the ledger and the
	// certificate registry; MarketOwner administers the catalog;
	// MarketTreasury is the market's own account on the other subsystems.
	AdminAccount   string
	AdminSecret    string
	MarketOwner    string
	MarketTreasury string

	// MetadataBaseURI prefixes the metadata reference of purchase-minted
	// certificates.
	MetadataBaseURI string

	// RateLimit is a limiter format string, e.g. "100-M" for 100 req/min.
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "courseledger")
	viper.SetDefault("ADMIN_ACCOUNT", "admin")
	viper.SetDefault("ADMIN_SECRET", "default_insecure_admin_secret_please_change_this")
	viper.SetDefault("MARKET_OWNER", "admin")
	viper.SetDefault("MARKET_TREASURY", "course-market")
	viper.SetDefault("METADATA_BASE_URI", "ipfs://course-certificates")
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL not set. Audit events are kept in memory only.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.AdminAccount = viper.GetString("ADMIN_ACCOUNT")
	cfg.AdminSecret = viper.GetString("ADMIN_SECRET")
	if cfg.AdminSecret == "default_insecure_admin_secret_please_change_this" {
		log.Println("Warning: ADMIN_SECRET not set. Using default insecure secret.")
	}
	cfg.MarketOwner = viper.GetString("MARKET_OWNER")
	cfg.MarketTreasury = viper.GetString("MARKET_TREASURY")
	cfg.MetadataBaseURI = viper.GetString("METADATA_BASE_URI")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
