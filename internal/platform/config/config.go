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

	// Application JWT settings
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// External OAuth provider
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	// Tenant registry: the master spreadsheet holding the Users tab, accessed
	// with the application owner's refresh token.
	MasterSpreadsheetID string `mapstructure:"MASTER_SPREADSHEET_ID"`
	MasterRefreshToken  string `mapstructure:"MASTER_REFRESH_TOKEN"`

	// Nightly accrual batch
	BatchEnabled  bool
	BatchCronSpec string
	BatchTimezone string

	// Per-IP rate limit in ulule/limiter notation, e.g. "100-M"
	RateLimitSpec string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "finanzapp")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("MASTER_SPREADSHEET_ID", "")
	viper.SetDefault("MASTER_REFRESH_TOKEN", "")
	viper.SetDefault("BATCH_ENABLED", true)
	viper.SetDefault("BATCH_CRON_SPEC", "0 2 * * *")
	viper.SetDefault("BATCH_TIMEZONE", "UTC")
	viper.SetDefault("RATE_LIMIT_SPEC", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}
	if cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_SECRET not set. Google OAuth will not function.")
	}
	if cfg.GoogleRedirectURL == "" {
		log.Println("Warning: GOOGLE_REDIRECT_URL not set. Google OAuth will not function.")
	}

	cfg.MasterSpreadsheetID = viper.GetString("MASTER_SPREADSHEET_ID")
	cfg.MasterRefreshToken = viper.GetString("MASTER_REFRESH_TOKEN")
	if cfg.MasterSpreadsheetID == "" {
		log.Println("Warning: MASTER_SPREADSHEET_ID not set. The tenant registry is unavailable.")
	}

	cfg.BatchEnabled = viper.GetBool("BATCH_ENABLED")
	cfg.BatchCronSpec = viper.GetString("BATCH_CRON_SPEC")
	cfg.BatchTimezone = viper.GetString("BATCH_TIMEZONE")
	cfg.RateLimitSpec = viper.GetString("RATE_LIMIT_SPEC")

	return cfg, nil
}
