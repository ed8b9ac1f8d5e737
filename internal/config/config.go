// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration. It is loaded once at startup and
// passed explicitly to the components that need it; calculation logic never
// reads configuration on its own.
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// AI provider
	AIProvider     string
	AIBaseURL      string
	AIModel        string
	AIAPIKey       string
	AITimeout      time.Duration
	AIMaxRetries   int
	AISystemPrompt string

	// Feature flags
	RegulatedPartner bool

	// Financial policy defaults
	DefaultCurrency string
	DefaultFunRatio float64
	MaxDTIRatio     float64
	DefaultCPIRate  float64
}

const defaultSystemPrompt = "You are a helpful financial education assistant. " +
	"Provide concise, actionable advice. Include formulas and explanations when relevant. " +
	"Always remind users this is educational guidance, not professional financial advice."

var appConfig *Config

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if present; environment variables win otherwise.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "peakfinance"),
		DBPassword: getEnv("DB_PASSWORD", "peakfinance"),
		DBName:     getEnv("DB_NAME", "peakfinance"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// AI provider
		AIProvider:     getEnv("AI_PROVIDER", "openai"),
		AIBaseURL:      getEnv("AI_BASE_URL", ""),
		AIModel:        getEnv("AI_MODEL", ""),
		AIAPIKey:       getEnv("AI_API_KEY", ""),
		AIMaxRetries:   getEnvInt("AI_MAX_RETRIES", 2),
		AISystemPrompt: getEnv("AI_SYSTEM_PROMPT", defaultSystemPrompt),

		// Feature flags
		RegulatedPartner: getEnvBool("IS_REGULATED_PARTNER", false),

		// Financial policy defaults
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "BDT"),
		DefaultFunRatio: getEnvFloat("DEFAULT_FUN_RATIO", 0.15),
		MaxDTIRatio:     getEnvFloat("MAX_DTI_RATIO", 0.4),
		DefaultCPIRate:  getEnvFloat("DEFAULT_CPI_RATE", 7.0),
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	// Parse AI call timeout (seconds)
	config.AITimeout = time.Duration(getEnvInt("AI_TIMEOUT", 30)) * time.Second

	appConfig = config
	return config, nil
}

// Get returns the application configuration.
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Warning: invalid %s value '%s', using default %d\n", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Warning: invalid %s value '%s', using default %g\n", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("Warning: invalid %s value '%s', using default %v\n", key, value, defaultValue)
	}
	return defaultValue
}
