// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	AppEnv     string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	FrontendURL  string

	// PostgreSQL
	PostgresDSN string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Amadeus
	AmadeusBaseURL     string
	AmadeusAPIKey      string
	AmadeusAPISecret   string
	AmadeusMinInterval time.Duration

	// LLM
	ArkBaseURL string
	ArkAPIKey  string
	ArkModel   string

	// Auth
	CronSecret     string
	InternalAPIKey string
	JWTSecret      string
	JWTTTL         time.Duration

	// Monitoring
	RedisAddr         string
	MonitorCron       string
	MonitorInterval   time.Duration
	AlertDelay        time.Duration
	BatchAlertDelay   time.Duration
	DefaultOriginCode string
	MaxDealsPerAlert  int

	// Gmail
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	GmailSender       string

	// WhatsApp
	WhatsAppServiceURL string
	WhatsAppToken      string
	WhatsAppCompanyID  string
	WhatsAppAgentID    string

	// Kafka
	KafkaBrokers   []string
	KafkaDealTopic string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		AppEnv:     getEnv("APP_ENV", "production"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),

		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=vandra port=5432 sslmode=disable"),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "vandra"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		AmadeusBaseURL:     getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		AmadeusAPIKey:      getEnv("AMADEUS_API_KEY", ""),
		AmadeusAPISecret:   getEnv("AMADEUS_API_SECRET", ""),
		AmadeusMinInterval: getEnvAsDuration("AMADEUS_MIN_INTERVAL", time.Second),

		ArkBaseURL: getEnv("ARK_BASE_URL", ""),
		ArkAPIKey:  getEnv("ARK_API_KEY", ""),
		ArkModel:   getEnv("ARK_MODEL", ""),

		CronSecret:     getEnv("CRON_SECRET", ""),
		InternalAPIKey: getEnv("INTERNAL_API_KEY", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTTTL:         getEnvAsDuration("JWT_TTL", 30*24*time.Hour),

		RedisAddr:         getEnv("REDIS_ADDR", ""),
		MonitorCron:       getEnv("MONITOR_CRON", "0 */6 * * *"),
		MonitorInterval:   getEnvAsDuration("MONITOR_INTERVAL", 6*time.Hour),
		AlertDelay:        getEnvAsDuration("ALERT_DELAY", 3*time.Second),
		BatchAlertDelay:   getEnvAsDuration("BATCH_ALERT_DELAY", 2*time.Second),
		DefaultOriginCode: strings.ToUpper(getEnv("DEFAULT_ORIGIN_CODE", "SLC")),
		MaxDealsPerAlert:  getEnvAsInt("MAX_DEALS_PER_ALERT", 1),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		GmailSender:       getEnv("GMAIL_SENDER", ""),

		WhatsAppServiceURL: getEnv("WHATSAPP_SERVICE_URL", ""),
		WhatsAppToken:      getEnv("WHATSAPP_TOKEN", ""),
		WhatsAppCompanyID:  getEnv("WHATSAPP_COMPANY_ID", ""),
		WhatsAppAgentID:    getEnv("WHATSAPP_AGENT_ID", ""),

		KafkaBrokers:   getEnvAsList("KAFKA_BROKERS"),
		KafkaDealTopic: getEnv("KAFKA_DEAL_TOPIC", "flight-deals"),
	}

	return config, nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("90s", "6h").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
