package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	UploadDir   string
	// Agent identity stamped into generated case numbers
	AgentCode string
	// Access PIN for the login gate (hashed at startup, never kept plain)
	AccessPIN string
	// Email (Resend) for sync failure alerts
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	AlertEmailTo  string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	// Remote snapshot sync interval in minutes; 0 disables the background job
	SyncIntervalMinutes int
	// Turso (remote sqlite endpoint, optional)
	TursoDatabaseURL string
	TursoAuthToken   string
	// Cloudflare R2 Storage (remote object store for snapshots and case files)
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")

	pin := getEnv("ACCESS_PIN", "")
	if pin == "" {
		if environment == "production" {
			log.Fatal("[CRITICAL] ACCESS_PIN must be set in production")
		}
		pin = "500011"
		log.Println("[INFO] Using default development PIN. Set ACCESS_PIN env var to override.")
	}

	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		DBPath:              getEnv("DB_PATH", "db/cockpit.db"),
		Environment:         environment,
		UploadDir:           getEnv("UPLOAD_DIR", "static/uploads"),
		AgentCode:           getEnv("AGENT_CODE", "A017"),
		AccessPIN:           pin,
		ResendAPIKey:        getEnv("RESEND_API_KEY", ""),
		EmailFrom:           getEnv("EMAIL_FROM", "noreply@casecockpit.local"),
		EmailFromName:       getEnv("EMAIL_FROM_NAME", "Case Cockpit"),
		AlertEmailTo:        getEnv("ALERT_EMAIL_TO", ""),
		EmailTestMode:       getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		SyncIntervalMinutes: getEnvInt("SYNC_INTERVAL_MINUTES", 0),
		TursoDatabaseURL:    getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:      getEnv("TURSO_AUTH_TOKEN", ""),
		R2AccountID:         getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:       getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:   getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:        getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:         getEnv("R2_PUBLIC_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n := 0
	for _, c := range value {
		if c < '0' || c > '9' {
			return defaultValue
		}
		n = n*10 + int(c-'0')
	}
	return n
}
