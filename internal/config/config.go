package config

import (
	"os"
	"strconv"
	"time"
)

// Persistence and storage backend names
const (
	BackendPostgres = "postgres"
	BackendBadger   = "badger"
	BackendS3       = "s3"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Persistence
	PersistenceBackend string
	DatabaseURL        string
	TablePrefix        string
	BadgerDir          string
	// Object storage
	StorageBackend    string
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3KeyPrefix       string
	SignedURLTTL      time.Duration
	// Identity
	SupabaseURL     string
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json
	SupabaseKey     string // Service role key, only used by the seeder
	DevUserID       string // Skips JWT verification in dev when set
	// Logging
	LogDir      string
	LogMaxFiles int
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := getEnv("SUPABASE_URL", "")

	// Construct JWKS URL from Supabase URL
	jwksURL := ""
	if supabaseURL != "" {
		jwksURL = supabaseURL + "/auth/v1/.well-known/jwks.json"
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		PersistenceBackend: getEnv("PERSISTENCE_BACKEND", BackendPostgres),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		TablePrefix:        getTablePrefix(env),
		BadgerDir:          getEnv("BADGER_DIR", "./data/badger"),

		StorageBackend:    getEnv("STORAGE_BACKEND", BackendS3),
		S3Bucket:          getEnv("S3_BUCKET", "data-rooms"),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3KeyPrefix:       getEnv("S3_KEY_PREFIX", ""),
		SignedURLTTL:      time.Duration(getEnvInt("SIGNED_URL_TTL_SECONDS", DefaultSignedURLTTLSeconds)) * time.Second,

		SupabaseURL:     supabaseURL,
		SupabaseJWKSURL: jwksURL,
		SupabaseKey:     getEnv("SUPABASE_KEY", ""),
		DevUserID:       getDevUserID(env),

		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),

		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDevUserID only honours DEV_USER_ID outside production
func getDevUserID(env string) string {
	if env == "prod" {
		return ""
	}
	return os.Getenv("DEV_USER_ID")
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
