package config

import (
	"github.com/joho/godotenv"
	"log"
	"os"
	"strconv"
	"time"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	URLExpiry  time.Duration
}

type Config struct {
	ServerPort int
	DBUser     DB
	DBFeed     DB
	MinIO      MinIO
	// SessionHashKey signs the session cookie, SessionBlockKey encrypts it
	// (must be 16, 24 or 32 bytes for AES).
	SessionHashKey  string
	SessionBlockKey string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

// LoadDB reads one logical store's connection settings. Each store gets its
// own env prefix (DB_USER_..., DB_FEED_...) so the pools stay independent.
func LoadDB(prefix, defaultName string) DB {
	return DB{
		DbHOST:     getEnv(prefix+"_HOST", "localhost"),
		DbPORT:     getEnv(prefix+"_PORT", "5432"),
		DbUSER:     getEnv(prefix+"_USER", "postgres"),
		DbPASSWORD: getEnv(prefix+"_PASSWORD", "password"),
		DbNAME:     getEnv(prefix+"_NAME", defaultName),
		DbSSLMODE:  getEnv(prefix+"_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "images"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		URLExpiry:  parseDuration(getEnv("MINIO_URL_EXPIRY", "1h"), time.Hour),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:      getEnvAsInt("SERVER_PORT", 8080),
		DBUser:          LoadDB("DB_USER", "user"),
		DBFeed:          LoadDB("DB_FEED", "feed"),
		MinIO:           LoadMinIO(),
		SessionHashKey:  getEnv("SESSION_HASH_KEY", ""),
		SessionBlockKey: getEnv("SESSION_BLOCK_KEY", ""),
	}
}
