package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions
	SecretKey  string
	SessionTTL time.Duration
	RedisAddr  string

	// Object storage (S3)
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSBucketName      string
	AWSRegion          string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	// A .env file never overrides variables already exported in the
	// environment.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "pothole_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SecretKey:  getEnv("SECRET_KEY", ""),
		SessionTTL: parseDuration(getEnv("SESSION_TTL", "24h")),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),

		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSBucketName:      getEnv("AWS_BUCKET_NAME", ""),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
