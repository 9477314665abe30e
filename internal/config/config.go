package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	StoreBackend  string
	DBUrl         string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	BadgerDir     string

	JWTSecret     string
	ScopeTokenTTL time.Duration

	RateLimit float64
	RateBurst int

	LogLevel string
	LogFile  string

	SeedOnStart bool
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, using defaults")
	}

	return Config{
		Port:          getEnv("PORT", "8080"),
		StoreBackend:  getEnv("STORE_BACKEND", "memory"),
		DBUrl:         os.Getenv("DB_URL"),
		SQLitePath:    getEnv("SQLITE_PATH", "storefront.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		BadgerDir:     getEnv("BADGER_DIR", "data/badger"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		ScopeTokenTTL: getEnvDuration("SCOPE_TOKEN_TTL", 30*24*time.Hour),
		RateLimit:     getEnvFloat("RATE_LIMIT", 10),
		RateBurst:     getEnvInt("RATE_BURST", 20),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       os.Getenv("LOG_FILE"),
		SeedOnStart:   getEnvBool("SEED_ON_START", true),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return i
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
