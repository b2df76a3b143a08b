package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Port             string
	StoreDriver      string
	MongoURI         string
	DBName           string
	DatabaseURL      string
	JWTSecret        string
	AdminEmails      []string
	AccessPolicyFile string
	ProtectAdminAPI  bool
	OrderIntakeMode  string
	LogLevel         string
	LogFormat        string
	CORSOrigins      []string
	RateLimitRPS     float64
	RateLimitBurst   int
	RateLimitIdleTTL time.Duration
	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means the socket peer is the client.
	TrustedProxies   []string
}

// Load reads an optional .env file and then the process environment.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = FromEnv()
}

// FromEnv builds a Config from the current environment without touching
// .env files.
func FromEnv() Config {
	return Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		StoreDriver:      getEnvOrDefault("STORE_DRIVER", "memory"),
		MongoURI:         getEnvOrDefault("MONGO_URI", ""),
		DBName:           getEnvOrDefault("DB_NAME", "catering"),
		DatabaseURL:      getEnvOrDefault("DATABASE_URL", ""),
		JWTSecret:        getEnvOrDefault("JWT_SECRET", ""),
		AdminEmails:      getListEnv("ADMIN_EMAILS"),
		AccessPolicyFile: getEnvOrDefault("ACCESS_POLICY_FILE", ""),
		ProtectAdminAPI:  getBoolEnv("PROTECT_ADMIN_API", false),
		OrderIntakeMode:  getEnvOrDefault("ORDER_INTAKE_MODE", "best_effort"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        getEnvOrDefault("LOG_FORMAT", "json"),
		CORSOrigins:      getListEnvOrDefault("CORS_ORIGINS", []string{"*"}),
		RateLimitRPS:     getFloatEnv("RATE_LIMIT_RPS", 0),
		RateLimitBurst:   getIntEnv("RATE_LIMIT_BURST", 10),
		RateLimitIdleTTL: getDurationEnv("RATE_LIMIT_IDLE_TTL", 10, time.Minute),
		TrustedProxies:   getListEnv("TRUSTED_PROXIES"),
	}
}
