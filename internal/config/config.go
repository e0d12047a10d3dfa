package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Cart store backends.
const (
	CartStoreCookie = "cookie"
	CartStoreRedis  = "redis"
)

type Config struct {
	Port        string
	DatabaseURL string
	Migrations  string

	CartStore  string // cookie | redis
	CartSecret string
	RedisAddr  string

	Currency  string
	PublicURL string

	P24 Przelewy24

	ResendFrom string

	// optional bootstrap account, created at startup when both are set
	AdminEmail    string
	AdminPassword string
}

type Przelewy24 struct {
	MerchantID int
	PosID      int
	APIKey     string
	CRC        string
	Sandbox    bool
}

// Load reads the configuration from the environment (and .env, when
// present). Missing required keys are logged, not fatal, so local runs
// can start with partial config.
func Load(log *zap.Logger) *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnvDefault("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", log),
		Migrations:  getEnvDefault("MIGRATIONS_PATH", "./migrations"),

		CartStore:  getEnvDefault("CART_STORE", CartStoreCookie),
		CartSecret: getEnv("CART_SECRET", log),
		RedisAddr:  getEnvDefault("REDIS_ADDR", "localhost:6379"),

		Currency:  getEnvDefault("CURRENCY", "PLN"),
		PublicURL: getEnv("PUBLIC_URL", log),

		P24: Przelewy24{
			MerchantID: atoiDefault(os.Getenv("P24_MERCHANT_ID"), 0),
			PosID:      atoiDefault(os.Getenv("P24_POS_ID"), 0),
			APIKey:     getEnv("P24_API_KEY", log),
			CRC:        getEnv("P24_CRC", log),
			Sandbox:    os.Getenv("P24_SANDBOX") == "true",
		},

		ResendFrom: getEnvDefault("RESEND_FROM", "Posadzki Żywiczne <zamowienia@resend.dev>"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Warn("missing environment variable", zap.String("key", key))
	return ""
}

func getEnvDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func atoiDefault(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
