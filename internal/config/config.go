package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

const (
	defaultCatalogURL  = "https://raw.githubusercontent.com/Tarun1203/makwell-electronics/main/products.json"
	defaultImageRoot   = "https://raw.githubusercontent.com/Tarun1203/makwell-electronics/main/"
	defaultPlaceholder = defaultImageRoot + "images/Makwell-logo.png"
)

type Config struct {
	AppPort    string
	AppEnv     string
	CORSOrigin string

	CatalogURL     string
	CatalogFile    string
	CatalogTimeout time.Duration

	ImageRoot      string
	PlaceholderURL string

	StoreDriver string
	StoreFile   string
	StorePrefix string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Brand       string
	Currency    string
	PageSize    int
	SystemTheme string
	SessionIdle time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:    getEnv("APP_PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "development"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		CatalogURL:     getEnv("CATALOG_URL", defaultCatalogURL),
		CatalogFile:    os.Getenv("CATALOG_FILE"),
		CatalogTimeout: getDuration("CATALOG_TIMEOUT", 15*time.Second),

		ImageRoot:      getEnv("IMAGE_ROOT", defaultImageRoot),
		PlaceholderURL: getEnv("PLACEHOLDER_URL", defaultPlaceholder),

		StoreDriver: getEnv("STORE_DRIVER", StoreMemory),
		StoreFile:   getEnv("STORE_FILE", "storefront.json"),
		StorePrefix: getEnv("STORE_PREFIX", "makwell:"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		Brand:       getEnv("BRAND", "MakWell"),
		Currency:    getEnv("CURRENCY", "INR"),
		PageSize:    getInt("PAGE_SIZE", 12),
		SystemTheme: os.Getenv("SYSTEM_THEME"),
		SessionIdle: getDuration("SESSION_IDLE", 30*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// getDuration accepts Go durations ("10s") or plain seconds ("10").
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	log.Printf("invalid %s=%q, using %s", key, v, fallback)
	return fallback
}
