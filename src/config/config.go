package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string
	Env        string
	API        APIConfig
	Session    SessionConfig
	Polling    PollingConfig
	Query      QueryConfig
	NotifyTTL  time.Duration
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Store       string // file | postgres | redis
	TokenFile   string
	DatabaseURL string
	Redis       RedisConfig
	ExpirySkew  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PollingConfig struct {
	BalanceInterval     time.Duration
	SnipeInterval       time.Duration
	SnipeStopOnTerminal bool
}

type QueryConfig struct {
	TTL  time.Duration
	Size int
}

// LoadFromEnv reads configuration from environment variables with fallback defaults.
// It also loads `.env` if present (for local development).
func LoadFromEnv() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, relying on environment variables")
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		log.Fatal("[FATAL] API_URL is required")
	}

	store := getEnv("TOKEN_STORE", "file")
	databaseURL := os.Getenv("DATABASE_URL")
	if store == "postgres" && databaseURL == "" {
		log.Fatal("[FATAL] DATABASE_URL is required when TOKEN_STORE=postgres")
	}

	return &Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		Env:        getEnv("ENV", "dev"),
		API: APIConfig{
			BaseURL: apiURL,
			Timeout: mustDuration("HTTP_TIMEOUT", "30s"),
		},
		Session: SessionConfig{
			Store:       store,
			TokenFile:   getEnv("TOKEN_FILE", defaultTokenFile()),
			DatabaseURL: databaseURL,
			Redis: RedisConfig{
				Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
				Password: getEnv("REDIS_PASSWORD", ""),
				DB:       mustInt("REDIS_DB", "0"),
			},
			ExpirySkew: mustDuration("TOKEN_EXPIRY_SKEW", "60s"),
		},
		Polling: PollingConfig{
			BalanceInterval:     mustDuration("BALANCE_POLL_INTERVAL", "10s"),
			SnipeInterval:       mustDuration("SNIPE_POLL_INTERVAL", "3s"),
			SnipeStopOnTerminal: mustBool("SNIPE_POLL_STOP_ON_TERMINAL", "true"),
		},
		Query: QueryConfig{
			TTL:  mustDuration("QUERY_CACHE_TTL", "5s"),
			Size: mustInt("QUERY_CACHE_SIZE", "256"),
		},
		NotifyTTL: mustDuration("NOTIFY_TTL", "5s"),
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tradedesk-token.json"
	}
	return filepath.Join(home, ".tradedesk", "token.json")
}

// helper to get env with default fallback
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(key, fallback string) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		log.Fatalf("[FATAL] Invalid %s duration: %v", key, err)
	}
	return d
}

func mustInt(key, fallback string) int {
	n, err := strconv.Atoi(getEnv(key, fallback))
	if err != nil {
		log.Fatalf("[FATAL] Invalid %s integer: %v", key, err)
	}
	return n
}

func mustBool(key, fallback string) bool {
	b, err := strconv.ParseBool(getEnv(key, fallback))
	if err != nil {
		log.Fatalf("[FATAL] Invalid %s boolean: %v", key, err)
	}
	return b
}
