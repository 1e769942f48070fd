package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// MaxPromptLength - maximum number of characters kept by utils.FormatPrompt
const MaxPromptLength = 500

// Config - every environment variable the server reads
type Config struct {
	// Server
	Port          string
	AllowedOrigin string

	// Redis (generation history)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool

	// History
	HistoryMaxEntries int
}

var globalConfig *Config

// LoadConfig - load environment variables
func LoadConfig() (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	useTLS := false
	if tlsStr := os.Getenv("REDIS_USE_TLS"); tlsStr != "" {
		parsed, err := strconv.ParseBool(tlsStr)
		if err != nil {
			return nil, fmt.Errorf("REDIS_USE_TLS must be a boolean: %w", err)
		}
		useTLS = parsed
	}

	historyMaxEntries := 100
	if maxStr := os.Getenv("HISTORY_MAX_ENTRIES"); maxStr != "" {
		parsed, err := strconv.Atoi(maxStr)
		if err != nil {
			return nil, fmt.Errorf("HISTORY_MAX_ENTRIES must be an integer: %w", err)
		}
		historyMaxEntries = parsed
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   useTLS,

		HistoryMaxEntries: historyMaxEntries,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	globalConfig = cfg

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Port: %s", cfg.Port)
	if cfg.HistoryEnabled() {
		log.Printf("   Redis: %s (TLS: %v, history: %d entries)", cfg.GetRedisAddr(), cfg.RedisUseTLS, cfg.HistoryMaxEntries)
	} else {
		log.Printf("   Redis: disabled (REDIS_HOST not set)")
	}

	return cfg, nil
}

// GetConfig - config loaded by LoadConfig
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.HistoryMaxEntries <= 0 {
		return fmt.Errorf("HISTORY_MAX_ENTRIES must be positive, got %d", c.HistoryMaxEntries)
	}
	return nil
}

// getEnv - environment variable with a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetRedisAddr - host:port for the Redis client
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// HistoryEnabled - generation history is kept only when Redis is configured
func (c *Config) HistoryEnabled() bool {
	return c.RedisHost != ""
}
