package config

import (
	"os"
	"strconv"
)

// ProxyConfig holds settings for the outbound AI completion proxy.
// URL and AuthToken carry no defaults: they are deployment secrets and must
// come from the environment.
type ProxyConfig struct {
	URL              string
	AuthToken        string
	TimeoutSec       int
	MaxResponseBytes int64
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost string
	Port    string
	Proxy   ProxyConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Proxy: ProxyConfig{
			URL:              getEnv("PROXY_URL", ""),
			AuthToken:        getEnv("PROXY_AUTH_TOKEN", ""),
			TimeoutSec:       getEnvInt("PROXY_TIMEOUT_SEC", 30),
			MaxResponseBytes: getEnvInt64("PROXY_MAX_RESPONSE_BYTES", 8192),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}
