// Package config loads configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds runtime settings.
type Config struct {
	OpenAIAPIKey   string
	DatabaseURL    string
	ChatModel      string
	HTTPAddr       string
	RequestTimeout time.Duration
	HistoryLimit   int
	MaxTokens      int
	Temperature    float64
}

// Load reads env vars, applies defaults, and validates required
// fields. DATABASE_URL is optional: without it the service runs with
// persistence disabled.
func Load() Config {
	cfg := Config{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		ChatModel:    os.Getenv("CHAT_MODEL"),
		HTTPAddr:     os.Getenv("HTTP_ADDR"),
	}

	cfg.RequestTimeout = time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second
	cfg.HistoryLimit = getEnvInt("HISTORY_LIMIT", 10)
	cfg.MaxTokens = getEnvInt("MAX_TOKENS", 512)
	cfg.Temperature = getEnvFloat("TEMPERATURE", 0.7)

	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4o-mini"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	if cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}

	return cfg
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}
