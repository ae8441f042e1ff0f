package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the vegan analyze service.
type Config struct {
	// Server configuration
	Port string

	// LLM provider selection: "openai" (default) or "gemini" or "stub"
	LLMProvider string

	// OpenAI configuration
	OpenAIAPIKey string
	OpenAIModel  string

	// Gemini configuration
	GeminiAPIKey string
	GeminiModel  string

	// Bound on the model's response length, in tokens
	MaxResponseTokens int

	// Per-request timeout for the external model call
	LLMTimeout time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server defaults
		Port: getEnv("PORT", "8080"),

		// Provider defaults
		LLMProvider:  getEnv("LLM_PROVIDER", "openai"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		// Analysis defaults
		MaxResponseTokens: getIntEnv("MAX_RESPONSE_TOKENS", 300),
		LLMTimeout:        getDurationEnv("LLM_TIMEOUT", 60*time.Second),

		// Logging defaults
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
