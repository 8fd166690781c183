package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port              string
	LogLevel          string
	LogPretty         bool
	GeminiAPIKey      string
	GeminiModel       string
	GenerationTimeout time.Duration
	ContextByteBudget int
	ContextRowFloor   int
	ContextRowCeiling int
	MaxUploadBytes    int
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	envErr := godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	if envErr != nil && !os.IsNotExist(envErr) {
		return nil, fmt.Errorf("failed to read .env: %w", envErr)
	}
	return cfg, nil
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "3000"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
	}

	var err error
	if cfg.LogPretty, err = getBool("LOG_PRETTY", true); err != nil {
		return nil, err
	}
	if cfg.GenerationTimeout, err = getDuration("GENERATION_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ContextByteBudget, err = getInt("CONTEXT_BYTE_BUDGET", 65000); err != nil {
		return nil, err
	}
	if cfg.ContextRowFloor, err = getInt("CONTEXT_ROW_FLOOR", 25); err != nil {
		return nil, err
	}
	if cfg.ContextRowCeiling, err = getInt("CONTEXT_ROW_CEILING", 250); err != nil {
		return nil, err
	}
	if cfg.MaxUploadBytes, err = getInt("MAX_UPLOAD_BYTES", 20<<20); err != nil {
		return nil, err
	}

	if cfg.ContextRowFloor < 1 {
		return nil, fmt.Errorf("CONTEXT_ROW_FLOOR must be at least 1")
	}
	if cfg.ContextRowCeiling < cfg.ContextRowFloor {
		return nil, fmt.Errorf("CONTEXT_ROW_CEILING must not be below CONTEXT_ROW_FLOOR")
	}
	if cfg.ContextByteBudget < 1 {
		return nil, fmt.Errorf("CONTEXT_BYTE_BUDGET must be positive")
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func getBool(key string, defaultVal bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultVal, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return v, nil
}
