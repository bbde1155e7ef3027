// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration. Provider keys may be empty:
// the server boots without them and reports the gaps through its health
// endpoint instead of refusing to start.
type Config struct {
	Port          string
	PublicBaseURL string // URL this server is reachable at, for locally served audio

	AssemblyAIKey string
	GeminiKey     string
	GeminiModel   string
	MurfKey       string
	MurfVoice     string

	MaxRetries   int
	StageTimeout time.Duration

	PollyFallback bool
	PollyVoice    string
	AWSRegion     string

	LogLevel string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8000"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		AssemblyAIKey: getEnv("ASSEMBLYAI_API_KEY", ""),
		GeminiKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
		MurfKey:       getEnv("MURF_API_KEY", getEnv("API_KEY", "")),
		MurfVoice:     getEnv("MURF_VOICE_ID", "en-US-natalie"),
		MaxRetries:    getEnvInt("STAGE_MAX_RETRIES", 2),
		StageTimeout:  time.Duration(getEnvInt("STAGE_TIMEOUT_SECONDS", 30)) * time.Second,
		PollyFallback: getEnvBool("POLLY_FALLBACK", false),
		PollyVoice:    getEnv("POLLY_VOICE_ID", "Joanna"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + cfg.Port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values make sense. Missing provider
// keys are allowed.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("STAGE_MAX_RETRIES must be >= 0")
	}
	if c.StageTimeout <= 0 {
		return fmt.Errorf("STAGE_TIMEOUT_SECONDS must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
