package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/eathindhar/murf-voice-agents/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears key for the duration of the test, restoring any prior
// value afterwards.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	_ = os.Unsetenv(key)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "PUBLIC_BASE_URL",
		"ASSEMBLYAI_API_KEY", "GEMINI_API_KEY", "GEMINI_MODEL",
		"MURF_API_KEY", "API_KEY", "MURF_VOICE_ID",
		"STAGE_MAX_RETRIES", "STAGE_TIMEOUT_SECONDS",
		"POLLY_FALLBACK", "POLLY_VOICE_ID", "AWS_REGION",
		"LOG_LEVEL",
	} {
		unsetenv(t, key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.PublicBaseURL)
	assert.Empty(t, cfg.AssemblyAIKey, "missing provider keys are not an error")
	assert.Empty(t, cfg.GeminiKey)
	assert.Empty(t, cfg.MurfKey)
	assert.Equal(t, "gemini-2.0-flash-exp", cfg.GeminiModel)
	assert.Equal(t, "en-US-natalie", cfg.MurfVoice)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.StageTimeout)
	assert.False(t, cfg.PollyFallback)
	assert.Equal(t, "Joanna", cfg.PollyVoice)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Explicit(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("PUBLIC_BASE_URL", "https://agents.example.com")
	t.Setenv("ASSEMBLYAI_API_KEY", "aai-key")
	t.Setenv("GEMINI_API_KEY", "gm-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("MURF_API_KEY", "murf-key")
	t.Setenv("MURF_VOICE_ID", "en-UK-ruby")
	t.Setenv("STAGE_MAX_RETRIES", "5")
	t.Setenv("STAGE_TIMEOUT_SECONDS", "10")
	t.Setenv("POLLY_FALLBACK", "true")
	t.Setenv("POLLY_VOICE_ID", "Amy")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://agents.example.com", cfg.PublicBaseURL)
	assert.Equal(t, "aai-key", cfg.AssemblyAIKey)
	assert.Equal(t, "gm-key", cfg.GeminiKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, "murf-key", cfg.MurfKey)
	assert.Equal(t, "en-UK-ruby", cfg.MurfVoice)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.StageTimeout)
	assert.True(t, cfg.PollyFallback)
	assert.Equal(t, "Amy", cfg.PollyVoice)
	assert.Equal(t, "eu-west-1", cfg.AWSRegion)
}

func TestLoad_LegacyMurfKey(t *testing.T) {
	t.Run("API_KEY fills in", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("API_KEY", "legacy-key")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "legacy-key", cfg.MurfKey)
	})

	t.Run("MURF_API_KEY wins", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("API_KEY", "legacy-key")
		t.Setenv("MURF_API_KEY", "new-key")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "new-key", cfg.MurfKey)
	})
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("zero stage timeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STAGE_TIMEOUT_SECONDS", "0")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("negative retries", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STAGE_MAX_RETRIES", "-1")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("unparseable int falls back", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STAGE_MAX_RETRIES", "banana")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.MaxRetries)
	})
}
