package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "LOG_PRETTY", "GEMINI_API_KEY", "GEMINI_MODEL",
		"GENERATION_TIMEOUT", "CONTEXT_BYTE_BUDGET", "CONTEXT_ROW_FLOOR", "CONTEXT_ROW_CEILING", "MAX_UPLOAD_BYTES"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, 30*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, 65000, cfg.ContextByteBudget)
	assert.Equal(t, 25, cfg.ContextRowFloor)
	assert.Equal(t, 250, cfg.ContextRowCeiling)
	assert.Equal(t, 20<<20, cfg.MaxUploadBytes)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("GENERATION_TIMEOUT", "5s")
	t.Setenv("CONTEXT_ROW_FLOOR", "10")
	t.Setenv("CONTEXT_ROW_CEILING", "50")
	t.Setenv("LOG_PRETTY", "false")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, 10, cfg.ContextRowFloor)
	assert.Equal(t, 50, cfg.ContextRowCeiling)
	assert.False(t, cfg.LogPretty)
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"CONTEXT_BYTE_BUDGET", "lots"},
		{"CONTEXT_ROW_FLOOR", "0"},
		{"GENERATION_TIMEOUT", "soon"},
		{"LOG_PRETTY", "maybe"},
	}
	for _, c := range cases {
		t.Run(c.key, func(t *testing.T) {
			t.Setenv(c.key, c.value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}

	t.Run("ceiling below floor", func(t *testing.T) {
		t.Setenv("CONTEXT_ROW_FLOOR", "30")
		t.Setenv("CONTEXT_ROW_CEILING", "20")
		_, err := FromEnv()
		assert.Error(t, err)
	})
}
