package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "APP_ENV", "LOG_LEVEL", "LLM_PROVIDER", "GEMINI_API_KEY", "GOOGLE_API_KEY",
		"ANTHROPIC_API_KEY", "LLM_MODEL", "LLM_TIMEOUT", "LLM_TEMPERATURE", "LLM_MAX_TOKENS",
		"LLM_RPS", "LLM_BURST", "KB_PATH", "KB_CACHE_SIZE",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.False(t, cfg.LLM.Enabled())
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 512, cfg.KB.CacheSize)
}

func TestFromEnvGemini(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("GOOGLE_API_KEY", "g-key")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("LLM_RPS", "0.5")

	cfg := FromEnv()
	assert.Equal(t, ":9000", cfg.Port)
	require.True(t, cfg.LLM.Enabled())
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.APIKey)
	assert.Equal(t, defaultGeminiModel, cfg.LLM.Model)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.InDelta(t, 0.5, cfg.LLM.RPS, 1e-9)
}

func TestFromEnvAnthropicAutoDetected(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("LLM_MODEL", "claude-custom")

	cfg := FromEnv()
	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "a-key", cfg.LLM.APIKey)
	assert.Equal(t, "claude-custom", cfg.LLM.Model)
}

func TestFromEnvExplicitProviderWithoutKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg := FromEnv()
	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.False(t, cfg.LLM.Enabled())
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_TIMEOUT", "soon")
	t.Setenv("KB_CACHE_SIZE", "many")
	cfg := FromEnv()
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 512, cfg.KB.CacheSize)
}
