package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"

	defaultGeminiModel    = "gemini-2.5-flash"
	defaultAnthropicModel = "claude-sonnet-4-5"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string
	LLM      LLMConfig
	KB       KBConfig
}

// LLMConfig configures the optional generative backend. An empty APIKey is a
// supported configuration: recommendations then come from the knowledge base.
type LLMConfig struct {
	Provider    string
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	RPS         float64
	Burst       int
}

// Enabled reports whether a generative credential is configured.
func (c LLMConfig) Enabled() bool { return strings.TrimSpace(c.APIKey) != "" }

type KBConfig struct {
	Path      string
	CacheSize int
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(), nil
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() *Config {
	port := firstNonEmpty(strings.TrimSpace(os.Getenv("PORT")), ":8080")
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		port = ":" + port
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:     port,
		Env:      env,
		LogLevel: firstNonEmpty(strings.TrimSpace(os.Getenv("LOG_LEVEL")), "info"),
		LLM:      loadLLMConfig(),
		KB: KBConfig{
			Path:      strings.TrimSpace(os.Getenv("KB_PATH")),
			CacheSize: envInt("KB_CACHE_SIZE", 512),
		},
	}
}

func loadLLMConfig() LLMConfig {
	geminiKey := firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_API_KEY")), strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")))
	anthropicKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))

	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	if provider == "" {
		provider = resolveProvider(geminiKey, anthropicKey)
	}

	var key, model string
	switch provider {
	case ProviderAnthropic:
		key, model = anthropicKey, defaultAnthropicModel
	default:
		provider = ProviderGemini
		key, model = geminiKey, defaultGeminiModel
	}

	return LLMConfig{
		Provider:    provider,
		APIKey:      key,
		Model:       firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_MODEL")), model),
		Timeout:     envDuration("LLM_TIMEOUT", 20*time.Second),
		Temperature: envFloat("LLM_TEMPERATURE", 0.3),
		MaxTokens:   envInt("LLM_MAX_TOKENS", 2048),
		RPS:         envFloat("LLM_RPS", 0),
		Burst:       envInt("LLM_BURST", 0),
	}
}

// resolveProvider prefers Gemini when both keys are present.
func resolveProvider(geminiKey, anthropicKey string) string {
	if geminiKey == "" && anthropicKey != "" {
		return ProviderAnthropic
	}
	return ProviderGemini
}

func envInt(name string, def int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func envFloat(name string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func envDuration(name string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
