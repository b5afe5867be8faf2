package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const APIKeyEnv = "GOOGLE_API_KEY"

type Config struct {
	AppEnv, AppPort   string
	SessionCookieName string
	CORSOrigins       []string

	GenerationProvider string

	// Transport settings shared by every generation source.
	GenerationTimeout time.Duration
	GenerationRPS     int
	GenerationBurst   int
	GenerationDryRun  bool

	GoogleAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	OpenAIKey, OpenAIModel       string
	AnthropicKey, AnthropicModel string

	BreakerMaxFailures int
	BreakerCooldown    time.Duration

	MCQMaxQuestions     int
	MCQDefaultQuestions int

	CatalogDir string
	DBDSN      string

	RedisAddr    string
	RedisDB      int
	QuizCacheTTL time.Duration

	RateLimitMax    int
	RateLimitWindow time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppEnv:              get("APP_ENV", "dev"),
		AppPort:             get("APP_PORT", "8080"),
		SessionCookieName:   get("SESSION_COOKIE_NAME", "bookquiz_sid"),
		CORSOrigins:         GetEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		GenerationProvider:  strings.ToLower(get("GENERATION_PROVIDER", "gemini")),
		GoogleAPIKey:        get(APIKeyEnv, ""),
		GeminiModel:         get("GEMINI_MODEL", "gemini-pro"),
		GeminiBaseURL:       get("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GenerationTimeout:   mustDuration(get("GENERATION_TIMEOUT", get("GEMINI_TIMEOUT", "60s"))),
		GenerationRPS:       GetEnvInt("GENERATION_RPS", GetEnvInt("GEMINI_RPS", 2)),
		GenerationBurst:     GetEnvInt("GENERATION_BURST", GetEnvInt("GEMINI_BURST", 2)),
		GenerationDryRun:    parseBool(get("GENERATION_DRY_RUN", get("GEMINI_DRY_RUN", "false"))),
		OpenAIKey:           get("OPENAI_API_KEY", ""),
		OpenAIModel:         get("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicKey:        get("ANTHROPIC_API_KEY", ""),
		AnthropicModel:      get("ANTHROPIC_MODEL", "claude-3-5-sonnet-latest"),
		BreakerMaxFailures:  GetEnvInt("BREAKER_MAX_FAILURES", 5),
		BreakerCooldown:     mustDuration(get("BREAKER_COOLDOWN", "30s")),
		MCQMaxQuestions:     GetEnvInt("MCQ_MAX_QUESTIONS", 20),
		MCQDefaultQuestions: GetEnvInt("MCQ_DEFAULT_QUESTIONS", 5),
		CatalogDir:          get("CATALOG_DIR", "data"),
		DBDSN:               get("DB_DSN", ""),
		RedisAddr:           get("REDIS_ADDR", ""),
		RedisDB:             atoi(get("REDIS_DB", "0")),
		QuizCacheTTL:        mustDuration(get("QUIZ_CACHE_TTL", "1h")),
		RateLimitMax:        GetEnvInt("RATE_LIMIT_MAX", 10),
		RateLimitWindow:     mustDuration(get("RATE_LIMIT_WINDOW", "1m")),
	}
	return c
}

// SetAPIKey overrides the credential of the source named by GenerationProvider.
func (c *Config) SetAPIKey(key string) {
	switch c.GenerationProvider {
	case "openai":
		c.OpenAIKey = key
	case "anthropic", "claude":
		c.AnthropicKey = key
	default:
		c.GoogleAPIKey = key
	}
}

// IsProd reports whether the app runs with production defaults.
func (c *Config) IsProd() bool { return c.AppEnv == "prod" || c.AppEnv == "production" }

func GetEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return d
}

// GetEnvList splits a comma separated value, dropping blank items.
func GetEnvList(k string, d []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func get(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func atoi(s string) int       { i, _ := strconv.Atoi(s); return i }
func parseBool(s string) bool { b, _ := strconv.ParseBool(s); return b }

// mustDuration falls back to zero on a malformed value; callers treat zero as "disabled".
func mustDuration(s string) time.Duration { d, _ := time.ParseDuration(s); return d }

func GetEnv(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
