package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config carries every tunable of the pipeline. Thresholds and limits
// are injected into components at construction; nothing reads the
// environment after startup.
type Config struct {
	Port   string `validate:"required"`
	APIKey string // empty disables auth on the API

	// External capability (OpenAI-compatible chat completions).
	LLMProvider string        `validate:"oneof=deepseek fake"`
	LLMAPIKey   string
	LLMModel    string        `validate:"required"`
	LLMBaseURL  string        `validate:"required,url"`
	LLMTimeout  time.Duration `validate:"gt=0"`
	LLMRetries  int           `validate:"gte=0,lte=10"`
	LLMBackoff  time.Duration `validate:"gte=0"`

	// Classifier thresholds.
	RuleThreshold      float64 `validate:"gte=0,lte=1"`
	ForceThreshold     float64 `validate:"gte=0,lte=1"`
	ClassifyCharBudget int     `validate:"gt=0"`

	// Rewriter chunk limits (characters).
	ChunkSoftLimit      int `validate:"gt=0"`
	ChunkHardLimit      int `validate:"gt=0,gtefield=ChunkSoftLimit"`
	MaxConcurrentChunks int `validate:"gt=0"`

	// Guide builder.
	GuideCharBudget int `validate:"gt=0"`

	// Verifier.
	VerifyCharBudget int `validate:"gt=0"`

	// Sampling temperatures per call site.
	ClassifyTemperature float64 `validate:"gte=0,lte=2"`
	RewriteTemperature  float64 `validate:"gte=0,lte=2"`
	GuideTemperature    float64 `validate:"gte=0,lte=2"`
	VerifyTemperature   float64 `validate:"gte=0,lte=2"`

	// Ingestion.
	MaxUploadBytes       int64 `validate:"gt=0"`
	DefaultLanguage      string
	PDFFallbackPdftotext bool
	TesseractPath        string

	// Batch endpoint.
	MaxBatchDocs      int `validate:"gt=0"`
	MaxConcurrentDocs int `validate:"gt=0"`

	// LLM stats rolling window.
	StatsWindow time.Duration `validate:"gt=0"`
}

// Load reads configuration from the environment, honoring a local .env
// file when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:   envOr("PORT", "8080"),
		APIKey: os.Getenv("LEXCLARO_API_KEY"),

		LLMProvider: envOr("LLM_PROVIDER", "deepseek"),
		LLMAPIKey:   envOr("LLM_API_KEY", os.Getenv("DEEPSEEK_API_KEY")),
		LLMModel:    envOr("LLM_MODEL", "deepseek-chat"),
		LLMBaseURL:  envOr("LLM_BASE_URL", "https://api.deepseek.com"),
		LLMTimeout:  envDuration("LLM_TIMEOUT", 60*time.Second),
		LLMRetries:  envInt("LLM_RETRIES", 2),
		LLMBackoff:  envDuration("LLM_BACKOFF", 2*time.Second),

		RuleThreshold:      envFloat("CLASSIFY_RULE_THRESHOLD", 0.8),
		ForceThreshold:     envFloat("CLASSIFY_FORCE_THRESHOLD", 0.5),
		ClassifyCharBudget: envInt("CLASSIFY_CHAR_BUDGET", 6000),

		ChunkSoftLimit:      envInt("CHUNK_SOFT_LIMIT", 12000),
		ChunkHardLimit:      envInt("CHUNK_HARD_LIMIT", 16000),
		MaxConcurrentChunks: envInt("MAX_CONCURRENT_CHUNKS", 3),

		GuideCharBudget: envInt("GUIDE_CHAR_BUDGET", 6000),

		VerifyCharBudget: envInt("VERIFY_CHAR_BUDGET", 6000),

		ClassifyTemperature: envFloat("CLASSIFY_TEMPERATURE", 0.0),
		RewriteTemperature:  envFloat("REWRITE_TEMPERATURE", 0.3),
		GuideTemperature:    envFloat("GUIDE_TEMPERATURE", 0.25),
		VerifyTemperature:   envFloat("VERIFY_TEMPERATURE", 0.0),

		MaxUploadBytes:       envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB
		DefaultLanguage:      envOr("DEFAULT_LANGUAGE", "spa"),
		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
		TesseractPath:        envOr("TESSERACT_PATH", "tesseract"),

		MaxBatchDocs:      envInt("MAX_BATCH_DOCS", 10),
		MaxConcurrentDocs: envInt("MAX_CONCURRENT_DOCS", 2),

		StatsWindow: envDuration("STATS_WINDOW", time.Hour),
	}
}

// Validate checks structural constraints plus provider-specific ones.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.LLMProvider == "deepseek" && c.LLMAPIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required when LLM_PROVIDER=deepseek")
	}
	if c.ForceThreshold > c.RuleThreshold {
		return fmt.Errorf("CLASSIFY_FORCE_THRESHOLD (%.2f) must not exceed CLASSIFY_RULE_THRESHOLD (%.2f)", c.ForceThreshold, c.RuleThreshold)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
