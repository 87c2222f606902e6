package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth for the HTTP service mode.
	APIKey string

	// Pipeline artifacts
	InputPath       string
	ReassembledPath string
	ChunksPath      string
	SummariesPath   string
	DatasetPath     string

	// Reassembly tuning. The tolerances are layout heuristics, not
	// contract: they depend on the scan resolution of the source.
	LineTolerance float64
	ParagraphGap  float64

	// Draft summary generation
	OpenAIAPIKey    string
	OpenAIModel     string
	DraftMaxRetries int
	DraftRetryDelay time.Duration
	DraftTimeout    time.Duration

	// Service mode
	WorkerCount    int
	MaxQueueSize   int
	MaxUploadBytes int64
	JobTTL         time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("SUMFORGE_API_KEY"),

		InputPath:       envOr("INPUT_FILE", "export.json"),
		ReassembledPath: envOr("REASSEMBLED_FILE", "01_reassembled_text.txt"),
		ChunksPath:      envOr("CHUNKS_FILE", "02_chunks_for_editing_and_summarization.txt"),
		SummariesPath:   envOr("SUMMARIES_FILE", "03_summaries.txt"),
		DatasetPath:     envOr("DATASET_FILE", "manifesto_fine_tuning_data.json"),

		LineTolerance: envFloat("LINE_TOLERANCE", 15),
		ParagraphGap:  envFloat("PARAGRAPH_GAP", 40),

		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     envOr("OPENAI_MODEL", "gpt-4o-mini"),
		DraftMaxRetries: envInt("DRAFT_MAX_RETRIES", 3),
		DraftRetryDelay: envDuration("DRAFT_RETRY_DELAY", 2*time.Second),
		DraftTimeout:    envDuration("DRAFT_TIMEOUT", 120*time.Second),

		WorkerCount:    envInt("WORKER_COUNT", 2),
		MaxQueueSize:   envInt("MAX_QUEUE_SIZE", 50),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 33554432), // 32MB
		JobTTL:         envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.LineTolerance <= 0 {
		cfg.LineTolerance = 15
	}
	if cfg.ParagraphGap <= cfg.LineTolerance {
		cfg.ParagraphGap = cfg.LineTolerance + 25
	}
	if cfg.DraftMaxRetries <= 0 {
		cfg.DraftMaxRetries = 3
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 33554432
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// ValidateServe checks the settings required by the HTTP service mode.
func (c Config) ValidateServe() error {
	if c.APIKey == "" {
		return fmt.Errorf("SUMFORGE_API_KEY is required")
	}
	return nil
}

// ValidateDraft checks the settings required by draft summary generation.
func (c Config) ValidateDraft() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
