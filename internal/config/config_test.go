package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8090" {
		t.Errorf("expected default port 8090, got %s", cfg.Port)
	}
	if cfg.InputPath != "export.json" {
		t.Errorf("unexpected input path: %s", cfg.InputPath)
	}
	if cfg.ChunksPath != "02_chunks_for_editing_and_summarization.txt" {
		t.Errorf("unexpected chunks path: %s", cfg.ChunksPath)
	}
	if cfg.DatasetPath != "manifesto_fine_tuning_data.json" {
		t.Errorf("unexpected dataset path: %s", cfg.DatasetPath)
	}
	if cfg.LineTolerance != 15 || cfg.ParagraphGap != 40 {
		t.Errorf("unexpected tolerances: %v/%v", cfg.LineTolerance, cfg.ParagraphGap)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h job TTL, got %v", cfg.JobTTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("INPUT_FILE", "scan.json")
	t.Setenv("LINE_TOLERANCE", "8.5")
	t.Setenv("PARAGRAPH_GAP", "60")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("DRAFT_RETRY_DELAY", "5s")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("expected port override, got %s", cfg.Port)
	}
	if cfg.InputPath != "scan.json" {
		t.Errorf("expected input override, got %s", cfg.InputPath)
	}
	if cfg.LineTolerance != 8.5 {
		t.Errorf("expected line tolerance 8.5, got %v", cfg.LineTolerance)
	}
	if cfg.ParagraphGap != 60 {
		t.Errorf("expected paragraph gap 60, got %v", cfg.ParagraphGap)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.WorkerCount)
	}
	if cfg.DraftRetryDelay != 5*time.Second {
		t.Errorf("expected 5s retry delay, got %v", cfg.DraftRetryDelay)
	}
}

func TestLoad_ClampsBadValues(t *testing.T) {
	t.Setenv("LINE_TOLERANCE", "-3")
	t.Setenv("PARAGRAPH_GAP", "10")
	t.Setenv("WORKER_COUNT", "0")

	cfg := Load()

	if cfg.LineTolerance != 15 {
		t.Errorf("expected clamped line tolerance, got %v", cfg.LineTolerance)
	}
	if cfg.ParagraphGap <= cfg.LineTolerance {
		t.Errorf("paragraph gap must exceed line tolerance, got %v <= %v", cfg.ParagraphGap, cfg.LineTolerance)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("expected clamped worker count, got %d", cfg.WorkerCount)
	}
}

func TestLoad_IgnoresUnparsableEnv(t *testing.T) {
	t.Setenv("WORKER_COUNT", "many")
	t.Setenv("DRAFT_TIMEOUT", "soon")

	cfg := Load()

	if cfg.WorkerCount != 2 {
		t.Errorf("expected fallback worker count, got %d", cfg.WorkerCount)
	}
	if cfg.DraftTimeout != 120*time.Second {
		t.Errorf("expected fallback draft timeout, got %v", cfg.DraftTimeout)
	}
}

func TestValidateServe(t *testing.T) {
	cfg := Config{}
	if err := cfg.ValidateServe(); err == nil {
		t.Error("expected error without api key")
	}
	cfg.APIKey = "secret"
	if err := cfg.ValidateServe(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateDraft(t *testing.T) {
	cfg := Config{}
	if err := cfg.ValidateDraft(); err == nil {
		t.Error("expected error without openai key")
	}
	cfg.OpenAIAPIKey = "sk-test"
	if err := cfg.ValidateDraft(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
