package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/sumforge/internal/ocr"
)

func TestJobStatusTransitions(t *testing.T) {
	job := &Job{ID: "j1", Mode: ModeProcess, Status: StatusQueued, CreatedAt: time.Now()}

	job.SetStatus(StatusReassembling, "reassembling text")
	if job.Status != StatusReassembling {
		t.Errorf("expected reassembling, got %s", job.Status)
	}
	if job.Phase != "reassembling text" {
		t.Errorf("unexpected phase: %s", job.Phase)
	}

	job.SetStatus(StatusCompleted, "done")
	if job.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", job.Status)
	}
}

func TestJobAddError(t *testing.T) {
	job := &Job{ID: "j1", Status: StatusQueued}
	job.AddError("first")
	job.AddError("second")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "first" || snap.Progress.Errors[1] != "second" {
		t.Errorf("unexpected errors: %v", snap.Progress.Errors)
	}
}

func TestJobResult(t *testing.T) {
	job := &Job{ID: "j1"}
	job.SetResult([]byte("payload"), "text/plain; charset=utf-8")

	data, contentType := job.Result()
	if string(data) != "payload" {
		t.Errorf("unexpected result data: %q", data)
	}
	if contentType != "text/plain; charset=utf-8" {
		t.Errorf("unexpected content type: %q", contentType)
	}
}

func TestJobSnapshot_ErrorsNeverNil(t *testing.T) {
	job := &Job{ID: "j1", Status: StatusQueued}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Fatal("snapshot errors must not be nil")
	}

	out, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `"errors":[]`) {
		t.Errorf("expected empty errors array in JSON, got %s", out)
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "j1", UpdatedAt: time.Now()}
	store.Put(job)

	if got := store.Get("j1"); got != job {
		t.Error("expected stored job back")
	}
	if got := store.Get("missing"); got != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestJobStore_CleanupEvictsExpired(t *testing.T) {
	store := NewJobStore(time.Minute)
	fresh := &Job{ID: "fresh", UpdatedAt: time.Now()}
	stale := &Job{ID: "stale", UpdatedAt: time.Now().Add(-2 * time.Minute)}
	store.Put(fresh)
	store.Put(stale)

	store.Cleanup()

	if store.Get("fresh") == nil {
		t.Error("fresh job must survive cleanup")
	}
	if store.Get("stale") != nil {
		t.Error("stale job must be evicted")
	}
}

func newTestWorker() *Worker {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWorker(nil, log, ocr.DefaultOptions())
}

func TestWorkerProcess_ChunksUpload(t *testing.T) {
	job := &Job{ID: "j1", Mode: ModeProcess, Filename: "manifesto.txt", Status: StatusQueued}
	job.SetFileData([]byte("First point.\n\nSecond point.\n"))

	newTestWorker().Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (errors: %v)", job.Status, job.Progress.Errors)
	}
	if job.Progress.Chunks != 2 {
		t.Errorf("expected 2 chunks, got %d", job.Progress.Chunks)
	}

	data, contentType := job.Result()
	if contentType != "text/plain; charset=utf-8" {
		t.Errorf("unexpected content type: %q", contentType)
	}
	if !strings.Contains(string(data), "--- CHUNK 1 ---") {
		t.Errorf("expected marked chunks, got %q", data)
	}
}

func TestWorkerProcess_Merge(t *testing.T) {
	job := &Job{ID: "j1", Mode: ModeMerge, Status: StatusQueued}
	job.SetFileData([]byte("--- CHUNK 1 ---\nPolicy text.\n--- END CHUNK 1 ---\n"))
	job.SetSummariesData([]byte("A summary.\n"))

	newTestWorker().Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (errors: %v)", job.Status, job.Progress.Errors)
	}
	if job.Progress.Records != 1 {
		t.Errorf("expected 1 record, got %d", job.Progress.Records)
	}
	_, contentType := job.Result()
	if contentType != "application/json" {
		t.Errorf("unexpected content type: %q", contentType)
	}
}

func TestWorkerProcess_FailureRecordsError(t *testing.T) {
	job := &Job{ID: "j1", Mode: ModeProcess, Filename: "export.json", Status: StatusQueued}
	job.SetFileData([]byte("not json"))

	newTestWorker().Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", job.Status)
	}
	if len(job.Progress.Errors) == 0 {
		t.Error("expected at least one recorded error")
	}
}

func TestWorkerProcess_DraftWithoutClient(t *testing.T) {
	job := &Job{ID: "j1", Mode: ModeDraft, Status: StatusQueued}
	job.SetFileData([]byte("--- CHUNK 1 ---\nText.\n--- END CHUNK 1 ---\n"))

	newTestWorker().Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("expected failed without a draft client, got %s", job.Status)
	}
}
