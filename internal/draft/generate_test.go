package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/sumforge/internal/chunk"
)

// fakeCompletions serves a minimal chat completions endpoint whose
// reply embeds a counter, so ordering is observable.
func fakeCompletions(t *testing.T, fail *int) *httptest.Server {
	t.Helper()
	calls := 0
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "election manifesto") {
			t.Errorf("request missing prompt wrapper: %s", body)
		}

		calls++
		if fail != nil && *fail > 0 {
			*fail--
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":      "cmpl-test",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": fmt.Sprintf("Draft summary %d.", calls),
					},
				},
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Error(err)
		}
	}))
}

func testClient(baseURL string) *Client {
	return NewClient(Config{
		APIKey:     "test-key",
		Model:      "gpt-4o-mini",
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
		BaseURL:    baseURL,
	})
}

func TestGenerate_OneSummaryPerChunk(t *testing.T) {
	srv := fakeCompletions(t, nil)
	defer srv.Close()

	chunks := []chunk.Chunk{
		{Ordinal: 1, Text: "Tax policy."},
		{Ordinal: 2, Text: "Wage policy."},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	summaries, err := Generate(context.Background(), testClient(srv.URL), chunks, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	// Sequential calls keep chunk order aligned with line order.
	if summaries[0] != "Draft summary 1." || summaries[1] != "Draft summary 2." {
		t.Errorf("summaries out of order: %v", summaries)
	}
}

func TestSummarize_RetriesTransientFailure(t *testing.T) {
	fail := 2
	srv := fakeCompletions(t, &fail)
	defer srv.Close()

	c := testClient(srv.URL)
	got, err := c.Summarize(context.Background(), "Policy text.")
	if err != nil {
		t.Fatalf("expected retries to recover, got %v", err)
	}
	if got == "" {
		t.Fatal("expected a non-empty draft")
	}
	if fail != 0 {
		t.Errorf("expected both failures consumed, %d left", fail)
	}

	if c.Stats.Snapshot().Count != 3 {
		t.Errorf("expected 3 recorded calls, got %d", c.Stats.Snapshot().Count)
	}
}

func TestSummarize_GivesUpAfterRetries(t *testing.T) {
	fail := 100
	srv := fakeCompletions(t, &fail)
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.Summarize(context.Background(), "Policy text."); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
}
