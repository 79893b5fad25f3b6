package summarizer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSummarizeWithLLM(t *testing.T) {
	var gotAuth, gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotModel = req.Model

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "A fine summary."}},
			},
		})
	}))
	defer server.Close()

	s := New("test-key", "openai/gpt-3.5-turbo")
	s.SetAPIURL(server.URL)

	summary, err := s.Summarize("Some transcript text to summarize.")
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if summary != "A fine summary." {
		t.Fatalf("Summarize = %q, want the API content", summary)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotModel != "openai/gpt-3.5-turbo" {
		t.Errorf("model = %q", gotModel)
	}
}

// TestSummarizeFallsBack verifies the extractive fallback covers API failure.
func TestSummarizeFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := New("test-key", "model")
	s.SetAPIURL(server.URL)

	transcript := "First sentence. Second sentence. Third sentence. Fourth sentence. Fifth sentence. Sixth sentence. Seventh sentence."
	summary, err := s.Summarize(transcript)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if !strings.Contains(summary, "First sentence.") {
		t.Fatalf("fallback summary %q missing leading sentence", summary)
	}
	if !strings.Contains(summary, "extractive summary") {
		t.Fatalf("fallback summary %q missing fallback note", summary)
	}
	if strings.Contains(summary, "Seventh sentence") {
		t.Fatalf("fallback summary %q kept more than %d sentences", summary, fallbackSentences)
	}
}

func TestSummarizeNoAPIKeyFallsBack(t *testing.T) {
	s := New("", "model")

	summary, err := s.Summarize("Only one sentence here.")
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if summary != "Only one sentence here." {
		t.Fatalf("Summarize = %q, want the short transcript passed through", summary)
	}
}

func TestSummarizeEmptyTranscript(t *testing.T) {
	s := New("key", "model")
	if _, err := s.Summarize("   "); err == nil {
		t.Fatal("Summarize of empty transcript returned nil error")
	}
}

func TestFallbackSummaryShortInput(t *testing.T) {
	text := "One. Two. Three."
	if got := FallbackSummary(text, 5); got != text {
		t.Fatalf("FallbackSummary = %q, want input unchanged when under limit", got)
	}
}
