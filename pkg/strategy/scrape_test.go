package strategy

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"yt-digest/pkg/domain"
)

// chdir changes the working directory for the duration of the test; it stands
// in for t.Chdir, which needs Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("chdir back: %v", err)
		}
	})
}

// newScrapeServer serves a minimal scraping target: a landing page, a query
// response with one download anchor, and the SRT payload behind it.
func newScrapeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`<html><body>
<a href="/download?f=en.srt">Download SRT (en)</a>
</body></html>`))
			return
		}
		w.Write([]byte(`<html><body>landing</body></html>`))
	})
	mux.HandleFunc("/download", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("1\n00:00:01,000 --> 00:00:02,000\nfirst line\n\n2\n00:00:02,000 --> 00:00:03,000\nsecond line\n"))
	})
	return httptest.NewServer(mux)
}

func TestScrapeStrategyEndToEnd(t *testing.T) {
	chdir(t, t.TempDir())
	server := newScrapeServer(t)
	defer server.Close()

	s := NewScrapeStrategyAt(server.URL, 0)
	result, err := s.Attempt(testRequest())
	if err != nil {
		t.Fatalf("Attempt returned error: %v", err)
	}
	if result.Strategy != domain.StrategyScrape {
		t.Fatalf("result strategy = %q, want scrape", result.Strategy)
	}
	if want := "first line second line"; result.Text != want {
		t.Fatalf("result text = %q, want %q", result.Text, want)
	}
}

func TestScrapeStrategySubtitlesDisabled(t *testing.T) {
	chdir(t, t.TempDir())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Subtitles are disabled for this video.</p></body></html>`))
	}))
	defer server.Close()

	s := NewScrapeStrategyAt(server.URL, 0)
	_, err := s.Attempt(testRequest())
	if !errors.Is(err, ErrSubtitlesDisabled) {
		t.Fatalf("Attempt error = %v, want ErrSubtitlesDisabled", err)
	}
}

func TestScrapeStrategyNoCandidates(t *testing.T) {
	chdir(t, t.TempDir())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Try again later.</p></body></html>`))
	}))
	defer server.Close()

	s := NewScrapeStrategyAt(server.URL, 0)
	if _, err := s.Attempt(testRequest()); err == nil {
		t.Fatal("Attempt on candidate-free page returned nil error")
	}
}

func TestScrapeStrategyLandingPageFailure(t *testing.T) {
	chdir(t, t.TempDir())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	s := NewScrapeStrategyAt(server.URL, 0)
	if _, err := s.Attempt(testRequest()); err == nil {
		t.Fatal("Attempt against failing target returned nil error")
	}
}

// TestScrapeStrategyHTMLPayload verifies the last-resort path: when the
// downloaded candidate is an HTML page rather than a subtitle file, its
// readable text is used.
func TestScrapeStrategyHTMLPayload(t *testing.T) {
	chdir(t, t.TempDir())
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`<html><body><a href="/download?f=en.srt">Download SRT (en)</a></body></html>`))
			return
		}
		w.Write([]byte("landing"))
	})
	mux.HandleFunc("/download", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Transcript</title></head><body>
<article><p>The transcript text rendered as a page instead of a file download.</p>
<p>It still contains the full prose content of the captions.</p></article>
</body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	s := NewScrapeStrategyAt(server.URL, 0)
	result, err := s.Attempt(testRequest())
	if err != nil {
		t.Fatalf("Attempt returned error: %v", err)
	}
	if result.Text == "" {
		t.Fatal("Attempt returned empty text for HTML payload")
	}
}
