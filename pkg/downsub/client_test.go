package downsub

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"yt-digest/pkg/httpclient"
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

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	chdir(t, t.TempDir()) // debug dumps land in the working directory
	c := NewClient("en")
	c.SetBaseURL(serverURL)
	c.SetDelay(0)
	return c
}

func TestSubmitQuery(t *testing.T) {
	var gotMethod, gotURL, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err == nil {
			gotURL = r.PostForm.Get("url")
		}
		w.Write([]byte(`<html><body><a href="/download?f=en.srt">Download SRT</a></body></html>`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	html, err := client.SubmitQuery("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("SubmitQuery returned error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("request method = %q, want POST", gotMethod)
	}
	if !strings.Contains(gotContentType, "application/x-www-form-urlencoded") {
		t.Errorf("Content-Type = %q, want form-encoded", gotContentType)
	}
	if gotURL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("submitted url field = %q", gotURL)
	}
	if !strings.Contains(html, "Download SRT") {
		t.Errorf("SubmitQuery body = %q, want the served document", html)
	}
}

func TestSubmitQueryNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "captcha required", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.SubmitQuery("https://youtu.be/dQw4w9WgXcQ")
	if err == nil {
		t.Fatal("SubmitQuery on 503 returned nil error")
	}
	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("SubmitQuery error = %T, want *httpclient.StatusError", err)
	}
}

func TestFetchResourceResolvesRelativeURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/download" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("1\n00:00:01,000 --> 00:00:02,000\nhello\n"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	body, err := client.FetchResource("/download?f=en.srt")
	if err != nil {
		t.Fatalf("FetchResource returned error: %v", err)
	}
	if !strings.Contains(body, "hello") {
		t.Fatalf("FetchResource body = %q, want SRT payload", body)
	}
}

func TestFetchLandingPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "xyz"})
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	if err := client.FetchLandingPage(); err != nil {
		t.Fatalf("FetchLandingPage returned error: %v", err)
	}
}
