package downsub

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"yt-digest/pkg/httpclient"
)

// DefaultBaseURL is the root of the scraping target.
const DefaultBaseURL = "https://downsub.com"

// Debug dump paths. The dumps are a diagnostic aid for inspecting what the
// scraping target actually returned, not part of the functional contract.
const (
	queryDumpPath    = "downsub_response.html"
	resourceDumpPath = "transcript_raw.txt"
)

// Client performs the network round-trips against the scraping target:
// fetch the landing page to establish session cookies, submit the video URL,
// and download a candidate resource.
//
// One Client (with its own cookie jar) is created per acquisition attempt.
// The client never retries; fallback policy lives in the strategy chain.
type Client struct {
	http    *httpclient.HTTPClient
	baseURL string

	// delay is the fixed politeness pause inserted before each resource
	// download to reduce the chance of being rate-limited or blocked.
	delay time.Duration
}

// NewClient creates a session-scoped client for the scraping target. The
// language code feeds the Accept-Language header of every request.
func NewClient(language string) *Client {
	return &Client{
		http:    httpclient.NewClient(httpclient.BrowserClient, language),
		baseURL: DefaultBaseURL,
		delay:   time.Second,
	}
}

// SetBaseURL overrides the scraping target root (used in tests).
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// SetDelay overrides the politeness delay (used in tests).
func (c *Client) SetDelay(d time.Duration) {
	c.delay = d
}

// FetchLandingPage GETs the scraping target's root page. The response body
// is discarded; the call exists to establish session state (cookies) before
// the query is submitted. Failure here aborts the scrape strategy but not
// the overall pipeline.
func (c *Client) FetchLandingPage() error {
	if _, err := c.http.GetBody(c.baseURL + "/"); err != nil {
		return fmt.Errorf("fetch landing page: %w", err)
	}
	return nil
}

// SubmitQuery POSTs the target video URL to the scraping target and returns
// the resulting HTML document.
func (c *Client) SubmitQuery(videoURL string) (string, error) {
	form := url.Values{}
	form.Set("url", videoURL)

	req, err := http.NewRequest("POST", c.baseURL+"/", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", c.baseURL+"/")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &httpclient.StatusError{URL: c.baseURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read query response: %w", err)
	}

	html := string(body)
	dumpDebug(queryDumpPath, html)
	return html, nil
}

// FetchResource GETs an arbitrary candidate URL and returns its text body.
// A fixed delay precedes the request; this is a deliberate politeness policy
// toward the scraping target, not a performance decision.
func (c *Client) FetchResource(resourceURL string) (string, error) {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}

	body, err := c.http.GetBody(c.resolveURL(resourceURL))
	if err != nil {
		return "", fmt.Errorf("fetch resource: %w", err)
	}

	dumpDebug(resourceDumpPath, body)
	return body, nil
}

// resolveURL makes relative candidate hrefs absolute against the target root.
func (c *Client) resolveURL(resourceURL string) string {
	if strings.HasPrefix(resourceURL, "http://") || strings.HasPrefix(resourceURL, "https://") {
		return resourceURL
	}
	if strings.HasPrefix(resourceURL, "/") {
		return c.baseURL + resourceURL
	}
	return c.baseURL + "/" + resourceURL
}

// dumpDebug writes a response body to a fixed path, best effort.
func dumpDebug(path, content string) {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		log.Printf("Failed to write debug dump %s: %v", path, err)
	}
}
