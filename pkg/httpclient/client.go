package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
)

// ClientType represents the type of HTTP client configuration
type ClientType string

const (
	// BrowserClient uses browser-like headers. The scraping target is known
	// to vary behavior by client identification, so requests carry a real
	// browser User-Agent and a realistic Accept-Language.
	BrowserClient ClientType = "browser"

	// PlainClient uses simple headers (like curl) for endpoints that do not
	// care about client identification (feeds, structured APIs).
	PlainClient ClientType = "plain"
)

// StatusError reports a non-2xx HTTP response. All non-2xx statuses are
// treated uniformly as a network failure regardless of the specific code.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// HTTPClient wraps an http.Client with a header preset and its own cookie
// jar. One HTTPClient is created per acquisition attempt; the session state
// it accumulates is never shared across requests.
type HTTPClient struct {
	client     *http.Client
	clientType ClientType
	language   string
}

// NewClient creates a new HTTP client with the specified type. The language
// code is used to build the Accept-Language header for browser-type clients;
// pass "" to default to English.
func NewClient(clientType ClientType, language string) *HTTPClient {
	jar, _ := cookiejar.New(nil)

	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Follow up to 10 redirects
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return &HTTPClient{
		client:     client,
		clientType: clientType,
		language:   language,
	}
}

// Do executes an HTTP request with the appropriate headers for the client type
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req)
	return c.client.Do(req)
}

// Get is a convenience method for GET requests
func (c *HTTPClient) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// GetBody performs a GET request and returns the response body as a string.
// A non-2xx response is returned as a *StatusError.
func (c *HTTPClient) GetBody(url string) (string, error) {
	resp, err := c.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body from %s: %w", url, err)
	}
	return string(body), nil
}

// setHeaders sets the appropriate headers based on client type
func (c *HTTPClient) setHeaders(req *http.Request) {
	switch c.clientType {
	case BrowserClient:
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", acceptLanguage(c.language))
		req.Header.Set("Connection", "keep-alive")
		req.Header.Set("Upgrade-Insecure-Requests", "1")

	case PlainClient:
		req.Header.Set("User-Agent", "curl/8.7.1")

	default:
		// Default: use Go's default User-Agent
	}
}

// acceptLanguage builds an Accept-Language header that leads with the
// preferred language but still accepts English and anything else.
func acceptLanguage(language string) string {
	if language == "" || language == "en" {
		return "en-US,en;q=0.9"
	}
	return fmt.Sprintf("%s,en-US;q=0.8,en;q=0.7", language)
}
