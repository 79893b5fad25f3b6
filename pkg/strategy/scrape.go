package strategy

import (
	"fmt"
	"strings"
	"time"

	"yt-digest/pkg/content"
	"yt-digest/pkg/domain"
	"yt-digest/pkg/downsub"
	"yt-digest/pkg/subtitles"
)

// Markers the scraping target uses when a video has no captions at all.
// Matching them early turns a useless page into a typed failure instead of a
// no-candidates error.
var disabledMarkers = []string{
	"subtitles are disabled",
	"no subtitles",
	"captions are not available",
}

// ScrapeStrategy acquires a transcript through the scraping target: land on
// the root page for session cookies, submit the video URL, pick a download
// candidate from the resulting HTML, download it, and normalize to prose.
type ScrapeStrategy struct {
	// baseURL overrides the scraping target root when non-empty (tests).
	baseURL string

	// delay overrides the politeness delay when >= 0 (tests).
	delay time.Duration
}

// NewScrapeStrategy creates the scrape strategy against the default target.
func NewScrapeStrategy() *ScrapeStrategy {
	return &ScrapeStrategy{delay: -1}
}

// NewScrapeStrategyAt creates a scrape strategy against an alternate target
// root, with the given politeness delay.
func NewScrapeStrategyAt(baseURL string, delay time.Duration) *ScrapeStrategy {
	return &ScrapeStrategy{baseURL: baseURL, delay: delay}
}

func (s *ScrapeStrategy) Name() string { return string(domain.StrategyScrape) }

// Attempt runs one full scrape acquisition. A fresh client (and cookie jar)
// is created per attempt; session state never leaks between requests.
func (s *ScrapeStrategy) Attempt(req domain.AcquisitionRequest) (*domain.TranscriptResult, error) {
	client := downsub.NewClient(req.PreferredLanguage)
	if s.baseURL != "" {
		client.SetBaseURL(s.baseURL)
	}
	if s.delay >= 0 {
		client.SetDelay(s.delay)
	}

	if err := client.FetchLandingPage(); err != nil {
		return nil, err
	}

	html, err := client.SubmitQuery(req.SourceURL)
	if err != nil {
		return nil, err
	}

	if marker := disabledMarker(html); marker != "" {
		return nil, fmt.Errorf("%w (%q)", ErrSubtitlesDisabled, marker)
	}

	candidates, err := content.FindDownloadCandidates(html, req.PreferredLanguage)
	if err != nil {
		return nil, err
	}
	candidate, ok := content.SelectCandidate(candidates)
	if !ok {
		return nil, content.ErrNoCandidates
	}

	body, err := client.FetchResource(candidate.URL)
	if err != nil {
		return nil, err
	}

	text := normalizePayload(body, candidate.URL)
	if text == "" {
		return nil, ErrEmptyResult
	}

	return &domain.TranscriptResult{Text: text, Strategy: domain.StrategyScrape}, nil
}

// normalizePayload converts a downloaded candidate body to prose. When the
// target hands back an HTML page instead of a subtitle file, the readable
// page text is extracted as a last resort before giving up.
func normalizePayload(body, candidateURL string) string {
	trimmed := strings.TrimSpace(body)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		text, err := content.ExtractPageText(trimmed)
		if err != nil {
			return ""
		}
		return text
	}

	return subtitles.Normalize(domain.RawPayload{
		Content:        body,
		DeclaredFormat: subtitles.FormatFromURL(candidateURL),
	})
}

func disabledMarker(html string) string {
	lower := strings.ToLower(html)
	for _, m := range disabledMarkers {
		if strings.Contains(lower, m) {
			return m
		}
	}
	return ""
}
