package strategy

import (
	"encoding/xml"
	"fmt"
	"html"
	"net/url"

	"yt-digest/pkg/domain"
	"yt-digest/pkg/httpclient"
	"yt-digest/pkg/subtitles"
)

const defaultTimedTextBase = "https://video.google.com"

// timedTextList is the track listing returned by the timedtext endpoint.
type timedTextList struct {
	XMLName xml.Name        `xml:"transcript_list"`
	Tracks  []timedTextInfo `xml:"track"`
}

type timedTextInfo struct {
	LangCode string `xml:"lang_code,attr"`
	Name     string `xml:"name,attr"`
}

// timedTextDoc is a caption track: timed <text> elements with start/dur attrs.
type timedTextDoc struct {
	XMLName xml.Name        `xml:"transcript"`
	Texts   []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Body  string `xml:",chardata"`
}

// DirectStrategy acquires a transcript through YouTube's structured
// timedtext endpoint instead of the scraping target. It lists the available
// caption tracks, tries the preferred language first, then falls back to any
// available track.
type DirectStrategy struct {
	baseURL string
}

// NewDirectStrategy creates the direct strategy against the real endpoint.
func NewDirectStrategy() *DirectStrategy {
	return &DirectStrategy{baseURL: defaultTimedTextBase}
}

// NewDirectStrategyAt creates a direct strategy against an alternate
// endpoint root (tests).
func NewDirectStrategyAt(baseURL string) *DirectStrategy {
	return &DirectStrategy{baseURL: baseURL}
}

func (s *DirectStrategy) Name() string { return string(domain.StrategyDirect) }

// Attempt lists caption tracks for the video and downloads the best match:
// the preferred-language track when present, otherwise the first track the
// endpoint reports.
func (s *DirectStrategy) Attempt(req domain.AcquisitionRequest) (*domain.TranscriptResult, error) {
	client := httpclient.NewClient(httpclient.PlainClient, req.PreferredLanguage)

	tracks, err := s.listTracks(client, req.VideoID)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no caption tracks listed", ErrSubtitlesDisabled)
	}

	track := tracks[0]
	for _, t := range tracks {
		if t.LangCode == req.PreferredLanguage {
			track = t
			break
		}
	}

	text, err := s.fetchTrack(client, req.VideoID, track)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrEmptyResult
	}

	return &domain.TranscriptResult{Text: text, Strategy: domain.StrategyDirect}, nil
}

func (s *DirectStrategy) listTracks(client *httpclient.HTTPClient, videoID string) ([]timedTextInfo, error) {
	listURL := fmt.Sprintf("%s/api/timedtext?type=list&v=%s", s.baseURL, url.QueryEscape(videoID))

	body, err := client.GetBody(listURL)
	if err != nil {
		return nil, fmt.Errorf("list caption tracks: %w", err)
	}

	var list timedTextList
	if err := xml.Unmarshal([]byte(body), &list); err != nil {
		return nil, fmt.Errorf("parse caption track list: %w", err)
	}
	return list.Tracks, nil
}

func (s *DirectStrategy) fetchTrack(client *httpclient.HTTPClient, videoID string, track timedTextInfo) (string, error) {
	trackURL := fmt.Sprintf("%s/api/timedtext?lang=%s&v=%s",
		s.baseURL, url.QueryEscape(track.LangCode), url.QueryEscape(videoID))
	if track.Name != "" {
		trackURL += "&name=" + url.QueryEscape(track.Name)
	}

	body, err := client.GetBody(trackURL)
	if err != nil {
		return "", fmt.Errorf("fetch caption track %s: %w", track.LangCode, err)
	}

	var doc timedTextDoc
	if err := xml.Unmarshal([]byte(body), &doc); err != nil {
		return "", fmt.Errorf("parse caption track %s: %w", track.LangCode, err)
	}

	segments := make([]string, 0, len(doc.Texts))
	for _, line := range doc.Texts {
		// Track bodies arrive double-escaped (&amp;#39; and friends).
		segments = append(segments, html.UnescapeString(line.Body))
	}
	return subtitles.JoinSegments(segments), nil
}
