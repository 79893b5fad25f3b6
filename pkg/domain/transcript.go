package domain

import "time"

// Strategy identifies which acquisition route produced a transcript.
type Strategy string

const (
	// StrategyScrape means the transcript was downloaded through the
	// scraping target (landing page + query + candidate download).
	StrategyScrape Strategy = "scrape"

	// StrategyDirect means the transcript came from YouTube's timedtext
	// endpoint, bypassing the scraping target entirely.
	StrategyDirect Strategy = "direct"

	// StrategyPlaceholder means no real transcript could be acquired and a
	// clearly labeled synthetic text was returned instead.
	StrategyPlaceholder Strategy = "placeholder"
)

// CaptionFormat is the declared format of a downloaded subtitle payload.
type CaptionFormat string

const (
	FormatSRT     CaptionFormat = "srt"
	FormatVTT     CaptionFormat = "vtt"
	FormatUnknown CaptionFormat = "unknown"
)

// AcquisitionRequest describes one transcript acquisition attempt.
// It is immutable once created; strategies receive it by value.
type AcquisitionRequest struct {
	// VideoID is the canonical 11-character YouTube video identifier.
	VideoID string

	// SourceURL is the full watch URL submitted to the scraping target.
	SourceURL string

	// PreferredLanguage is the language code used for candidate ranking
	// and for the direct track lookup (e.g. "en").
	PreferredLanguage string
}

// DownloadCandidate is a discovered, not-yet-downloaded link believed to
// point at transcript content. Candidates are never mutated after creation;
// ranking is done by selection, not by reordering.
type DownloadCandidate struct {
	// URL is the candidate link target as it appeared in the document.
	URL string

	// DisplayText is the visible text of the element that produced the
	// candidate, used for the language-match heuristic.
	DisplayText string

	// LanguageMatch is true only when the preferred language code appears
	// as a case-insensitive substring of DisplayText. This is a heuristic
	// signal, not a verified language-tag comparison.
	LanguageMatch bool
}

// RawPayload is the body of a downloaded candidate before normalization.
type RawPayload struct {
	Content        string
	DeclaredFormat CaptionFormat
}

// TranscriptResult is the terminal artifact of the acquisition pipeline.
// Text is never empty on success; empty normalization output is treated as
// acquisition failure upstream.
type TranscriptResult struct {
	Text     string
	Strategy Strategy
}

// StoredTranscript is a transcript (and optional summary) persisted in the
// archive so repeat runs can skip re-acquisition.
type StoredTranscript struct {
	// VideoID is the YouTube video identifier; unique key for upserts.
	VideoID string `bson:"video_id" json:"video_id"`

	// URL is the full watch URL the transcript was acquired for.
	URL string `bson:"url" json:"url"`

	// Title is the video title, when it could be fetched.
	Title string `bson:"title,omitempty" json:"title,omitempty"`

	// Language is the preferred language the acquisition ran with.
	Language string `bson:"language,omitempty" json:"language,omitempty"`

	// Transcript is the normalized plain prose text.
	Transcript string `bson:"transcript" json:"transcript"`

	// Summary is the generated summary, when summarization ran.
	Summary string `bson:"summary,omitempty" json:"summary,omitempty"`

	// Strategy records which acquisition route produced the transcript.
	Strategy Strategy `bson:"strategy" json:"strategy"`

	// CrawledAt is when the transcript was acquired.
	CrawledAt time.Time `bson:"crawled_at" json:"crawled_at"`
}
