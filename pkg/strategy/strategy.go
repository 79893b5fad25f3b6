// Package strategy implements the transcript acquisition chain: an ordered
// list of self-contained acquisition methods tried until one succeeds.
//
// The external target is adversarial and unstable (it may require script
// execution the client cannot perform), so the pipeline is a fixed fallback
// chain rather than a single call with retries; each tier is a genuinely
// different acquisition method.
package strategy

import (
	"errors"
	"fmt"
	"log"

	"yt-digest/pkg/domain"
)

// ErrEmptyResult is returned when normalization yielded no text. An empty
// transcript is treated as acquisition failure, never as empty success.
var ErrEmptyResult = errors.New("normalization produced empty transcript text")

// ErrSubtitlesDisabled is returned when the source explicitly reports that
// captions are unavailable for the video.
var ErrSubtitlesDisabled = errors.New("source reports subtitles are disabled for this video")

// Strategy is one self-contained method of obtaining transcript text.
// Attempt returns a non-nil result with non-empty text, or an error
// describing why this route could not produce one.
type Strategy interface {
	Name() string
	Attempt(req domain.AcquisitionRequest) (*domain.TranscriptResult, error)
}

// Chain runs strategies in order and returns the first successful result.
// Every stage-local failure advances to the next strategy; nothing
// propagates as a hard fault from inside the chain.
type Chain struct {
	strategies []Strategy
}

// NewChain creates a chain that tries the given strategies in order.
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// DefaultChain builds the standard acquisition order:
// scrape, then direct, then placeholder.
func DefaultChain() *Chain {
	return NewChain(NewScrapeStrategy(), NewDirectStrategy(), NewPlaceholderStrategy())
}

// Run executes the chain for one acquisition request. The returned result is
// tagged with the strategy that produced it. Run fails only when the chain
// itself is empty, since the placeholder terminal strategy never fails.
func (c *Chain) Run(req domain.AcquisitionRequest) (*domain.TranscriptResult, error) {
	var lastErr error

	for _, s := range c.strategies {
		result, err := s.Attempt(req)
		if err != nil {
			log.Printf("Strategy %s failed for video %s: %v", s.Name(), req.VideoID, err)
			lastErr = fmt.Errorf("strategy %s: %w", s.Name(), err)
			continue
		}
		if result == nil || result.Text == "" {
			log.Printf("Strategy %s returned no text for video %s", s.Name(), req.VideoID)
			lastErr = fmt.Errorf("strategy %s: %w", s.Name(), ErrEmptyResult)
			continue
		}
		log.Printf("Strategy %s produced transcript for video %s (%d characters)", s.Name(), req.VideoID, len(result.Text))
		return result, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no strategies configured")
	}
	return nil, lastErr
}
