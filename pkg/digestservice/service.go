package digestservice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"yt-digest/pkg/content"
	"yt-digest/pkg/db"
	"yt-digest/pkg/domain"
	"yt-digest/pkg/feed"
	"yt-digest/pkg/httpclient"
	"yt-digest/pkg/markdown"
	"yt-digest/pkg/strategy"
	"yt-digest/pkg/videourl"
)

// Summarizer produces a summary for transcript text.
type Summarizer interface {
	Summarize(transcript string) (string, error)
}

// Service runs the full digest flow for a video: resolve the URL, acquire a
// transcript through the strategy chain, summarize it, render Markdown, and
// optionally archive the result.
type Service struct {
	chain      *strategy.Chain
	summarizer Summarizer
	archive    db.Archive // nil disables archiving

	// fetchTitle fetches the watch page and extracts the video title.
	// Swappable for tests.
	fetchTitle func(videoURL string) (string, error)
}

// Config holds the service collaborators.
type Config struct {
	Chain      *strategy.Chain
	Summarizer Summarizer
	Archive    db.Archive
}

// Result is the outcome of one digest run.
type Result struct {
	VideoID      string
	Title        string
	Transcript   string
	Summary      string
	Strategy     domain.Strategy
	MarkdownPath string

	// FromArchive is true when the transcript was served from the archive
	// instead of being re-acquired.
	FromArchive bool
}

// NewService creates a digest service.
func NewService(cfg Config) *Service {
	chain := cfg.Chain
	if chain == nil {
		chain = strategy.DefaultChain()
	}
	return &Service{
		chain:      chain,
		summarizer: cfg.Summarizer,
		archive:    cfg.Archive,
		fetchTitle: fetchVideoTitle,
	}
}

// SetTitleFetcher overrides how video titles are fetched (tests).
func (s *Service) SetTitleFetcher(f func(videoURL string) (string, error)) {
	s.fetchTitle = f
}

// Digest processes one video URL end to end. outputPath overrides the
// default <videoID>_summary.md file when non-empty.
//
// Only an unresolvable URL is a hard failure: once a video identifier
// exists, the strategy chain guarantees transcript text (the placeholder
// tier never fails).
func (s *Service) Digest(ctx context.Context, rawURL, language, outputPath string) (*Result, error) {
	videoID, fullURL, err := videourl.Resolve(rawURL)
	if err != nil {
		return nil, err
	}
	log.Printf("Extracted video ID: %s", videoID)

	result := &Result{VideoID: videoID}

	// Serve from the archive when possible; acquisition is the expensive,
	// rate-limited part of the flow.
	if s.archive != nil {
		if stored, err := s.archive.GetTranscript(ctx, videoID); err == nil && stored.Transcript != "" {
			log.Printf("Transcript for %s found in archive (strategy %s)", videoID, stored.Strategy)
			result.Transcript = stored.Transcript
			result.Strategy = stored.Strategy
			result.Title = stored.Title
			result.FromArchive = true
		} else if err != nil && !errors.Is(err, db.ErrNotFound) {
			log.Printf("Archive lookup for %s failed: %v", videoID, err)
		}
	}

	if !result.FromArchive {
		req := domain.AcquisitionRequest{
			VideoID:           videoID,
			SourceURL:         fullURL,
			PreferredLanguage: language,
		}
		acquired, err := s.chain.Run(req)
		if err != nil {
			return nil, fmt.Errorf("acquire transcript for %s: %w", videoID, err)
		}
		result.Transcript = acquired.Text
		result.Strategy = acquired.Strategy
	}

	if result.Title == "" {
		title, err := s.fetchTitle(fullURL)
		if err != nil {
			log.Printf("Could not retrieve video title for %s: %v", videoID, err)
		} else {
			result.Title = title
		}
	}

	if s.summarizer != nil {
		summary, err := s.summarizer.Summarize(result.Transcript)
		if err != nil {
			return nil, fmt.Errorf("summarize transcript for %s: %w", videoID, err)
		}
		result.Summary = summary

		md := markdown.Format(summary, rawURL, videoID, result.Title)
		if outputPath != "" {
			if err := markdown.SaveTo(md, outputPath); err != nil {
				return nil, err
			}
			result.MarkdownPath = outputPath
		} else {
			path, err := markdown.Save(md, videoID)
			if err != nil {
				return nil, err
			}
			result.MarkdownPath = path
		}
		log.Printf("Saved summary to: %s", result.MarkdownPath)
	}

	if s.archive != nil && !result.FromArchive {
		stored := &domain.StoredTranscript{
			VideoID:    videoID,
			URL:        fullURL,
			Title:      result.Title,
			Language:   language,
			Transcript: result.Transcript,
			Summary:    result.Summary,
			Strategy:   result.Strategy,
			CrawledAt:  time.Now().UTC(),
		}
		if err := s.archive.SaveTranscript(ctx, stored); err != nil {
			log.Printf("Failed to archive transcript for %s: %v", videoID, err)
		}
	}

	return result, nil
}

// videoIDLister is implemented by archive backends that can enumerate stored
// video IDs cheaply, letting a feed run skip archived entries up front.
type videoIDLister interface {
	GetAllVideoIDs(ctx context.Context) (map[string]bool, error)
}

// DigestFeed processes every video in a channel feed, sequentially. max
// limits how many entries are processed (<= 0 means no limit). Entries that
// fail are logged and skipped; the feed run continues.
func (s *Service) DigestFeed(ctx context.Context, feedURL, language string, max int) (int, error) {
	entries, err := feed.NewParser().ParseFromURL(feedURL)
	if err != nil {
		return 0, err
	}

	if lister, ok := s.archive.(videoIDLister); ok {
		if archived, err := lister.GetAllVideoIDs(ctx); err != nil {
			log.Printf("Could not list archived video IDs: %v", err)
		} else {
			entries = filterArchived(entries, archived)
		}
	}

	if max > 0 && len(entries) > max {
		entries = entries[:max]
	}

	processed := 0
	for _, entry := range entries {
		log.Printf("Processing feed entry: %s (%s)", entry.Title, entry.URL)
		if _, err := s.Digest(ctx, entry.URL, language, ""); err != nil {
			log.Printf("Failed to process %s: %v", entry.URL, err)
			continue
		}
		processed++
	}
	return processed, nil
}

// filterArchived drops feed entries whose video ID is already archived.
// Entries whose URL does not resolve are kept; Digest reports those properly.
func filterArchived(entries []feed.Entry, archived map[string]bool) []feed.Entry {
	kept := entries[:0]
	for _, entry := range entries {
		if id, _, err := videourl.Resolve(entry.URL); err == nil && archived[id] {
			log.Printf("Skipping already-archived video %s (%s)", id, entry.Title)
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}

// fetchVideoTitle GETs the watch page with browser headers and extracts the
// video title.
func fetchVideoTitle(videoURL string) (string, error) {
	client := httpclient.NewClient(httpclient.BrowserClient, "")
	html, err := client.GetBody(videoURL)
	if err != nil {
		return "", err
	}
	return content.ExtractVideoTitle(html)
}
