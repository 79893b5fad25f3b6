package feed

import (
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// Entry is one video discovered in a channel feed.
type Entry struct {
	URL   string // watch URL of the video
	Title string // video title from the feed
}

// ChannelFeedURL builds the RSS feed URL for a YouTube channel ID.
func ChannelFeedURL(channelID string) string {
	return "https://www.youtube.com/feeds/videos.xml?channel_id=" + channelID
}

// Parser reads YouTube channel feeds and lists their recent videos.
type Parser struct {
	feedParser *gofeed.Parser
}

// NewParser creates a new channel feed parser
func NewParser() *Parser {
	return &Parser{
		feedParser: gofeed.NewParser(),
	}
}

// ParseFromURL fetches and parses a channel feed from the given URL,
// returning the videos it lists in feed order (newest first).
func (p *Parser) ParseFromURL(feedURL string) ([]Entry, error) {
	feed, err := p.feedParser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse channel feed: %w", err)
	}

	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		entries = append(entries, Entry{
			URL:   link,
			Title: item.Title,
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no valid video URLs found in feed items")
	}

	return entries, nil
}
