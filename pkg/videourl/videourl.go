package videourl

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrNotResolvable is returned when a URL does not match any supported
// YouTube URL shape.
var ErrNotResolvable = errors.New("URL is not a recognized YouTube video URL")

var (
	shortURLPattern = regexp.MustCompile(`^https?://youtu\.be/[a-zA-Z0-9_-]{11}(?:\?\S*)?$`)
	watchURLPattern = regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/watch\?v=[a-zA-Z0-9_-]{11}(?:&\S*)?$`)
)

// Validate reports whether the URL matches one of the two supported shapes:
// the shortened youtu.be form or the standard youtube.com/watch form.
func Validate(rawURL string) bool {
	return shortURLPattern.MatchString(rawURL) || watchURLPattern.MatchString(rawURL)
}

// ExtractVideoID extracts the video identifier from a YouTube URL.
//
// Two URL shapes are recognized:
//   - https://youtu.be/<id>
//   - https://www.youtube.com/watch?v=<id>
//
// Any other shape returns ErrNotResolvable. Extraction is a pure function:
// the same URL always yields the same identifier.
func ExtractVideoID(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse URL %q: %w", rawURL, ErrNotResolvable)
	}

	host := strings.ToLower(strings.TrimPrefix(parsed.Hostname(), "www."))

	switch host {
	case "youtu.be":
		// Short form: the identifier is the single path segment, with any
		// trailing query fragment already split off by url.Parse.
		id := strings.Trim(parsed.Path, "/")
		if i := strings.IndexByte(id, '/'); i >= 0 {
			id = id[:i]
		}
		if id == "" {
			return "", ErrNotResolvable
		}
		return id, nil

	case "youtube.com":
		id := parsed.Query().Get("v")
		if id == "" {
			return "", ErrNotResolvable
		}
		return id, nil

	default:
		return "", ErrNotResolvable
	}
}

// WatchURL converts a video identifier back into the full watch URL that the
// scraping target expects as query input.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// Resolve validates the URL, extracts the video identifier, and returns the
// identifier together with the canonical watch URL.
func Resolve(rawURL string) (videoID, fullURL string, err error) {
	if !Validate(rawURL) {
		return "", "", fmt.Errorf("%q: %w", rawURL, ErrNotResolvable)
	}
	videoID, err = ExtractVideoID(rawURL)
	if err != nil {
		return "", "", err
	}
	return videoID, WatchURL(videoID), nil
}
