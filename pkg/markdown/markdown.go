package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Format renders a video summary as a Markdown document with a metadata
// section pointing back at the source video.
func Format(summary, videoURL, videoID, videoTitle string) string {
	if videoTitle == "" {
		videoTitle = "YouTube Video " + videoID
	}

	currentDate := time.Now().Format("January 2, 2006")

	return fmt.Sprintf(`# Video Summary: %s

## Summary

%s

## Metadata
- Original URL: %s
- Video ID: %s
- Processed on: %s
`, videoTitle, summary, videoURL, videoID, currentDate)
}

// Save writes Markdown content to <videoID>_summary.md in the working
// directory and returns the absolute path of the written file.
func Save(content, videoID string) (string, error) {
	if content == "" || videoID == "" {
		return "", fmt.Errorf("cannot save: missing content or video ID")
	}

	filename := videoID + "_summary.md"
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return filename, nil
	}
	return absPath, nil
}

// SaveTo writes Markdown content to an explicit path.
func SaveTo(content, path string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
