package subtitles

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"yt-digest/pkg/domain"
)

// Timestamp ranges as they appear in SRT ("00:01:02,345 --> 00:01:04,000")
// and VTT ("00:01:02.345 --> 00:01:04.000") cue lines.
var (
	timeRangePattern  = regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}[,.]\d{1,3}\s*-->\s*\d{1,2}:\d{2}:\d{2}[,.]\d{1,3}`)
	sequencePattern   = regexp.MustCompile(`^\d+$`)
	shortTimePattern  = regexp.MustCompile(`^\d{1,2}:\d{2}[,.]\d{1,3}\s*-->\s*\d{1,2}:\d{2}[,.]\d{1,3}`)
	vttSettingPattern = regexp.MustCompile(`^(WEBVTT|NOTE|STYLE|REGION|Kind:|Language:)`)
)

// FormatFromURL infers the declared caption format from a download URL's
// file extension or query string.
func FormatFromURL(rawURL string) domain.CaptionFormat {
	lower := strings.ToLower(rawURL)

	ext := ""
	if parsed, err := url.Parse(lower); err == nil {
		ext = path.Ext(parsed.Path)
		if ext == "" && parsed.RawQuery != "" {
			// Targets like /download?f=en.srt declare the format in the query.
			if strings.Contains(parsed.RawQuery, ".srt") || strings.Contains(parsed.RawQuery, "srt") {
				return domain.FormatSRT
			}
			if strings.Contains(parsed.RawQuery, ".vtt") || strings.Contains(parsed.RawQuery, "vtt") {
				return domain.FormatVTT
			}
		}
	} else {
		ext = path.Ext(lower)
	}

	switch ext {
	case ".srt":
		return domain.FormatSRT
	case ".vtt":
		return domain.FormatVTT
	default:
		return domain.FormatUnknown
	}
}

// LooksTimed reports whether content begins with a timed-caption marker: a
// WEBVTT header, a bare sequence number, or a timestamp range.
func LooksTimed(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return vttSettingPattern.MatchString(line) ||
			sequencePattern.MatchString(line) ||
			timeRangePattern.MatchString(line) ||
			shortTimePattern.MatchString(line)
	}
	return false
}

// Normalize converts a raw subtitle payload into plain prose text.
//
// If the payload declares a timed-caption format, or its content begins with
// a timed-caption marker, the subtitle markup is stripped: blank lines, bare
// sequence numbers, timestamp-range lines, and format headers are discarded
// and the remaining content lines are joined with single spaces. Content
// that is already plain text passes through with only whitespace
// trimming/joining. The output never contains format-specific markup.
func Normalize(payload domain.RawPayload) string {
	content := payload.Content
	if content == "" {
		return ""
	}

	timed := payload.DeclaredFormat == domain.FormatSRT ||
		payload.DeclaredFormat == domain.FormatVTT ||
		LooksTimed(content)

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	parts := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if timed && isMarkupLine(line) {
			continue
		}
		parts = append(parts, line)
	}

	return strings.Join(parts, " ")
}

// JoinSegments joins discrete timed segments (already stripped of
// timestamps, e.g. from the timedtext API) into prose, trimming per-segment
// whitespace.
func JoinSegments(segments []string) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, " ")
}

func isMarkupLine(line string) bool {
	return sequencePattern.MatchString(line) ||
		timeRangePattern.MatchString(line) ||
		shortTimePattern.MatchString(line) ||
		vttSettingPattern.MatchString(line)
}
