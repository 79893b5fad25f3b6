package content

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"yt-digest/pkg/domain"
)

var (
	errEmptyHTML         = errors.New("empty HTML content")
	ErrNoCandidates      = errors.New("no download candidates found in HTML")
	errFailedToParseHTML = errors.New("failed to parse HTML for download candidates")
)

// Subtitle markers. Tier 1 and 2 use the narrower set; tier 3 casts a wider
// net including bare file extensions.
var (
	subtitleMarkers = []string{"srt", "txt", "transcript", "subtitle"}
	looseMarkers    = []string{"srt", "vtt", "subtitle", "caption"}
)

// FindDownloadCandidates locates candidate transcript download links in a
// scraped page using three tiers of heuristics, each tier attempted only if
// the previous produced zero candidates:
//
//  1. Direct links: anchors whose href contains "download" and whose href or
//     visible text also contains a subtitle marker.
//  2. Button proxies: clickable elements (buttons or button-styled links)
//     whose text carries a download/subtitle marker; if the element's nearest
//     container also holds an anchor with an href, that href is emitted.
//  3. Loose links: any anchor whose href or text contains a subtitle,
//     caption, or caption-file-extension marker.
//
// The markup of the scraping target is not a stable API, so these heuristics
// are best effort; candidates are returned in document order and a candidate
// is language-matched when the preferred language code appears as a
// case-insensitive substring of its visible text.
func FindDownloadCandidates(html, preferredLanguage string) ([]domain.DownloadCandidate, error) {
	html = strings.TrimSpace(html)
	if html == "" {
		return nil, errEmptyHTML
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.Join(errFailedToParseHTML, err)
	}

	lang := strings.ToLower(strings.TrimSpace(preferredLanguage))

	candidates := directLinkTier(doc, lang)
	if len(candidates) == 0 {
		candidates = buttonProxyTier(doc, lang)
	}
	if len(candidates) == 0 {
		candidates = looseLinkTier(doc, lang)
	}

	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	return candidates, nil
}

// SelectCandidate applies the selection policy: the first candidate with a
// language match, in document order; if none match, the first candidate
// overall. Language detection from link text alone is unreliable, so the
// tie-break favors availability over exactness.
func SelectCandidate(candidates []domain.DownloadCandidate) (domain.DownloadCandidate, bool) {
	if len(candidates) == 0 {
		return domain.DownloadCandidate{}, false
	}
	for _, c := range candidates {
		if c.LanguageMatch {
			return c, true
		}
	}
	return candidates[0], true
}

// directLinkTier scans anchors whose link target contains a "download"
// marker and keeps those whose target or visible text also mentions
// subtitles.
func directLinkTier(doc *goquery.Document, lang string) []domain.DownloadCandidate {
	var candidates []domain.DownloadCandidate

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		text := strings.TrimSpace(sel.Text())
		lowerHref := strings.ToLower(href)
		lowerText := strings.ToLower(text)

		if !strings.Contains(lowerHref, "download") {
			return
		}
		if !containsAny(lowerHref, subtitleMarkers) && !containsAny(lowerText, subtitleMarkers) {
			return
		}

		candidates = append(candidates, newCandidate(href, text, lang))
	})

	return candidates
}

// buttonProxyTier scans clickable elements whose text mentions downloads or
// subtitles. The scraping target sometimes renders the real link next to a
// styled button instead of on it, so the nearest container is searched for
// an anchor to emit in the button's place.
func buttonProxyTier(doc *goquery.Document, lang string) []domain.DownloadCandidate {
	var candidates []domain.DownloadCandidate
	markers := append([]string{"download"}, subtitleMarkers...)

	doc.Find("button, [role='button'], a.btn, a.button").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if !containsAny(strings.ToLower(text), markers) {
			return
		}

		container := sel.Parent()
		if container.Length() == 0 {
			return
		}
		anchor := container.Find("a[href]").First()
		if anchor.Length() == 0 {
			return
		}
		href, exists := anchor.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			return
		}

		candidates = append(candidates, newCandidate(strings.TrimSpace(href), text, lang))
	})

	return candidates
}

// looseLinkTier scans every anchor and keeps those whose target or text
// contains any subtitle, caption, or file-extension marker.
func looseLinkTier(doc *goquery.Document, lang string) []domain.DownloadCandidate {
	var candidates []domain.DownloadCandidate

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		text := strings.TrimSpace(sel.Text())
		if !containsAny(strings.ToLower(href), looseMarkers) && !containsAny(strings.ToLower(text), looseMarkers) {
			return
		}

		candidates = append(candidates, newCandidate(href, text, lang))
	})

	return candidates
}

func newCandidate(href, text, lang string) domain.DownloadCandidate {
	return domain.DownloadCandidate{
		URL:           href,
		DisplayText:   text,
		LanguageMatch: lang != "" && strings.Contains(strings.ToLower(text), lang),
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
