package sources

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"techatlas/config"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	citationRe   = regexp.MustCompile(`\[[^\]]*\]`)
)

// ExtractText runs the two-stage extraction strategy: the structured
// readability extractor first, then the permissive paragraph-stripping
// fallback when it yields too little text.
func ExtractText(pageURL string, body []byte) (string, error) {
	text, err := extractReadable(pageURL, body)
	if err == nil && len(text) >= config.ReadabilityMinChars {
		return text, nil
	}

	text, fbErr := extractFallback(body)
	if fbErr != nil {
		if err != nil {
			return "", fmt.Errorf("readability: %v; fallback: %w", err, fbErr)
		}
		return "", fbErr
	}
	if text == "" {
		return "", fmt.Errorf("no content extracted")
	}
	return text, nil
}

// extractReadable applies go-readability's structured content extraction.
func extractReadable(pageURL string, body []byte) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page url: %w", err)
	}
	article, err := readability.FromReader(bytes.NewReader(body), u)
	if err != nil {
		return "", err
	}
	return CleanText(article.TextContent), nil
}

// extractFallback strips markup with goquery: non-content tags removed,
// substantial paragraphs joined, citation brackets dropped.
func extractFallback(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, table, sup, nav, footer").Remove()

	var parts []string
	doc.Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= config.FallbackMaxParagraphs {
			return false
		}
		text := strings.TrimSpace(s.Text())
		if len(text) > config.FallbackMinParagraphChars {
			parts = append(parts, text)
		}
		return true
	})
	if len(parts) == 0 {
		return "", nil
	}

	text := CleanText(strings.Join(parts, " "))
	if len(text) > config.MaxSourceChars {
		text = text[:config.MaxSourceChars]
	}
	return text, nil
}

// CleanText collapses whitespace and removes bracketed citation markers.
func CleanText(s string) string {
	s = citationRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
