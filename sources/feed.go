package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"techatlas/config"
)

// IsFeedURL reports whether an extra source target looks like an RSS/Atom feed.
func IsFeedURL(target string) bool {
	lower := strings.ToLower(target)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	return strings.Contains(lower, "rss") ||
		strings.Contains(lower, "atom") ||
		strings.Contains(lower, "/feed") ||
		strings.HasSuffix(lower, ".xml")
}

// FetchFeedText parses a feed and joins its item titles and summaries into a
// single text block usable as one source.
func FetchFeedText(ctx context.Context, client *http.Client, feedURL string) (string, error) {
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = config.UserAgent

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := len(feed.Items)
	if count > config.MaxFeedItems {
		count = config.MaxFeedItems
	}

	var parts []string
	for i := 0; i < count; i++ {
		item := feed.Items[i]
		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		parts = append(parts, strings.TrimSpace(item.Title+". "+CleanText(summary)))
	}
	return strings.Join(parts, " "), nil
}
