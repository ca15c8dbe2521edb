package sources

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"techatlas/config"
	"techatlas/types"
)

// Fetcher retrieves source content concurrently. One client is shared across
// the batch for connection reuse; each in-flight fetch owns its own buffers.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher creates a fetcher with the default client and rate limits.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: config.FetchTimeout},
		limiter: rate.NewLimiter(rate.Limit(config.FetchRatePerSec), config.FetchBurst),
	}
}

// FetchAll retrieves every source using a worker pool and returns one
// FetchResult per ref, in ref order. A slow or broken source is recorded as a
// failure for that source only; it never blocks or fails its siblings.
func (f *Fetcher) FetchAll(ctx context.Context, refs []types.SourceRef) []types.FetchResult {
	results := make([]types.FetchResult, len(refs))
	jobs := make(chan int, len(refs))
	var wg sync.WaitGroup

	workers := config.FetchWorkers
	if len(refs) < workers {
		workers = len(refs)
	}
	for w := 0; w < workers; w++ {
		go func() {
			for i := range jobs {
				results[i] = f.fetchOne(ctx, refs[i])
				wg.Done()
			}
		}()
	}

	for i := range refs {
		wg.Add(1)
		jobs <- i
	}
	wg.Wait()
	close(jobs)

	ok := 0
	total := 0
	for _, r := range results {
		if r.Failed {
			log.Printf("Warning: fetch failed for %q (%s, %s): %s",
				r.Ref.Title, r.Ref.Country, r.Ref.Target, r.Reason)
		} else {
			ok++
			total += r.CharCount
		}
	}
	log.Printf("Fetched %d/%d sources (%d chars)", ok, len(refs), total)
	return results
}

// fetchOne resolves a single ref to a result. Inline text is passed through,
// feed URLs are parsed as feeds, everything else gets page extraction.
func (f *Fetcher) fetchOne(ctx context.Context, ref types.SourceRef) types.FetchResult {
	if ref.Kind == types.SourceExtra && !isURL(ref.Target) {
		text := CleanText(ref.Target)
		if text == "" {
			return types.FailedResult(ref, "empty inline text")
		}
		return types.OkResult(ref, text)
	}

	fctx, cancel := context.WithTimeout(ctx, config.FetchTimeout)
	defer cancel()

	if err := f.limiter.Wait(fctx); err != nil {
		return types.FailedResult(ref, "rate limit wait: "+err.Error())
	}

	if ref.Kind == types.SourceExtra && IsFeedURL(ref.Target) {
		text, err := FetchFeedText(fctx, f.client, ref.Target)
		if err != nil {
			return types.FailedResult(ref, err.Error())
		}
		return types.OkResult(ref, text)
	}

	text, err := f.fetchPage(fctx, ref.Target)
	if err != nil {
		return types.FailedResult(ref, err.Error())
	}
	return types.OkResult(ref, text)
}

func (f *Fetcher) fetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("bad request: %w", err)
	}
	req.Header.Set("User-Agent", config.UserAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transport: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, config.MaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text, err := ExtractText(pageURL, body)
	if err != nil {
		return "", err
	}
	log.Printf("Extracted %d chars from %s in %s", len(text), pageURL, time.Since(start).Round(time.Millisecond))
	return text, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
