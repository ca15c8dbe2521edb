// Package corpus merges per-source fetch results into the validated text
// corpus that all analysis stages consume.
package corpus

import (
	"fmt"
	"hash/fnv"
	"log"
	"strings"

	"techatlas/config"
	"techatlas/types"
)

// InsufficientDataError means a country's corpus fell below the usable-length
// floor and no meaningful analysis can proceed for it.
type InsufficientDataError struct {
	Country    string
	TotalChars int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: only %d characters collected (minimum %d)",
		e.Country, e.TotalChars, config.MinCorpusChars)
}

// Build concatenates usable fetch results into a Corpus. Sources below the
// per-source length floor are skipped, as are near-duplicates of text already
// included, so repeated mirrors cannot inflate downstream keyword counts.
// Returns InsufficientDataError when the merged text is below MinCorpusChars.
func Build(country, domainLabel string, results []types.FetchResult) (*types.Corpus, error) {
	c := &types.Corpus{Country: country, DomainLabel: domainLabel}

	var parts []string
	var accepted []shingleSet
	for _, r := range results {
		if r.Failed {
			c.FailedSources++
			continue
		}
		if r.CharCount < config.MinSourceChars {
			c.SkippedShort++
			continue
		}
		set := shinglesOf(r.Text)
		if isDuplicate(r.Text, set, parts, accepted) {
			c.SkippedDuplicate++
			log.Printf("Skipping near-duplicate source %q for %s", r.Ref.Title, country)
			continue
		}
		parts = append(parts, r.Text)
		accepted = append(accepted, set)
		c.ContributingSources++
	}

	c.Text = strings.Join(parts, "\n\n")
	c.TotalChars = len(c.Text)

	if c.TotalChars < config.MinCorpusChars {
		c.Insufficient = true
		return c, &InsufficientDataError{Country: country, TotalChars: c.TotalChars}
	}
	log.Printf("Corpus for %s (%s): %d chars from %d sources (%d short, %d duplicate, %d failed)",
		country, domainLabel, c.TotalChars, c.ContributingSources,
		c.SkippedShort, c.SkippedDuplicate, c.FailedSources)
	return c, nil
}

type shingleSet map[uint64]struct{}

// shinglesOf hashes sliding word windows of the normalized text.
func shinglesOf(text string) shingleSet {
	words := strings.Fields(strings.ToLower(text))
	set := make(shingleSet)
	if len(words) < config.ShingleSize {
		if len(words) == 0 {
			return set
		}
		set[hashWords(words)] = struct{}{}
		return set
	}
	for i := 0; i+config.ShingleSize <= len(words); i++ {
		set[hashWords(words[i:i+config.ShingleSize])] = struct{}{}
	}
	return set
}

func hashWords(words []string) uint64 {
	h := fnv.New64a()
	for _, w := range words {
		h.Write([]byte(w))
		h.Write([]byte{' '})
	}
	return h.Sum64()
}

// isDuplicate checks the candidate against every accepted source: direct
// containment catches truncated mirrors, shingle Jaccard catches reworded or
// reordered copies.
func isDuplicate(text string, set shingleSet, parts []string, accepted []shingleSet) bool {
	lower := strings.ToLower(text)
	for i, prior := range parts {
		priorLower := strings.ToLower(prior)
		if strings.Contains(priorLower, lower) || strings.Contains(lower, priorLower) {
			return true
		}
		if jaccard(set, accepted[i]) >= config.DuplicateJaccard {
			return true
		}
	}
	return false
}

func jaccard(a, b shingleSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for k := range small {
		if _, ok := large[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
