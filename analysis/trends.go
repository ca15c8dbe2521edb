package analysis

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"techatlas/config"
	"techatlas/types"
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	yearRe          = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// activityKeywords are verbs that mark a sentence as describing an event.
// Sentence relevance also accepts domain terms and category keywords, see
// relevantSentence.
var activityKeywords = []string{
	"launched", "launch", "established", "founded", "announced", "introduced",
	"developed", "created", "invested", "funded", "published", "released",
	"started", "began", "initiated", "unveiled", "deployed", "opened",
	"built", "achieved", "approved", "adopted", "expanded", "signed",
}

// ExtractTimeline builds per-year activity buckets from year mentions that
// occur in sentences describing domain activity. maxYear caps accepted years
// (the caller passes the current year); minYearOverride above the default
// floor narrows the window for time-bounded requests.
func ExtractTimeline(text string, domainTerms []string, minYearOverride, maxYear int) types.Timeline {
	mustTables()

	minYear := config.MinTrendYear
	if minYearOverride > minYear {
		minYear = minYearOverride
	}

	type bucket struct {
		count      int
		highlights []string
	}
	buckets := make(map[int]*bucket)

	termPatterns := make([]*regexp.Regexp, 0, len(domainTerms))
	for _, t := range domainTerms {
		if t = strings.TrimSpace(t); t != "" {
			termPatterns = append(termPatterns, termPattern(t))
		}
	}

	total := 0
	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if !relevantSentence(sentence, termPatterns) {
			continue
		}
		for _, tok := range yearRe.FindAllString(sentence, -1) {
			year, err := strconv.Atoi(tok)
			if err != nil || year < minYear || year > maxYear {
				continue
			}
			b := buckets[year]
			if b == nil {
				b = &bucket{}
				buckets[year] = b
			}
			b.count++
			total++
			if len(b.highlights) < config.MaxHighlightsPerYear {
				b.highlights = append(b.highlights, truncate(sentence, config.MaxHighlightChars))
			}
		}
	}

	years := make([]int, 0, len(buckets))
	for y := range buckets {
		years = append(years, y)
	}
	sort.Ints(years)

	tl := types.Timeline{TotalEvents: total}
	for _, y := range years {
		tl.Buckets = append(tl.Buckets, types.TrendBucket{
			Year:       y,
			EventCount: buckets[y].count,
			Highlights: buckets[y].highlights,
		})
	}
	tl.ActivityTrend = activityTrend(tl.Buckets)
	tl.Acceleration = acceleration(tl.Buckets)
	tl.MostActiveYear = mostActiveYear(tl.Buckets)
	return tl
}

// relevantSentence gates which sentences count as chronological events. A
// year alone is not enough: the sentence must also carry an activity verb, a
// domain term, or a category keyword. Terms and keywords use word-boundary
// matching so short aliases like "ai" cannot fire inside ordinary words.
func relevantSentence(sentence string, termPatterns []*regexp.Regexp) bool {
	lower := strings.ToLower(sentence)
	for _, kw := range activityKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, re := range termPatterns {
		if re.MatchString(sentence) {
			return true
		}
	}
	for _, kws := range categoryPatterns {
		for _, kw := range kws {
			if kw.re.MatchString(sentence) {
				return true
			}
		}
	}
	return false
}

// activityTrend compares average activity in the most recent year buckets
// against the earlier ones. A margin keeps noise from flipping the verdict.
func activityTrend(buckets []types.TrendBucket) string {
	if len(buckets) <= config.RecentTrendWindow {
		return "stable"
	}
	split := len(buckets) - config.RecentTrendWindow
	earlier := averageCount(buckets[:split])
	recent := averageCount(buckets[split:])

	switch {
	case recent > earlier*config.TrendMargin:
		return "increasing"
	case earlier > recent*config.TrendMargin:
		return "decreasing"
	default:
		return "stable"
	}
}

// acceleration inspects year-over-year deltas of the bucket counts.
func acceleration(buckets []types.TrendBucket) string {
	if len(buckets) < 3 {
		return "flat"
	}
	rising := 0
	falling := 0
	for i := 2; i < len(buckets); i++ {
		prev := buckets[i-1].EventCount - buckets[i-2].EventCount
		cur := buckets[i].EventCount - buckets[i-1].EventCount
		if cur > prev {
			rising++
		} else if cur < prev {
			falling++
		}
	}
	switch {
	case rising > falling:
		return "accelerating"
	case falling > rising:
		return "decelerating"
	default:
		return "flat"
	}
}

// mostActiveYear resolves count ties in favor of the more recent year.
func mostActiveYear(buckets []types.TrendBucket) int {
	best := 0
	bestCount := -1
	for _, b := range buckets {
		if b.EventCount >= bestCount {
			best = b.Year
			bestCount = b.EventCount
		}
	}
	return best
}

func averageCount(buckets []types.TrendBucket) float64 {
	if len(buckets) == 0 {
		return 0
	}
	sum := 0
	for _, b := range buckets {
		sum += b.EventCount
	}
	return float64(sum) / float64(len(buckets))
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
