package config

import "time"

// Fetching Constants
const (
	// FetchWorkers is the number of concurrent source fetchers per request
	FetchWorkers = 5

	// FetchTimeout bounds a single source fetch end to end
	FetchTimeout = 15 * time.Second

	// FetchRatePerSec throttles outbound requests within one batch
	FetchRatePerSec = 4

	// FetchBurst is the rate limiter burst size
	FetchBurst = 8

	// MaxBodyBytes caps how much of a response body is read
	MaxBodyBytes = 2 << 20

	// UserAgent is sent with every outbound request
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Extraction Constants
const (
	// ReadabilityMinChars is the floor below which the structured extractor
	// result is discarded in favour of the fallback parser
	ReadabilityMinChars = 200

	// FallbackMinParagraphChars drops boilerplate-short paragraphs
	FallbackMinParagraphChars = 50

	// FallbackMaxParagraphs bounds fallback parsing work per page
	FallbackMaxParagraphs = 50

	// MaxSourceChars caps text taken from a single source
	MaxSourceChars = 8000

	// MaxFeedItems bounds how many feed entries contribute text
	MaxFeedItems = 20
)

// Corpus Constants
const (
	// MinSourceChars is the per-source usable-length floor
	MinSourceChars = 200

	// MinCorpusChars is the minimum corpus size for analysis to proceed
	MinCorpusChars = 500

	// ShingleSize is the word-window width for near-duplicate detection
	ShingleSize = 8

	// DuplicateJaccard is the shingle-overlap threshold for rejecting a source
	DuplicateJaccard = 0.8
)

// Scoring Constants
const (
	// ScoreNormalizer converts weighted hits to the 0-10 scale; a corpus of
	// the scale the system targets saturates near the top
	ScoreNormalizer = 250.0

	// MaxScore is the normalized score ceiling
	MaxScore = 10.0

	// MaxMatchesPerCategory bounds retained evidence per category
	MaxMatchesPerCategory = 5

	// ContextWindow is the number of characters kept on each side of a hit
	ContextWindow = 80
)

// Risk Constants
const (
	// CriticalHighIndicators is the HIGH-severity hit count that escalates to CRITICAL
	CriticalHighIndicators = 2

	// ElevatedModerateIndicators is the MODERATE hit count that can escalate to HIGH
	ElevatedModerateIndicators = 5

	// ElevatedSectorScore is the combined industry+government score backing that escalation
	ElevatedSectorScore = 10.0

	// MaxIndicatorExamples bounds context examples kept per indicator term
	MaxIndicatorExamples = 3
)

// Trend Constants
const (
	// MinTrendYear is the earliest plausible calendar year for events
	MinTrendYear = 1990

	// MaxHighlightsPerYear bounds retained highlight sentences per bucket
	MaxHighlightsPerYear = 3

	// MaxHighlightChars truncates a highlight sentence
	MaxHighlightChars = 240

	// RecentTrendWindow is how many trailing year-buckets count as "recent"
	RecentTrendWindow = 3

	// TrendMargin is the recent/earlier ratio past which activity is
	// increasing (or below its inverse, decreasing)
	TrendMargin = 1.25
)

// Narrative Constants
const (
	// ComparisonEpsilon is the score gap below which two countries are comparable
	ComparisonEpsilon = 0.5

	// SummaryTopCategories is how many categories the per-country summary names
	SummaryTopCategories = 3

	// SummarySnippets is how many evidence snippets the summary quotes
	SummarySnippets = 2

	// HighConfidenceChars is the corpus size above which confidence can be high
	HighConfidenceChars = 20000

	// LowConfidenceChars is the corpus size at or below which confidence is low
	LowConfidenceChars = 2000
)

// Report Constants
const (
	// ReportsDir is the directory rendered reports are written to
	ReportsDir = "reports"
)
