package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SourceKind distinguishes catalog-expanded sources from caller-supplied ones.
type SourceKind string

const (
	SourceCatalog SourceKind = "catalog"
	SourceExtra   SourceKind = "extra"
)

// SourceRef identifies a single source to fetch. Immutable once resolved.
type SourceRef struct {
	ID        string     `json:"id"`
	Target    string     `json:"target"` // URL, feed URL, or inline text
	Title     string     `json:"title"`
	Kind      SourceKind `json:"kind"`
	Country   string     `json:"country"`
	DomainKey string     `json:"domain_key"`
}

// FetchResult records the outcome of fetching one source. A failed fetch is
// data, not an error: it never aborts the batch.
type FetchResult struct {
	Ref       SourceRef `json:"ref"`
	Text      string    `json:"-"`
	CharCount int       `json:"char_count"`
	Failed    bool      `json:"failed"`
	Reason    string    `json:"reason,omitempty"`
}

// OkResult builds a successful fetch outcome.
func OkResult(ref SourceRef, text string) FetchResult {
	return FetchResult{Ref: ref, Text: text, CharCount: len(text)}
}

// FailedResult builds a failed fetch outcome with a diagnostic reason.
func FailedResult(ref SourceRef, reason string) FetchResult {
	return FetchResult{Ref: ref, Failed: true, Reason: reason}
}

// Corpus is the validated, concatenated text for one country and domain.
type Corpus struct {
	Country             string `json:"country"`
	DomainLabel         string `json:"domain_label"`
	Text                string `json:"-"`
	TotalChars          int    `json:"total_chars"`
	ContributingSources int    `json:"contributing_sources"`
	SkippedShort        int    `json:"skipped_short"`
	SkippedDuplicate    int    `json:"skipped_duplicate"`
	FailedSources       int    `json:"failed_sources"`
	Insufficient        bool   `json:"insufficient"`
}

// CategoryMatch is one keyword hit with its surrounding context.
type CategoryMatch struct {
	Term    string `json:"term"`
	Context string `json:"context"`
}

// CategoryScore is the scored result for one keyword category.
type CategoryScore struct {
	Category        string          `json:"category"`
	RawHits         int             `json:"raw_hits"`
	WeightedHits    int             `json:"weighted_hits"`
	NormalizedScore float64         `json:"normalized_score"`
	Matches         []CategoryMatch `json:"matches"`
}

// Severity tags an indicator term with its intrinsic weight.
type Severity string

const (
	SeverityModerate Severity = "MODERATE"
	SeverityHigh     Severity = "HIGH"
)

// RiskLevel is the dual-use risk classification, ordered LOW < MODERATE < HIGH < CRITICAL.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Rank returns the ordinal position of the risk level for ordering checks.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskModerate:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	}
	return -1
}

// ComplianceStatus is the compliance classification derived from risk level.
type ComplianceStatus string

const (
	ComplianceCompliant          ComplianceStatus = "COMPLIANT"
	ComplianceMonitoringRequired ComplianceStatus = "MONITORING_REQUIRED"
	ComplianceNonCompliant       ComplianceStatus = "NON_COMPLIANT"
	ComplianceCriticalViolation  ComplianceStatus = "CRITICAL_VIOLATION"
)

// IndicatorHit is a matched military/strategic indicator with context.
type IndicatorHit struct {
	Indicator string   `json:"indicator"`
	Context   string   `json:"context"`
	Severity  Severity `json:"severity"`
	Theme     string   `json:"theme"`
}

// DualUseAssessment is the risk/compliance result for one country.
type DualUseAssessment struct {
	RiskLevel          RiskLevel        `json:"risk_level"`
	RiskDescription    string           `json:"risk_description"`
	ComplianceStatus   ComplianceStatus `json:"compliance_status"`
	ComplianceNotes    string           `json:"compliance_notes"`
	Indicators         []IndicatorHit   `json:"indicators"`
	Recommendations    []string         `json:"recommendations"`
	MonitoringRequired bool             `json:"monitoring_required"`
}

// TrendBucket aggregates year-anchored activity.
type TrendBucket struct {
	Year       int      `json:"year"`
	EventCount int      `json:"event_count"`
	Highlights []string `json:"highlights"`
}

// Timeline is the ordered chronological analysis with derived trend fields.
type Timeline struct {
	Buckets        []TrendBucket `json:"timeline"`
	ActivityTrend  string        `json:"activity_trend"`
	Acceleration   string        `json:"acceleration"`
	MostActiveYear int           `json:"most_active_year"`
	TotalEvents    int           `json:"total_events"`
}

// ComparisonVerdict declares the per-category leader in comparison mode.
type ComparisonVerdict struct {
	Category  string `json:"category"`
	Leader    string `json:"leader"` // country name or "comparable"
	Rationale string `json:"rationale"`
}

// DataQuality summarizes how much the reader should trust the result.
type DataQuality struct {
	Confidence string   `json:"confidence"` // high | medium | low
	Warnings   []string `json:"warnings"`
}

// DocumentRef points at the rendered report file.
type DocumentRef struct {
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
}

// AnalysisRequest is the input contract consumed from the calling layer.
type AnalysisRequest struct {
	Country      string   `json:"country" binding:"required"`
	Country2     string   `json:"country2"`
	Domain       string   `json:"domain" binding:"required"`
	ExtraSources []string `json:"extra_sources"`
	TimeRange    int      `json:"time_range"` // years back, 0 = unbounded
}

// Comparison reports whether the request is a two-country comparison.
func (r AnalysisRequest) Comparison() bool { return r.Country2 != "" }

// AnalysisResult is the terminal artifact handed to the rendering layer.
type AnalysisResult struct {
	Domain          string                       `json:"domain"`
	Countries       []string                     `json:"countries"`
	Summary         map[string]string            `json:"summary"`
	Scores          map[string][]CategoryScore   `json:"scores"`
	Comparison      []ComparisonVerdict          `json:"comparison,omitempty"`
	OverallAnalysis string                       `json:"overall_analysis"`
	DualUse         map[string]DualUseAssessment `json:"dual_use_analysis"`
	Trends          map[string]Timeline          `json:"chronological_analysis"`
	DataQuality     DataQuality                  `json:"data_quality"`
	Document        *DocumentRef                 `json:"document,omitempty"`
	AnalyzedAt      time.Time                    `json:"analyzed_at"`
}

// GenerateID creates a stable short ID from a source target.
func GenerateID(target string) string {
	hash := sha256.Sum256([]byte(target))
	return hex.EncodeToString(hash[:])[:16]
}
