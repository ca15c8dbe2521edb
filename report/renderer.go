// Package report renders analysis results to markdown and persists them.
package report

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"time"

	"techatlas/types"
)

var filenameSafeRe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename builds the report filename from the analyzed countries, domain
// and timestamp, sanitized for filesystem use.
func Filename(countries []string, domain string, ts time.Time) string {
	stem := strings.Join(countries, "_vs_") + "_" + domain
	stem = filenameSafeRe.ReplaceAllString(strings.ReplaceAll(stem, " ", "_"), "")
	return fmt.Sprintf("%s_%s.md", stem, ts.Format("20060102_150405"))
}

var reportTmpl = template.Must(template.New("report").Parse(`# Technology Intelligence Report: {{.Title}}

Generated: {{.Generated}}

## Summary
{{range $c := .Countries}}
### {{$c}}

{{index $.Summary $c}}
{{end}}
## Category Scores
{{range $c := .Countries}}
### {{$c}}

{{range index $.Scores $c}}- {{.Category}}: {{printf "%.1f" .NormalizedScore}}/10 ({{.RawHits}} mentions)
{{end}}{{end}}{{if .Comparison}}
## Comparison

{{range .Comparison}}- {{.Rationale}}
{{end}}{{end}}
## Overall Analysis

{{.OverallAnalysis}}

## Dual-Use Assessment
{{range $c := .Countries}}{{with index $.DualUse $c}}
### {{$c}}

- Risk level: {{.RiskLevel}}
- Compliance: {{.ComplianceStatus}}
- {{.RiskDescription}}
{{range .Recommendations}}- Recommendation: {{.}}
{{end}}{{end}}{{end}}
## Chronological Activity
{{range $c := .Countries}}{{with index $.Trends $c}}
### {{$c}}

Trend: {{.ActivityTrend}} ({{.Acceleration}}), {{.TotalEvents}} dated events{{if .MostActiveYear}}, most active in {{.MostActiveYear}}{{end}}.
{{range .Buckets}}- {{.Year}}: {{.EventCount}} events
{{end}}{{end}}{{end}}
## Data Quality

Confidence: {{.DataQuality.Confidence}}
{{range .DataQuality.Warnings}}- {{.}}
{{end}}`))

type reportData struct {
	Title           string
	Generated       string
	Countries       []string
	Summary         map[string]string
	Scores          map[string][]types.CategoryScore
	Comparison      []types.ComparisonVerdict
	OverallAnalysis string
	DualUse         map[string]types.DualUseAssessment
	Trends          map[string]types.Timeline
	DataQuality     types.DataQuality
}

// Render produces the markdown report body for a completed analysis.
func Render(result *types.AnalysisResult) (string, error) {
	title := strings.Join(result.Countries, " vs ") + ": " + result.Domain

	var b strings.Builder
	err := reportTmpl.Execute(&b, reportData{
		Title:           title,
		Generated:       result.AnalyzedAt.Format(time.RFC3339),
		Countries:       result.Countries,
		Summary:         result.Summary,
		Scores:          result.Scores,
		Comparison:      result.Comparison,
		OverallAnalysis: result.OverallAnalysis,
		DualUse:         result.DualUse,
		Trends:          result.Trends,
		DataQuality:     result.DataQuality,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return b.String(), nil
}
