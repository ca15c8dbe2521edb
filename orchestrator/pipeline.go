// Package orchestrator runs the end-to-end analysis pipeline and tracks the
// background tasks that drive it.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"techatlas/analysis"
	"techatlas/catalog"
	"techatlas/corpus"
	"techatlas/report"
	"techatlas/sources"
	"techatlas/types"
)

// ProgressFunc receives coarse progress updates while an analysis runs.
type ProgressFunc func(percent int, message string)

// Pipeline wires the resolver, fetcher, analyzers and report store into the
// full assessment flow.
type Pipeline struct {
	Catalog *catalog.Catalog
	Fetcher *sources.Fetcher
	Reports *report.Store
}

// NewPipeline assembles a pipeline with default components.
func NewPipeline(cat *catalog.Catalog, reports *report.Store) *Pipeline {
	return &Pipeline{
		Catalog: cat,
		Fetcher: sources.NewFetcher(),
		Reports: reports,
	}
}

// Run executes a full analysis for the request. One country with
// insufficient data fails the whole run; every other per-source problem
// degrades coverage instead of failing.
func (p *Pipeline) Run(ctx context.Context, req types.AnalysisRequest, progress ProgressFunc) (*types.AnalysisResult, error) {
	if progress == nil {
		progress = func(int, string) {}
	}

	countries := []string{req.Country}
	if req.Comparison() {
		countries = append(countries, req.Country2)
	}

	progress(5, "Resolving sources")
	resolutions := make([]sources.Resolution, len(countries))
	for i, country := range countries {
		resolutions[i] = sources.Resolve(p.Catalog, country, req.Domain, req.ExtraSources)
	}
	if !resolutions[0].Matched {
		log.Printf("Warning: domain %q not in catalog, using literal query with reduced coverage", req.Domain)
	}

	corpora := make([]*types.Corpus, len(countries))
	for i, country := range countries {
		progress(10+i*25, fmt.Sprintf("Collecting data for %s", country))
		results := p.Fetcher.FetchAll(ctx, resolutions[i].Refs)

		c, err := corpus.Build(country, resolutions[i].DomainLabel, results)
		if err != nil {
			return nil, err
		}
		corpora[i] = c
	}

	progress(60, "Scoring categories")
	now := time.Now()
	minYear := 0
	if req.TimeRange > 0 {
		minYear = now.Year() - req.TimeRange + 1
	}

	result := &types.AnalysisResult{
		Domain:     resolutions[0].DomainLabel,
		Countries:  countries,
		Summary:    make(map[string]string, len(countries)),
		Scores:     make(map[string][]types.CategoryScore, len(countries)),
		DualUse:    make(map[string]types.DualUseAssessment, len(countries)),
		Trends:     make(map[string]types.Timeline, len(countries)),
		AnalyzedAt: now,
	}

	scored := make([][]types.CategoryScore, len(countries))
	for i, country := range countries {
		scores := analysis.ScoreCategories(corpora[i].Text)
		scored[i] = scores
		result.Scores[country] = scores
		result.Summary[country] = analysis.ComposeSummary(country, corpora[i].DomainLabel, scores, corpora[i])
	}

	progress(75, "Assessing dual-use risk")
	for i, country := range countries {
		result.DualUse[country] = analysis.AssessDualUse(corpora[i].Text, scored[i])
	}

	progress(85, "Extracting chronological trends")
	for i, country := range countries {
		result.Trends[country] = analysis.ExtractTimeline(
			corpora[i].Text, resolutions[i].DomainTerms, minYear, now.Year())
	}

	progress(90, "Composing narrative")
	if req.Comparison() {
		result.Comparison = analysis.CompareCategories(countries[0], countries[1], scored[0], scored[1])
		result.OverallAnalysis = analysis.ComposeOverall(countries[0], countries[1],
			result.Domain, result.Comparison,
			result.DualUse[countries[0]], result.DualUse[countries[1]])
	} else {
		result.OverallAnalysis = analysis.ComposeSingleOverall(countries[0], result.Domain,
			scored[0], result.DualUse[countries[0]], result.Trends[countries[0]])
	}
	result.DataQuality = analysis.AssessQuality(corpora)
	if !resolutions[0].Matched {
		result.DataQuality.Warnings = append(result.DataQuality.Warnings,
			fmt.Sprintf("domain %q is not in the catalog; coverage may be reduced", req.Domain))
	}

	progress(95, "Rendering report")
	if p.Reports != nil {
		if body, err := report.Render(result); err != nil {
			log.Printf("Warning: failed to render report: %v", err)
		} else {
			filename := report.Filename(countries, result.Domain, now)
			if saved, err := p.Reports.Save(ctx, filename, body); err != nil {
				log.Printf("Warning: failed to save report: %v", err)
			} else {
				result.Document = &types.DocumentRef{
					Filename:    saved,
					DownloadURL: "/api/analysis/download/" + saved,
				}
			}
		}
	}

	progress(100, "Analysis complete")
	return result, nil
}
