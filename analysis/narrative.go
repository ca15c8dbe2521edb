package analysis

import (
	"fmt"
	"sort"
	"strings"

	"techatlas/config"
	"techatlas/types"
)

// rankScores orders categories by score descending, ties broken
// alphabetically, so narrative output is stable for identical inputs.
func rankScores(scores []types.CategoryScore) []types.CategoryScore {
	ranked := make([]types.CategoryScore, len(scores))
	copy(ranked, scores)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].NormalizedScore != ranked[j].NormalizedScore {
			return ranked[i].NormalizedScore > ranked[j].NormalizedScore
		}
		return ranked[i].Category < ranked[j].Category
	})
	return ranked
}

// ComposeSummary renders the per-country prose summary from score data. All
// text comes from fixed templates filled with computed values.
func ComposeSummary(country, domainLabel string, scores []types.CategoryScore, corpus *types.Corpus) string {
	ranked := rankScores(scores)

	var b strings.Builder
	fmt.Fprintf(&b, "%s shows activity in %s across %d analyzed categories. ",
		country, domainLabel, len(scores))

	top := ranked
	if len(top) > config.SummaryTopCategories {
		top = top[:config.SummaryTopCategories]
	}
	names := make([]string, 0, len(top))
	for _, s := range top {
		names = append(names, fmt.Sprintf("%s (%.1f/10)", s.Category, s.NormalizedScore))
	}
	fmt.Fprintf(&b, "Strongest areas: %s. ", strings.Join(names, ", "))

	snippets := 0
	for _, s := range ranked {
		for _, m := range s.Matches {
			if snippets >= config.SummarySnippets {
				break
			}
			fmt.Fprintf(&b, "Notable %s mention: %q. ", s.Category, strings.TrimSpace(m.Context))
			snippets++
		}
		if snippets >= config.SummarySnippets {
			break
		}
	}

	fmt.Fprintf(&b, "Assessment draws on %d sources totalling %d characters.",
		corpus.ContributingSources, corpus.TotalChars)
	return b.String()
}

// CompareCategories produces one verdict per category. Scores within the
// comparison epsilon are declared comparable rather than picking a leader.
func CompareCategories(country1, country2 string, scores1, scores2 []types.CategoryScore) []types.ComparisonVerdict {
	verdicts := make([]types.ComparisonVerdict, 0, len(scores1))
	for _, s1 := range scores1 {
		s2 := ScoreByName(scores2, s1.Category)
		v := types.ComparisonVerdict{Category: s1.Category}
		diff := s1.NormalizedScore - s2.NormalizedScore
		switch {
		case diff > config.ComparisonEpsilon:
			v.Leader = country1
			v.Rationale = fmt.Sprintf("%s leads %s in %s (%.1f vs %.1f)",
				country1, country2, s1.Category, s1.NormalizedScore, s2.NormalizedScore)
		case diff < -config.ComparisonEpsilon:
			v.Leader = country2
			v.Rationale = fmt.Sprintf("%s leads %s in %s (%.1f vs %.1f)",
				country2, country1, s1.Category, s2.NormalizedScore, s1.NormalizedScore)
		default:
			v.Leader = "comparable"
			v.Rationale = fmt.Sprintf("%s and %s are comparable in %s (%.1f vs %.1f)",
				country1, country2, s1.Category, s1.NormalizedScore, s2.NormalizedScore)
		}
		verdicts = append(verdicts, v)
	}
	return verdicts
}

// ComposeOverall builds the comparison-mode narrative from verdicts and risk
// assessments.
func ComposeOverall(country1, country2, domainLabel string,
	verdicts []types.ComparisonVerdict,
	risk1, risk2 types.DualUseAssessment) string {

	lead1 := 0
	lead2 := 0
	comparable := 0
	for _, v := range verdicts {
		switch v.Leader {
		case country1:
			lead1++
		case country2:
			lead2++
		default:
			comparable++
		}
	}

	var b strings.Builder
	switch {
	case lead1 > lead2:
		fmt.Fprintf(&b, "In %s, %s leads %s in %d of %d categories. ",
			domainLabel, country1, country2, lead1, len(verdicts))
	case lead2 > lead1:
		fmt.Fprintf(&b, "In %s, %s leads %s in %d of %d categories. ",
			domainLabel, country2, country1, lead2, len(verdicts))
	default:
		fmt.Fprintf(&b, "In %s, %s and %s show closely matched profiles. ",
			domainLabel, country1, country2)
	}
	if comparable > 0 {
		fmt.Fprintf(&b, "The countries are comparable in %d categories. ", comparable)
	}
	for _, v := range verdicts {
		fmt.Fprintf(&b, "%s. ", v.Rationale)
	}
	fmt.Fprintf(&b, "Dual-use risk: %s is %s, %s is %s.",
		country1, risk1.RiskLevel, country2, risk2.RiskLevel)
	return b.String()
}

// ComposeSingleOverall builds the single-country narrative.
func ComposeSingleOverall(country, domainLabel string,
	scores []types.CategoryScore, risk types.DualUseAssessment, tl types.Timeline) string {

	ranked := rankScores(scores)
	var b strings.Builder
	fmt.Fprintf(&b, "%s presents a ", country)
	if len(ranked) > 0 && ranked[0].NormalizedScore >= 5 {
		b.WriteString("strong")
	} else if len(ranked) > 0 && ranked[0].NormalizedScore >= 2 {
		b.WriteString("developing")
	} else {
		b.WriteString("limited")
	}
	fmt.Fprintf(&b, " profile in %s", domainLabel)
	if len(ranked) > 0 {
		fmt.Fprintf(&b, ", led by %s activity (%.1f/10)", ranked[0].Category, ranked[0].NormalizedScore)
	}
	b.WriteString(". ")
	if tl.MostActiveYear > 0 {
		fmt.Fprintf(&b, "Chronological activity is %s, with %d being the most active year. ",
			tl.ActivityTrend, tl.MostActiveYear)
	}
	fmt.Fprintf(&b, "Dual-use risk is assessed as %s.", risk.RiskLevel)
	return b.String()
}

// AssessQuality grades result confidence from corpus sizes and collects the
// caveats a reader needs. Confidence is high only when every corpus is large,
// and low when any corpus is near the usable floor.
func AssessQuality(corpora []*types.Corpus) types.DataQuality {
	q := types.DataQuality{Confidence: "medium"}

	allLarge := true
	anySmall := false
	for _, c := range corpora {
		if c.TotalChars < config.HighConfidenceChars {
			allLarge = false
		}
		if c.TotalChars <= config.LowConfidenceChars {
			anySmall = true
		}
		if c.FailedSources > 0 {
			q.Warnings = append(q.Warnings, fmt.Sprintf(
				"%d of %d sources failed to fetch for %s",
				c.FailedSources, c.FailedSources+c.ContributingSources+c.SkippedShort+c.SkippedDuplicate, c.Country))
		}
		if c.SkippedDuplicate > 0 {
			q.Warnings = append(q.Warnings, fmt.Sprintf(
				"%d near-duplicate sources excluded for %s", c.SkippedDuplicate, c.Country))
		}
	}

	switch {
	case anySmall:
		q.Confidence = "low"
		q.Warnings = append(q.Warnings, "one or more corpora are small; treat scores as indicative only")
	case allLarge:
		q.Confidence = "high"
	}
	return q
}
