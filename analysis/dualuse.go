package analysis

import (
	"fmt"
	"sort"

	"techatlas/config"
	"techatlas/types"
)

var riskDescriptions = map[types.RiskLevel]string{
	types.RiskLow:      "No significant military application indicators detected",
	types.RiskModerate: "Some military-adjacent activity detected; routine monitoring advised",
	types.RiskHigh:     "Substantial military application indicators alongside heavy state and industrial activity",
	types.RiskCritical: "Multiple high-severity weapons or offensive capability indicators detected",
}

var complianceByRisk = map[types.RiskLevel]types.ComplianceStatus{
	types.RiskLow:      types.ComplianceCompliant,
	types.RiskModerate: types.ComplianceMonitoringRequired,
	types.RiskHigh:     types.ComplianceNonCompliant,
	types.RiskCritical: types.ComplianceCriticalViolation,
}

var complianceNotes = map[types.ComplianceStatus]string{
	types.ComplianceCompliant:          "Activity appears consistent with civilian technology development.",
	types.ComplianceMonitoringRequired: "Military-adjacent indicators present; periodic review recommended.",
	types.ComplianceNonCompliant:       "Indicator density suggests activity outside declared civilian scope.",
	types.ComplianceCriticalViolation:  "High-severity indicators demand immediate expert review.",
}

// AssessDualUse scans the corpus for military/strategic indicators and
// classifies dual-use risk. Classification is total: every corpus maps to
// exactly one of the four risk levels, and more indicator evidence never
// lowers the level.
func AssessDualUse(text string, scores []types.CategoryScore) types.DualUseAssessment {
	mustTables()

	var hits []types.IndicatorHit
	highCount := 0
	moderateCount := 0
	for _, ind := range indicatorPatterns {
		locs := ind.re.FindAllStringIndex(text, -1)
		for n, loc := range locs {
			if ind.def.Severity == types.SeverityHigh {
				highCount++
			} else {
				moderateCount++
			}
			if n >= config.MaxIndicatorExamples {
				continue
			}
			hits = append(hits, types.IndicatorHit{
				Indicator: ind.def.Term,
				Context:   contextAround(text, loc[0], len(ind.def.Term)),
				Severity:  ind.def.Severity,
				Theme:     ind.def.Theme,
			})
		}
	}

	sectorScore := ScoreByName(scores, "industry").NormalizedScore +
		ScoreByName(scores, "government").NormalizedScore

	level := classifyRisk(highCount, moderateCount, sectorScore)
	compliance := complianceByRisk[level]

	return types.DualUseAssessment{
		RiskLevel:          level,
		RiskDescription:    riskDescriptions[level],
		ComplianceStatus:   compliance,
		ComplianceNotes:    complianceNotes[compliance],
		Indicators:         hits,
		Recommendations:    recommendations(level, highCount, moderateCount, hits),
		MonitoringRequired: level != types.RiskLow,
	}
}

// classifyRisk applies the fixed escalation ladder. Evaluated top down, so
// the strongest matching rule wins.
func classifyRisk(highCount, moderateCount int, sectorScore float64) types.RiskLevel {
	switch {
	case highCount >= config.CriticalHighIndicators:
		return types.RiskCritical
	case highCount == 1:
		return types.RiskHigh
	case moderateCount >= config.ElevatedModerateIndicators && sectorScore >= config.ElevatedSectorScore:
		return types.RiskHigh
	case moderateCount >= 1:
		return types.RiskModerate
	default:
		return types.RiskLow
	}
}

func recommendations(level types.RiskLevel, highCount, moderateCount int, hits []types.IndicatorHit) []string {
	var recs []string
	switch level {
	case types.RiskCritical:
		recs = append(recs,
			"Escalate to export control and non-proliferation specialists immediately",
			fmt.Sprintf("Investigate %d high-severity military application indicators", highCount))
	case types.RiskHigh:
		recs = append(recs,
			"Conduct an in-depth review of flagged military application activity",
			fmt.Sprintf("Investigate %d military application indicators", highCount+moderateCount))
	case types.RiskModerate:
		recs = append(recs,
			"Maintain periodic monitoring of military-adjacent development",
			fmt.Sprintf("Track %d military application indicators over time", moderateCount))
	default:
		recs = append(recs, "No special monitoring required; reassess on next data refresh")
	}

	if theme := dominantTheme(hits); theme != "" && level != types.RiskLow {
		recs = append(recs, fmt.Sprintf("Focus review on %s-related indicators", theme))
	}
	return recs
}

// dominantTheme picks the most frequent indicator theme, resolving count ties
// alphabetically so the output is stable.
func dominantTheme(hits []types.IndicatorHit) string {
	if len(hits) == 0 {
		return ""
	}
	counts := make(map[string]int)
	for _, h := range hits {
		counts[h.Theme]++
	}
	themes := make([]string, 0, len(counts))
	for t := range counts {
		themes = append(themes, t)
	}
	sort.Strings(themes)
	best := themes[0]
	for _, t := range themes[1:] {
		if counts[t] > counts[best] {
			best = t
		}
	}
	return best
}
