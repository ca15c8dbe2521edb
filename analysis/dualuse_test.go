package analysis

import (
	"strings"
	"testing"

	"techatlas/types"
)

func TestRiskClassificationTotal(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.RiskLevel
	}{
		{"clean civilian text", "University research into renewable energy storage.", types.RiskLow},
		{"one moderate indicator", "The lab works on military drone navigation.", types.RiskModerate},
		{"one high indicator", "Reports describe a cyber weapon under development.", types.RiskHigh},
		{"two high indicators", "A cyber weapon program and autonomous weapons research were cited.", types.RiskCritical},
		{"empty corpus", "", types.RiskLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := ScoreCategories(tt.text)
			got := AssessDualUse(tt.text, scores)
			if got.RiskLevel != tt.want {
				t.Errorf("risk = %s, want %s", got.RiskLevel, tt.want)
			}
			if got.RiskLevel.Rank() < 0 {
				t.Errorf("risk level %s has no rank", got.RiskLevel)
			}
		})
	}
}

func TestModerateEscalatesWithSectorActivity(t *testing.T) {
	// Dense moderate indicators plus heavy industry/government activity
	// should reach HIGH without any high-severity indicator.
	base := "The ministry program funds military drone and spy satellite and military satellite and " +
		"target recognition and military communications work. "
	filler := strings.Repeat("Government policy initiative supports national industry and manufacturing companies. ", 60)
	text := base + filler

	scores := ScoreCategories(text)
	sector := ScoreByName(scores, "industry").NormalizedScore + ScoreByName(scores, "government").NormalizedScore
	if sector < 10 {
		t.Fatalf("test corpus too weak, sector score %v", sector)
	}
	got := AssessDualUse(text, scores)
	if got.RiskLevel != types.RiskHigh {
		t.Errorf("risk = %s, want HIGH", got.RiskLevel)
	}
}

func TestRiskMonotonicity(t *testing.T) {
	// Appending more indicator text never lowers the classification.
	texts := []string{
		"Civilian research only.",
		"Civilian research only. Some military drone work.",
		"Civilian research only. Some military drone work. A cyber weapon was found.",
		"Civilian research only. Some military drone work. A cyber weapon was found. Also autonomous weapons.",
	}
	prev := -1
	for _, text := range texts {
		got := AssessDualUse(text, ScoreCategories(text))
		if got.RiskLevel.Rank() < prev {
			t.Fatalf("risk decreased with more evidence at %q", text)
		}
		prev = got.RiskLevel.Rank()
	}
}

func TestComplianceMapping(t *testing.T) {
	tests := []struct {
		text string
		want types.ComplianceStatus
	}{
		{"Peaceful agricultural technology.", types.ComplianceCompliant},
		{"A military drone was tested.", types.ComplianceMonitoringRequired},
		{"A cyber weapon exists here.", types.ComplianceNonCompliant},
		{"A cyber weapon and a bioweapon exist here.", types.ComplianceCriticalViolation},
	}
	for _, tt := range tests {
		got := AssessDualUse(tt.text, ScoreCategories(tt.text))
		if got.ComplianceStatus != tt.want {
			t.Errorf("%q: compliance = %s, want %s", tt.text, got.ComplianceStatus, tt.want)
		}
		if got.ComplianceNotes == "" || got.RiskDescription == "" {
			t.Errorf("%q: missing descriptive fields", tt.text)
		}
	}
}

func TestIndicatorHitsCarryContext(t *testing.T) {
	text := "The agency confirmed that uranium enrichment capacity expanded last year."
	got := AssessDualUse(text, ScoreCategories(text))
	if len(got.Indicators) != 1 {
		t.Fatalf("got %d indicator hits, want 1", len(got.Indicators))
	}
	hit := got.Indicators[0]
	if hit.Indicator != "uranium enrichment" {
		t.Errorf("indicator = %q", hit.Indicator)
	}
	if hit.Severity != types.SeverityModerate {
		t.Errorf("severity = %s", hit.Severity)
	}
	if !strings.Contains(hit.Context, "uranium enrichment") {
		t.Errorf("context %q missing the matched term", hit.Context)
	}
}

func TestRecommendationsPresentForAllLevels(t *testing.T) {
	for _, text := range []string{
		"Civilian only.",
		"A military drone.",
		"A cyber weapon.",
		"A cyber weapon and nuclear weapon.",
	} {
		got := AssessDualUse(text, ScoreCategories(text))
		if len(got.Recommendations) == 0 {
			t.Errorf("%q: no recommendations for %s", text, got.RiskLevel)
		}
	}
}

func TestMonitoringFlag(t *testing.T) {
	low := AssessDualUse("Civilian crops.", ScoreCategories("Civilian crops."))
	if low.MonitoringRequired {
		t.Errorf("LOW risk should not require monitoring")
	}
	mod := AssessDualUse("A military drone.", ScoreCategories("A military drone."))
	if !mod.MonitoringRequired {
		t.Errorf("MODERATE risk should require monitoring")
	}
}

func TestDominantThemeTieAlphabetical(t *testing.T) {
	hits := []types.IndicatorHit{
		{Theme: "space"}, {Theme: "cyber"},
	}
	if got := dominantTheme(hits); got != "cyber" {
		t.Errorf("tie should resolve alphabetically, got %q", got)
	}
}
