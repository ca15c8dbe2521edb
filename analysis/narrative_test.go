package analysis

import (
	"strings"
	"testing"

	"techatlas/types"
)

func scoresFor(vals map[string]float64) []types.CategoryScore {
	var out []types.CategoryScore
	for _, name := range CategoryNames() {
		out = append(out, types.CategoryScore{Category: name, NormalizedScore: vals[name]})
	}
	return out
}

func TestCompareCategoriesLeaders(t *testing.T) {
	s1 := scoresFor(map[string]float64{"research": 8.0, "industry": 2.0, "government": 5.0})
	s2 := scoresFor(map[string]float64{"research": 3.0, "industry": 6.0, "government": 5.3})

	verdicts := CompareCategories("Japan", "South Korea", s1, s2)
	if len(verdicts) != len(CategoryNames()) {
		t.Fatalf("got %d verdicts, want %d", len(verdicts), len(CategoryNames()))
	}
	byCat := map[string]types.ComparisonVerdict{}
	for _, v := range verdicts {
		byCat[v.Category] = v
	}
	if byCat["research"].Leader != "Japan" {
		t.Errorf("research leader = %q", byCat["research"].Leader)
	}
	if byCat["industry"].Leader != "South Korea" {
		t.Errorf("industry leader = %q", byCat["industry"].Leader)
	}
	// 5.0 vs 5.3 is inside the epsilon.
	if byCat["government"].Leader != "comparable" {
		t.Errorf("government leader = %q, want comparable", byCat["government"].Leader)
	}
	for _, v := range verdicts {
		if v.Rationale == "" {
			t.Errorf("%s verdict missing rationale", v.Category)
		}
	}
}

func TestCompareCategoriesSymmetric(t *testing.T) {
	s1 := scoresFor(map[string]float64{"research": 8.0})
	s2 := scoresFor(map[string]float64{"research": 3.0})

	ab := CompareCategories("A", "B", s1, s2)
	ba := CompareCategories("B", "A", s2, s1)
	for i := range ab {
		if ab[i].Leader != ba[i].Leader && !(ab[i].Leader == "comparable" && ba[i].Leader == "comparable") {
			t.Errorf("%s: leader flips with argument order: %q vs %q", ab[i].Category, ab[i].Leader, ba[i].Leader)
		}
	}
}

func TestComposeSummaryContent(t *testing.T) {
	text := "Government policy supports university research. A startup got venture funding in 2020."
	scores := ScoreCategories(text)
	c := &types.Corpus{Country: "Japan", DomainLabel: "Artificial Intelligence", TotalChars: len(text), ContributingSources: 2}

	summary := ComposeSummary("Japan", "Artificial Intelligence", scores, c)
	if !strings.Contains(summary, "Japan") || !strings.Contains(summary, "Artificial Intelligence") {
		t.Errorf("summary missing country/domain: %q", summary)
	}
	if !strings.Contains(summary, "2 sources") {
		t.Errorf("summary missing source count: %q", summary)
	}

	again := ComposeSummary("Japan", "Artificial Intelligence", scores, c)
	if summary != again {
		t.Errorf("summary not deterministic")
	}
}

func TestComposeOverallMentionsRisk(t *testing.T) {
	s1 := scoresFor(map[string]float64{"research": 8.0})
	s2 := scoresFor(map[string]float64{"research": 3.0})
	verdicts := CompareCategories("Japan", "South Korea", s1, s2)
	risk1 := types.DualUseAssessment{RiskLevel: types.RiskLow}
	risk2 := types.DualUseAssessment{RiskLevel: types.RiskModerate}

	out := ComposeOverall("Japan", "South Korea", "Artificial Intelligence", verdicts, risk1, risk2)
	if !strings.Contains(out, "Japan leads South Korea") {
		t.Errorf("overall missing lead sentence: %q", out)
	}
	if !strings.Contains(out, "LOW") || !strings.Contains(out, "MODERATE") {
		t.Errorf("overall missing risk levels: %q", out)
	}
}

func TestComposeSingleOverall(t *testing.T) {
	scores := scoresFor(map[string]float64{"research": 6.0, "industry": 1.0})
	risk := types.DualUseAssessment{RiskLevel: types.RiskLow}
	tl := types.Timeline{ActivityTrend: "increasing", MostActiveYear: 2023}

	out := ComposeSingleOverall("Canada", "Robotics", scores, risk, tl)
	for _, want := range []string{"Canada", "Robotics", "research", "increasing", "2023", "LOW"} {
		if !strings.Contains(out, want) {
			t.Errorf("single overall missing %q: %q", want, out)
		}
	}
}

func TestAssessQualityConfidence(t *testing.T) {
	big := &types.Corpus{Country: "A", TotalChars: 600000, ContributingSources: 5}
	medium := &types.Corpus{Country: "B", TotalChars: 10000, ContributingSources: 3}
	small := &types.Corpus{Country: "C", TotalChars: 2000, ContributingSources: 1}

	tests := []struct {
		name    string
		corpora []*types.Corpus
		want    string
	}{
		{"all large", []*types.Corpus{big, {Country: "B", TotalChars: 25000}}, "high"},
		{"mixed", []*types.Corpus{big, medium}, "medium"},
		{"one small", []*types.Corpus{big, small}, "low"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := AssessQuality(tt.corpora)
			if q.Confidence != tt.want {
				t.Errorf("confidence = %q, want %q", q.Confidence, tt.want)
			}
		})
	}
}

func TestAssessQualityWarnings(t *testing.T) {
	c := &types.Corpus{Country: "A", TotalChars: 30000, ContributingSources: 4, FailedSources: 2, SkippedDuplicate: 1}
	q := AssessQuality([]*types.Corpus{c})
	if len(q.Warnings) < 2 {
		t.Fatalf("expected fetch and duplicate warnings, got %v", q.Warnings)
	}
}

func TestRankScoresTieAlphabetical(t *testing.T) {
	scores := []types.CategoryScore{
		{Category: "industry", NormalizedScore: 4.0},
		{Category: "education", NormalizedScore: 4.0},
		{Category: "research", NormalizedScore: 9.0},
	}
	ranked := rankScores(scores)
	if ranked[0].Category != "research" || ranked[1].Category != "education" || ranked[2].Category != "industry" {
		t.Errorf("ranking wrong: %+v", ranked)
	}
}
