package corpus

import (
	"errors"
	"strings"
	"testing"

	"techatlas/types"
)

func okResult(text string) types.FetchResult {
	return types.OkResult(types.SourceRef{ID: types.GenerateID(text), Title: "t"}, text)
}

func longText(seed string) string {
	return strings.Repeat(seed+" ", 40)
}

func TestBuildMergesUsableSources(t *testing.T) {
	a := longText("Alpha source text about robotics research programs and funding")
	b := longText("Beta source text covering manufacturing industry developments nationwide")

	c, err := Build("Japan", "Robotics", []types.FetchResult{okResult(a), okResult(b)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.ContributingSources != 2 {
		t.Errorf("contributing = %d, want 2", c.ContributingSources)
	}
	if !strings.Contains(c.Text, "Alpha source") || !strings.Contains(c.Text, "Beta source") {
		t.Errorf("merged text missing sources")
	}
	if c.TotalChars != len(c.Text) {
		t.Errorf("TotalChars %d != len(Text) %d", c.TotalChars, len(c.Text))
	}
}

func TestBuildSkipsFailedAndShort(t *testing.T) {
	long := longText("Usable text for the corpus covering enough distinct material easily")
	results := []types.FetchResult{
		types.FailedResult(types.SourceRef{Title: "down"}, "http status 500"),
		okResult("too short"),
		okResult(long),
	}
	c, err := Build("Japan", "Robotics", results)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.FailedSources != 1 || c.SkippedShort != 1 || c.ContributingSources != 1 {
		t.Errorf("diagnostics wrong: %+v", c)
	}
	if strings.Contains(c.Text, "too short") {
		t.Errorf("short source leaked into corpus")
	}
}

func TestBuildSkipsExactDuplicate(t *testing.T) {
	text := longText("Identical mirrored content served from two different hosts today")
	c, err := Build("Japan", "Robotics", []types.FetchResult{okResult(text), okResult(text)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.SkippedDuplicate != 1 || c.ContributingSources != 1 {
		t.Errorf("duplicate not skipped: %+v", c)
	}
}

func TestBuildSkipsContainedMirror(t *testing.T) {
	full := longText("A complete article with many repeated sentences about national technology strategy")
	truncated := full[:len(full)/2]
	c, err := Build("Japan", "Robotics", []types.FetchResult{okResult(full), okResult(truncated)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.SkippedDuplicate != 1 {
		t.Errorf("truncated mirror not skipped: %+v", c)
	}
}

func TestBuildKeepsDistinctSources(t *testing.T) {
	a := longText("First body of text examining aerospace investment and research lately")
	b := longText("Second body of text describing agricultural machinery exports worldwide")
	c, err := Build("Japan", "Robotics", []types.FetchResult{okResult(a), okResult(b)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.SkippedDuplicate != 0 || c.ContributingSources != 2 {
		t.Errorf("distinct sources misclassified: %+v", c)
	}
}

func TestBuildInsufficientData(t *testing.T) {
	c, err := Build("Japan", "Robotics", []types.FetchResult{
		types.FailedResult(types.SourceRef{Title: "a"}, "timeout"),
		types.FailedResult(types.SourceRef{Title: "b"}, "timeout"),
	})
	if err == nil {
		t.Fatalf("expected insufficient data error")
	}
	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error type = %T", err)
	}
	if insufficient.Country != "Japan" {
		t.Errorf("country = %q", insufficient.Country)
	}
	if !c.Insufficient {
		t.Errorf("corpus not flagged insufficient")
	}
}

func TestJaccardBounds(t *testing.T) {
	a := shinglesOf(longText("alpha beta gamma delta epsilon zeta eta theta iota kappa"))
	if got := jaccard(a, a); got != 1 {
		t.Errorf("self jaccard = %v, want 1", got)
	}
	b := shinglesOf(longText("one two three four five six seven eight nine ten"))
	if got := jaccard(a, b); got != 0 {
		t.Errorf("disjoint jaccard = %v, want 0", got)
	}
	if got := jaccard(a, shingleSet{}); got != 0 {
		t.Errorf("empty jaccard = %v, want 0", got)
	}
}
