// Package analysis scores a validated corpus against fixed keyword
// taxonomies and derives risk, trend and narrative outputs from the scores.
package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"techatlas/types"
)

// Keyword is one weighted term in a category taxonomy.
type Keyword struct {
	Term   string
	Weight int
}

// CategoryDef is one named topical bucket with its keyword list.
type CategoryDef struct {
	Name     string
	Keywords []Keyword
}

// IndicatorDef is one military/strategic indicator term with its intrinsic
// severity. Indicators are scanned only by the risk assessor, never by the
// category scorer.
type IndicatorDef struct {
	Term     string
	Theme    string
	Severity types.Severity
}

// categoryDefs fixes both the category set and its iteration order, so every
// scan of the same corpus yields identically ordered output.
var categoryDefs = []CategoryDef{
	{Name: "research", Keywords: []Keyword{
		{"research", 1}, {"development", 1}, {"scientific", 1},
		{"study", 1}, {"laboratory", 1}, {"publication", 1},
	}},
	{Name: "industry", Keywords: []Keyword{
		{"startup", 1}, {"company", 1}, {"corporation", 1},
		{"industry", 1}, {"commercial", 1}, {"enterprise", 1}, {"manufacturing", 1},
	}},
	{Name: "government", Keywords: []Keyword{
		{"government", 1}, {"policy", 1}, {"initiative", 1},
		{"national", 1}, {"ministry", 1}, {"program", 1}, {"regulation", 1},
	}},
	{Name: "investment", Keywords: []Keyword{
		{"investment", 1}, {"funding", 1}, {"capital", 1},
		{"venture", 1}, {"finance", 1}, {"billion", 2},
	}},
	{Name: "education", Keywords: []Keyword{
		{"university", 1}, {"institute", 1}, {"education", 1},
		{"training", 1}, {"academic", 1}, {"scholar", 1},
	}},
	{Name: "innovation", Keywords: []Keyword{
		{"patent", 2}, {"innovation", 1}, {"breakthrough", 2},
		{"advancement", 1}, {"cutting-edge", 2}, {"prototype", 1},
	}},
}

// indicatorDefs is the dedicated dual-use taxonomy. Severity is intrinsic to
// the term: HIGH terms point at weapons or offensive capability, MODERATE
// terms at military-adjacent application.
var indicatorDefs = []IndicatorDef{
	{"autonomous weapons", "weapons", types.SeverityHigh},
	{"lethal autonomous", "weapons", types.SeverityHigh},
	{"combat robot", "weapons", types.SeverityHigh},
	{"cyber warfare", "cyber", types.SeverityHigh},
	{"cyber weapon", "cyber", types.SeverityHigh},
	{"offensive cyber", "cyber", types.SeverityHigh},
	{"nuclear weapon", "nuclear", types.SeverityHigh},
	{"weapons-grade", "nuclear", types.SeverityHigh},
	{"biological weapon", "biosecurity", types.SeverityHigh},
	{"bioweapon", "biosecurity", types.SeverityHigh},
	{"military ai", "defense", types.SeverityModerate},
	{"defense ai", "defense", types.SeverityModerate},
	{"military drone", "defense", types.SeverityModerate},
	{"target recognition", "defense", types.SeverityModerate},
	{"military robot", "defense", types.SeverityModerate},
	{"military satellite", "space", types.SeverityModerate},
	{"spy satellite", "space", types.SeverityModerate},
	{"reconnaissance satellite", "space", types.SeverityModerate},
	{"anti-satellite", "space", types.SeverityModerate},
	{"military communications", "telecom", types.SeverityModerate},
	{"secure military network", "telecom", types.SeverityModerate},
	{"network surveillance", "cyber", types.SeverityModerate},
	{"intrusion software", "cyber", types.SeverityModerate},
	{"uranium enrichment", "nuclear", types.SeverityModerate},
	{"military quantum", "defense", types.SeverityModerate},
	{"dual-use", "export control", types.SeverityModerate},
	{"export control", "export control", types.SeverityModerate},
}

// CategoryNames returns the category identifiers in their fixed scan order.
func CategoryNames() []string {
	names := make([]string, len(categoryDefs))
	for i, d := range categoryDefs {
		names[i] = d.Name
	}
	return names
}

var (
	categoryPatterns  map[string][]compiledKeyword
	indicatorPatterns []compiledIndicator
	tablesErr         error
)

type compiledKeyword struct {
	term   string
	weight int
	re     *regexp.Regexp
}

type compiledIndicator struct {
	def IndicatorDef
	re  *regexp.Regexp
}

func init() {
	tablesErr = validateDefs(categoryDefs, indicatorDefs)
	if tablesErr != nil {
		return
	}
	categoryPatterns = make(map[string][]compiledKeyword, len(categoryDefs))
	for _, d := range categoryDefs {
		compiled := make([]compiledKeyword, len(d.Keywords))
		for i, kw := range d.Keywords {
			compiled[i] = compiledKeyword{term: kw.Term, weight: kw.Weight, re: termPattern(kw.Term)}
		}
		categoryPatterns[d.Name] = compiled
	}
	indicatorPatterns = make([]compiledIndicator, len(indicatorDefs))
	for i, d := range indicatorDefs {
		indicatorPatterns[i] = compiledIndicator{def: d, re: termPattern(d.Term)}
	}
}

// termPattern builds a case-insensitive word-boundary matcher for a term.
func termPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(term)) + `\b`)
}

// ValidateTables reports a malformed keyword or indicator table. A non-nil
// result is a configuration defect and must abort startup, not be swallowed.
func ValidateTables() error {
	return tablesErr
}

func validateDefs(cats []CategoryDef, inds []IndicatorDef) error {
	if len(cats) == 0 {
		return fmt.Errorf("analysis: empty category table")
	}
	seen := make(map[string]bool, len(cats))
	for _, d := range cats {
		if d.Name == "" {
			return fmt.Errorf("analysis: category with empty name")
		}
		if seen[d.Name] {
			return fmt.Errorf("analysis: duplicate category %q", d.Name)
		}
		seen[d.Name] = true
		if len(d.Keywords) == 0 {
			return fmt.Errorf("analysis: category %q has no keywords", d.Name)
		}
		for _, kw := range d.Keywords {
			if strings.TrimSpace(kw.Term) == "" {
				return fmt.Errorf("analysis: category %q has an empty keyword", d.Name)
			}
			if kw.Weight <= 0 {
				return fmt.Errorf("analysis: keyword %q in %q has non-positive weight %d", kw.Term, d.Name, kw.Weight)
			}
		}
	}
	if len(inds) == 0 {
		return fmt.Errorf("analysis: empty indicator table")
	}
	for _, d := range inds {
		if strings.TrimSpace(d.Term) == "" {
			return fmt.Errorf("analysis: indicator with empty term")
		}
		if d.Severity != types.SeverityHigh && d.Severity != types.SeverityModerate {
			return fmt.Errorf("analysis: indicator %q has unknown severity %q", d.Term, d.Severity)
		}
	}
	return nil
}

// mustTables panics when the taxonomy failed validation; callers are expected
// to have checked ValidateTables at startup.
func mustTables() {
	if tablesErr != nil {
		panic(tablesErr)
	}
}
