package sources

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"techatlas/catalog"
	"techatlas/types"
)

// Resolution is the resolver output: the ordered source set for one country
// plus what was learned about the requested domain along the way.
type Resolution struct {
	Refs        []types.SourceRef
	DomainKey   string
	DomainLabel string
	// DomainTerms feed the trend extractor's relevance check.
	DomainTerms []string
	// Matched is false when the domain fell through the alias table and the
	// literal text was kept as a best-effort query.
	Matched bool
}

// NormalizeDomain case-folds and NFKC-normalizes a free-form domain value so
// that fullwidth, compatibility and mixed-case spellings hit the alias table.
func NormalizeDomain(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Resolve turns a (country, domain) pair plus optional extra sources into an
// ordered, de-duplicated list of SourceRefs. An unmatched domain is not an
// error: the literal text is kept as a single query with degraded coverage.
func Resolve(cat *catalog.Catalog, country, domain string, extras []string) Resolution {
	key := NormalizeDomain(domain)
	res := Resolution{DomainKey: key}

	var pages []string
	if d, ok := cat.LookupDomain(key); ok {
		res.Matched = true
		res.DomainLabel = d.Name
		pages = d.Pages
		res.DomainTerms = append([]string{key}, d.Aliases...)
	} else {
		// Literal passthrough: the raw text becomes the single page term.
		res.DomainLabel = strings.TrimSpace(domain)
		pages = []string{strings.ReplaceAll(res.DomainLabel, " ", "_")}
		res.DomainTerms = []string{key}
	}

	countryPage := strings.ReplaceAll(strings.TrimSpace(country), " ", "_")

	var refs []types.SourceRef
	add := func(title, target string, kind types.SourceKind) {
		refs = append(refs, types.SourceRef{
			ID:        types.GenerateID(target),
			Target:    target,
			Title:     title,
			Kind:      kind,
			Country:   country,
			DomainKey: key,
		})
	}

	for _, page := range pages {
		add(fmt.Sprintf("%s %s", country, pageTitle(page)),
			fmt.Sprintf("https://en.wikipedia.org/wiki/%s_in_%s", page, countryPage),
			types.SourceCatalog)
		add(pageTitle(page),
			fmt.Sprintf("https://en.wikipedia.org/wiki/%s", page),
			types.SourceCatalog)
	}

	for _, suffix := range []string{
		"Science_and_technology_in_%s",
		"Technology_in_%s",
		"Economy_of_%s",
		"%s",
	} {
		page := fmt.Sprintf(suffix, countryPage)
		add(pageTitle(page), "https://en.wikipedia.org/wiki/"+page, types.SourceCatalog)
	}

	for _, extra := range extras {
		extra = strings.TrimSpace(extra)
		if extra == "" {
			// Blank entries are ignored entirely, never counted as failures.
			continue
		}
		add("extra source", extra, types.SourceExtra)
	}

	// Ordered dedup by target keeps resolution stable across runs.
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if seen[ref.Target] {
			continue
		}
		seen[ref.Target] = true
		res.Refs = append(res.Refs, ref)
	}
	return res
}

func pageTitle(page string) string {
	return strings.ReplaceAll(page, "_", " ")
}
