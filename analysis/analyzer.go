package analysis

import (
	"sort"

	"techatlas/config"
	"techatlas/types"
)

// ScoreCategories scans the corpus against every category taxonomy and
// returns one score per category, in the fixed category order. Scores are
// normalized to a 0..10 scale so corpora of different sizes stay comparable.
func ScoreCategories(text string) []types.CategoryScore {
	mustTables()

	scores := make([]types.CategoryScore, 0, len(categoryDefs))
	for _, def := range categoryDefs {
		scores = append(scores, scoreCategory(def.Name, text))
	}
	return scores
}

type rawHit struct {
	pos  int
	term string
}

func scoreCategory(name, text string) types.CategoryScore {
	score := types.CategoryScore{Category: name}

	var hits []rawHit
	for _, kw := range categoryPatterns[name] {
		locs := kw.re.FindAllStringIndex(text, -1)
		if locs == nil {
			continue
		}
		score.RawHits += len(locs)
		score.WeightedHits += len(locs) * kw.weight
		for _, loc := range locs {
			hits = append(hits, rawHit{pos: loc[0], term: kw.term})
		}
	}

	score.NormalizedScore = normalizeScore(score.WeightedHits)

	// Context examples follow corpus order regardless of which keyword
	// produced them, so the same text always yields the same examples.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].pos != hits[j].pos {
			return hits[i].pos < hits[j].pos
		}
		return hits[i].term < hits[j].term
	})
	for _, h := range hits {
		if len(score.Matches) >= config.MaxMatchesPerCategory {
			break
		}
		score.Matches = append(score.Matches, types.CategoryMatch{
			Term:    h.term,
			Context: contextAround(text, h.pos, len(h.term)),
		})
	}
	return score
}

func normalizeScore(weighted int) float64 {
	score := config.MaxScore * float64(weighted) / config.ScoreNormalizer
	if score > config.MaxScore {
		return config.MaxScore
	}
	return score
}

// contextAround returns a window of text centered on a match, clamped to the
// corpus bounds.
func contextAround(text string, pos, matchLen int) string {
	start := pos - config.ContextWindow
	if start < 0 {
		start = 0
	}
	end := pos + matchLen + config.ContextWindow
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}

// ScoreByName returns the score entry for a category, or a zero score when
// the category is absent from the slice.
func ScoreByName(scores []types.CategoryScore, name string) types.CategoryScore {
	for _, s := range scores {
		if s.Category == name {
			return s
		}
	}
	return types.CategoryScore{Category: name}
}
