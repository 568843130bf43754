package menudef

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest returns the menu id closest to id, preferring ids that contain its
// characters in order and falling back to edit distance for typos.
func Suggest(f *File, id string) (string, bool) {
	if f == nil || id == "" {
		return "", false
	}
	ids := make([]string, len(f.Menus))
	for i, m := range f.Menus {
		ids[i] = m.ID
	}
	ranks := fuzzy.RankFindNormalizedFold(id, ids)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target, true
	}
	best, bestDist := "", -1
	for _, candidate := range ids {
		d := fuzzy.LevenshteinDistance(id, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	limit := len(id) / 2
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return "", false
	}
	return best, true
}
