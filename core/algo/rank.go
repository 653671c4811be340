package algo

import (
	"sort"

	"github.com/huangsam/aem/schema"
)

// RankScores sorts results by score in descending order and returns the
// top 'limit' results. A limit of zero or less keeps every result. Equal
// scores keep their input order.
func RankScores(results []schema.ScoreResult, limit int) []schema.ScoreResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
