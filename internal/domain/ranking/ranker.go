package ranking

import (
	"slices"

	"chainscope/internal/domain/entity"
)

// Rank scores every url against health and returns them best first.
//
// Each input url appears exactly once in the output, duplicates included.
// URLs missing from health are ranked as unknown. health may be nil and
// is never modified.
func Rank(urls []entity.RPCURL, health entity.HealthSnapshot) []entity.ScoredEndpoint {
	ranked := make([]entity.ScoredEndpoint, 0, len(urls))
	for _, u := range urls {
		var rec *entity.HealthRecord
		if h, ok := health[u]; ok {
			rec = &h
		}
		ranked = append(ranked, ScoreEndpoint(u, rec))
	}

	slices.SortStableFunc(ranked, Compare)
	return ranked
}

// TopURLs returns the URLs of the first k ranked endpoints, or all of them
// when k <= 0 or k exceeds the list.
func TopURLs(ranked []entity.ScoredEndpoint, k int) []entity.RPCURL {
	if k <= 0 || k > len(ranked) {
		k = len(ranked)
	}
	out := make([]entity.RPCURL, k)
	for i := range k {
		out[i] = ranked[i].URL
	}
	return out
}
