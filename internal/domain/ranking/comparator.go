package ranking

import (
	"cmp"

	"chainscope/internal/domain/entity"
)

// Key compares two scored endpoints on a single attribute. It returns a
// negative number when a ranks before b, positive when after, zero on a tie.
type Key func(a, b entity.ScoredEndpoint) int

// Keys is the tie-break chain, most significant first.
var Keys = []Key{
	ByScore,
	ByStatusTier,
	ByLatency,
	ByURL,
}

// ByScore ranks higher scores first.
func ByScore(a, b entity.ScoredEndpoint) int {
	return cmp.Compare(b.Score, a.Score)
}

// ByStatusTier ranks online, slow, offline, unknown in that order.
func ByStatusTier(a, b entity.ScoredEndpoint) int {
	return cmp.Compare(a.Status.Tier(), b.Status.Tier())
}

// ByLatency ranks lower latency first and any latency before none.
func ByLatency(a, b entity.ScoredEndpoint) int {
	switch {
	case a.LatencyMs == nil && b.LatencyMs == nil:
		return 0
	case a.LatencyMs == nil:
		return 1
	case b.LatencyMs == nil:
		return -1
	default:
		return cmp.Compare(*a.LatencyMs, *b.LatencyMs)
	}
}

// ByURL ranks URLs in ascending byte order.
func ByURL(a, b entity.ScoredEndpoint) int {
	return cmp.Compare(a.URL, b.URL)
}

// Compare applies Keys in order and returns the first non-zero result.
func Compare(a, b entity.ScoredEndpoint) int {
	for _, key := range Keys {
		if c := key(a, b); c != 0 {
			return c
		}
	}
	return 0
}
