package ranking_test

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"chainscope/internal/domain/entity"
	"chainscope/internal/domain/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urlsOf(ranked []entity.ScoredEndpoint) []entity.RPCURL {
	out := make([]entity.RPCURL, len(ranked))
	for i, ep := range ranked {
		out[i] = ep.URL
	}
	return out
}

func TestRankScenarioLatencyWithinOnline(t *testing.T) {
	urls := []entity.RPCURL{"https://a.example", "https://b.example", "https://c.example"}
	health := entity.HealthSnapshot{
		"https://a.example": {Status: entity.StatusOnline, LatencyMs: ms(120)},
		"https://b.example": {Status: entity.StatusOnline, LatencyMs: ms(40)},
		"https://c.example": {Status: entity.StatusOffline},
	}

	ranked := ranking.Rank(urls, health)

	assert.Equal(t,
		[]entity.RPCURL{"https://b.example", "https://a.example", "https://c.example"},
		urlsOf(ranked),
	)
	assert.Equal(t, entity.StatusOffline, ranked[2].Status)
}

func TestRankWithoutHealthSortsAlphabetically(t *testing.T) {
	ranked := ranking.Rank([]entity.RPCURL{"https://y", "https://x"}, nil)

	require.Len(t, ranked, 2)
	assert.Equal(t, []entity.RPCURL{"https://x", "https://y"}, urlsOf(ranked))
	for _, ep := range ranked {
		assert.Equal(t, entity.StatusUnknown, ep.Status)
		assert.Nil(t, ep.LatencyMs)
	}
}

func TestRankKeepsDuplicates(t *testing.T) {
	health := entity.HealthSnapshot{"https://a": {Status: entity.StatusOnline, LatencyMs: ms(10)}}

	ranked := ranking.Rank([]entity.RPCURL{"https://a", "https://a"}, health)

	require.Len(t, ranked, 2)
	assert.Equal(t, ranked[0], ranked[1])
	assert.Equal(t, entity.RPCURL("https://a"), ranked[0].URL)
	assert.Equal(t, entity.StatusOnline, ranked[0].Status)
}

func TestRankEmpty(t *testing.T) {
	ranked := ranking.Rank(nil, nil)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)

	ranked = ranking.Rank([]entity.RPCURL{}, entity.HealthSnapshot{"https://a": {Status: entity.StatusOnline}})
	assert.Empty(t, ranked)
}

func TestRankMissingHealthIsDeprioritizedNotDropped(t *testing.T) {
	urls := []entity.RPCURL{"https://known", "https://unseen", ""}
	health := entity.HealthSnapshot{"https://known": {Status: entity.StatusOffline}}

	ranked := ranking.Rank(urls, health)

	assert.Equal(t, []entity.RPCURL{"https://known", "", "https://unseen"}, urlsOf(ranked))
	assert.Equal(t, entity.StatusUnknown, ranked[1].Status)
}

func TestRankDoesNotMutateInputs(t *testing.T) {
	urls := []entity.RPCURL{"https://b", "https://a"}
	health := entity.HealthSnapshot{"https://a": {Status: "bogus", LatencyMs: ms(-3)}}

	ranking.Rank(urls, health)

	assert.Equal(t, []entity.RPCURL{"https://b", "https://a"}, urls)
	assert.Equal(t, entity.HealthStatus("bogus"), health["https://a"].Status)
	assert.Equal(t, int64(-3), *health["https://a"].LatencyMs)
}

func TestRankLatencyBeforeMissingLatency(t *testing.T) {
	urls := []entity.RPCURL{"https://a-nolatency", "https://z-latency"}
	health := entity.HealthSnapshot{
		"https://a-nolatency": {Status: entity.StatusSlow},
		"https://z-latency":   {Status: entity.StatusSlow, LatencyMs: ms(900)},
	}

	ranked := ranking.Rank(urls, health)

	assert.Equal(t, []entity.RPCURL{"https://z-latency", "https://a-nolatency"}, urlsOf(ranked))
}

func randomInput(r *rand.Rand) ([]entity.RPCURL, entity.HealthSnapshot) {
	statuses := []entity.HealthStatus{
		entity.StatusOnline, entity.StatusSlow, entity.StatusOffline, entity.StatusUnknown, "garbage",
	}
	n := r.IntN(12)
	urls := make([]entity.RPCURL, n)
	health := entity.HealthSnapshot{}
	for i := range urls {
		urls[i] = entity.RPCURL(fmt.Sprintf("https://rpc-%d.example", r.IntN(8)))
		if r.IntN(4) == 0 {
			continue
		}
		rec := entity.HealthRecord{Status: statuses[r.IntN(len(statuses))]}
		if r.IntN(3) > 0 {
			rec.LatencyMs = ms(int64(r.IntN(2000)) - 100)
		}
		health[urls[i]] = rec
	}
	return urls, health
}

func TestRankProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for iter := 0; iter < 500; iter++ {
		urls, health := randomInput(r)
		ranked := ranking.Rank(urls, health)

		// Same multiset of URLs.
		got := urlsOf(ranked)
		want := slices.Clone(urls)
		slices.Sort(got)
		slices.Sort(want)
		require.Equal(t, want, got)

		// Deterministic.
		require.Equal(t, ranked, ranking.Rank(urls, health))

		// Input order does not matter.
		reversed := slices.Clone(urls)
		slices.Reverse(reversed)
		require.Equal(t, ranked, ranking.Rank(reversed, health))

		// Tiers never interleave and latency is ascending within a tier.
		for i := 1; i < len(ranked); i++ {
			prev, cur := ranked[i-1], ranked[i]
			require.LessOrEqual(t, prev.Status.Tier(), cur.Status.Tier())
			require.GreaterOrEqual(t, prev.Score, cur.Score)
			if prev.Status == cur.Status {
				if prev.LatencyMs == nil {
					require.Nil(t, cur.LatencyMs)
				} else if cur.LatencyMs != nil {
					require.LessOrEqual(t, *prev.LatencyMs, *cur.LatencyMs)
				}
			}
		}
	}
}

func TestTopURLs(t *testing.T) {
	ranked := ranking.Rank([]entity.RPCURL{"https://c", "https://a", "https://b"}, entity.HealthSnapshot{
		"https://c": {Status: entity.StatusOnline, LatencyMs: ms(5)},
	})

	assert.Equal(t, []entity.RPCURL{"https://c"}, ranking.TopURLs(ranked, 1))
	assert.Equal(t, []entity.RPCURL{"https://c", "https://a"}, ranking.TopURLs(ranked, 2))
	assert.Len(t, ranking.TopURLs(ranked, 0), 3)
	assert.Len(t, ranking.TopURLs(ranked, 10), 3)
	assert.Empty(t, ranking.TopURLs(nil, 1))
}
