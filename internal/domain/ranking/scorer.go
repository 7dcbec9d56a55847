// Package ranking orders a chain's RPC endpoints from best to worst.
//
// Everything in this package is pure: no I/O, no shared state, no logging.
// Health data is supplied by the caller and only read.
package ranking

import "chainscope/internal/domain/entity"

// Tier scores. Latency never contributes to the score, so the ranges of
// different statuses cannot overlap.
const (
	ScoreOnline  float64 = 300
	ScoreSlow    float64 = 200
	ScoreOffline float64 = 100
	ScoreUnknown float64 = 0
)

// Score maps a health record to a non-negative desirability score.
// A nil record means nothing is known about the endpoint.
func Score(rec *entity.HealthRecord) float64 {
	if rec == nil {
		return ScoreUnknown
	}
	switch rec.Status {
	case entity.StatusOnline:
		return ScoreOnline
	case entity.StatusSlow:
		return ScoreSlow
	case entity.StatusOffline:
		return ScoreOffline
	default:
		return ScoreUnknown
	}
}

// ScoreEndpoint builds the scored form of url. A nil record yields an
// unknown endpoint without latency.
func ScoreEndpoint(url entity.RPCURL, rec *entity.HealthRecord) entity.ScoredEndpoint {
	ep := entity.ScoredEndpoint{
		URL:      url,
		Protocol: entity.ProtocolOf(url),
		Status:   entity.StatusUnknown,
	}
	if rec == nil {
		ep.Score = Score(nil)
		return ep
	}

	norm := rec.Normalize()
	ep.Status = norm.Status
	ep.LatencyMs = norm.LatencyMs
	ep.Score = Score(&norm)
	return ep
}
