package entity

import "strings"

// Protocol defines the type for RPC protocols.
type Protocol string

// Constants for known protocols.
const (
	ProtocolHTTP    Protocol = "http"
	ProtocolHTTPS   Protocol = "https"
	ProtocolWS      Protocol = "ws"
	ProtocolWSS     Protocol = "wss"
	ProtocolUnknown Protocol = "unknown"
)

// ProtocolOf returns the protocol encoded in the URL scheme.
func ProtocolOf(u RPCURL) Protocol {
	scheme, _, found := strings.Cut(u.String(), "://")
	if !found {
		return ProtocolUnknown
	}
	switch strings.ToLower(scheme) {
	case "http":
		return ProtocolHTTP
	case "https":
		return ProtocolHTTPS
	case "ws":
		return ProtocolWS
	case "wss":
		return ProtocolWSS
	default:
		return ProtocolUnknown
	}
}

// IsHTTP reports whether the protocol is plain or TLS HTTP.
func (p Protocol) IsHTTP() bool {
	return p == ProtocolHTTP || p == ProtocolHTTPS
}

// HealthStatus is the observed operational status of an RPC endpoint.
type HealthStatus string

// Known health statuses, best first.
const (
	StatusOnline  HealthStatus = "online"
	StatusSlow    HealthStatus = "slow"
	StatusOffline HealthStatus = "offline"
	StatusUnknown HealthStatus = "unknown"
)

// Tier returns the ordinal of the status: online(0) < slow(1) < offline(2) < unknown(3).
// Unrecognized values share the unknown tier.
func (s HealthStatus) Tier() int {
	switch s {
	case StatusOnline:
		return 0
	case StatusSlow:
		return 1
	case StatusOffline:
		return 2
	default:
		return 3
	}
}

// Known reports whether s is one of the four defined statuses.
func (s HealthStatus) Known() bool {
	switch s {
	case StatusOnline, StatusSlow, StatusOffline, StatusUnknown:
		return true
	}
	return false
}

// HealthRecord holds the last observed health of one endpoint.
type HealthRecord struct {
	Status    HealthStatus `json:"status"`
	LatencyMs *int64       `json:"latencyMs,omitempty"`
}

// Normalize returns a copy with unrecognized statuses mapped to unknown
// and negative latencies dropped.
func (h HealthRecord) Normalize() HealthRecord {
	out := HealthRecord{Status: h.Status}
	if !out.Status.Known() {
		out.Status = StatusUnknown
	}
	if h.LatencyMs != nil && *h.LatencyMs >= 0 {
		latency := *h.LatencyMs
		out.LatencyMs = &latency
	}
	return out
}

// HealthSnapshot maps each probed RPC URL of a chain to its health record.
type HealthSnapshot map[RPCURL]HealthRecord

// Clone returns an independent copy of the snapshot.
func (s HealthSnapshot) Clone() HealthSnapshot {
	if s == nil {
		return nil
	}
	out := make(HealthSnapshot, len(s))
	for u, rec := range s {
		out[u] = rec.Normalize()
	}
	return out
}

// ScoredEndpoint is one ranked RPC endpoint.
type ScoredEndpoint struct {
	URL       RPCURL       `json:"url"`
	Protocol  Protocol     `json:"protocol"`
	Status    HealthStatus `json:"status"`
	LatencyMs *int64       `json:"latencyMs,omitempty"`
	Score     float64      `json:"score"`
}
