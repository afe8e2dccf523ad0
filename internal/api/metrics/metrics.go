// Package metrics defines and registers all custom Prometheus metrics for the
// chat API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chat"

// ── Hub metrics ───────────────────────────────────────────────────────────────

// ConnectionsActive tracks the number of live WebSocket connections.
var ConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "connections_active",
		Help:      "Current number of live WebSocket connections in the hub.",
	},
)

// MessagesBroadcastTotal counts chat messages fanned out to the live set.
var MessagesBroadcastTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_broadcast_total",
		Help:      "Total number of chat messages broadcast to connected clients.",
	},
)

// MessagesDroppedTotal counts inbound sends that never reached a broadcast.
// Label:
//   - reason: "empty_content" or "persist_failed"
var MessagesDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_dropped_total",
		Help:      "Total number of inbound messages dropped before broadcast.",
	},
	[]string{"reason"},
)

// BroadcastFanoutDuration measures a single fan-out pass over the live set.
var BroadcastFanoutDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "broadcast_fanout_duration_seconds",
		Help:      "Duration of delivering one event to every live connection.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts rejected token validations.
// Label:
//   - surface: "rest" or "websocket"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected for an invalid session token.",
	},
	[]string{"surface"},
)

// OAuthLoginsTotal counts completed OAuth callbacks.
// Label:
//   - result: "success", "state_mismatch", or "failed"
var OAuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oauth_logins_total",
		Help:      "Total number of OAuth callback completions, by result.",
	},
	[]string{"result"},
)
