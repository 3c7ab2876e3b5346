// Package metrics defines and registers all custom Prometheus metrics for
// the portal API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts completed customer signups.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of completed customer signups.",
	},
)

// MessagesSentTotal counts stored chat messages.
// Label:
//   - sender_role: "admin" or "customer"
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of chat messages stored, by sender role.",
	},
	[]string{"sender_role"},
)

// PollTicksTotal counts unread-notifier poll ticks.
// Label:
//   - result: "ok" or "error"
var PollTicksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "poll_ticks_total",
		Help:      "Total number of unread-notifier poll ticks, by result.",
	},
	[]string{"result"},
)

// UnreadMessages tracks the pooled admin-inbox unread count as sampled by
// the unread notifier.
var UnreadMessages = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "unread_messages",
		Help:      "Current unread message count in the pooled admin inbox.",
	},
)

// GateDenialsTotal counts authorization gate denials on protected routes.
// Label:
//   - reason: "unauthenticated" or "wrong_role"
var GateDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_denials_total",
		Help:      "Total number of authorization gate denials, by reason.",
	},
	[]string{"reason"},
)
