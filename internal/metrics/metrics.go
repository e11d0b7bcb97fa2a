// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RSVPSubmissions counts submissions by result: created, duplicate, invalid, error.
	RSVPSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "party_rsvp_submissions_total",
		Help: "RSVP submissions by result.",
	}, []string{"result"})

	// Notifications counts delivery attempts by status: sent, failed, skipped.
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "party_rsvp_notifications_total",
		Help: "RSVP notification deliveries by status.",
	}, []string{"status"})

	// GuestMutations counts update, delete and clear operations.
	GuestMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "party_rsvp_guest_mutations_total",
		Help: "Guest list mutations by operation.",
	}, []string{"op"})
)
