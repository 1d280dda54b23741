package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GroupAuthTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "terminfinder",
		Name:      "group_auth_total",
		Help:      "Group password authentications by outcome.",
	}, []string{"outcome"})

	ShareLinksCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "terminfinder",
		Name:      "share_links_created_total",
		Help:      "Share links created, by single_use.",
	}, []string{"single_use"})

	TokenAuthTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "terminfinder",
		Name:      "token_auth_total",
		Help:      "Share token redemptions by result.",
	}, []string{"result"})

	AvailabilitySavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "terminfinder",
		Name:      "availability_saves_total",
		Help:      "Availability replacements by result.",
	}, []string{"result"})

	MatchComputationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "terminfinder",
		Name:      "match_computations_total",
		Help:      "Match engine runs by status.",
	}, []string{"status"})

	MatchParticipants = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "terminfinder",
		Name:      "match_participants",
		Help:      "Participants per match computation.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
	})
)
