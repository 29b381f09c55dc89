package reco

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecoFallbackServedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reco_fallback_served_total",
			Help: "Count of recommendation requests answered entirely by the popularity fallback.",
		},
	)

	RecoTopUpItemsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reco_topup_items_total",
			Help: "Count of popular items appended to short personalized lists.",
		},
	)

	RecoModelBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_model_builds_total",
			Help: "Count of model build attempts by status.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		RecoFallbackServedTotal,
		RecoTopUpItemsTotal,
		RecoModelBuildsTotal,
	)
}
