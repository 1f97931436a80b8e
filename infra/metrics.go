package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Panel metrics
var (
	MetricEdits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "levelpanel_edits_total",
			Help: "Total number of applied control edits",
		},
		[]string{"control"},
	)

	MetricPersistenceEnabled = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "levelpanel_persistence_enabled",
			Help: "Whether the panel state is persisted (1) or not (0)",
		},
	)
)

// Host registry metrics
var (
	MetricTagLevel = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "levelpanel_tag_level",
			Help: "Level of tag as last set by the panel (-1 is DEFAULT)",
		},
		[]string{"tag"},
	)

	MetricGlobalLevel = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "levelpanel_global_level",
			Help: "Global level as last set by the panel (-1 is DEFAULT)",
		},
	)
)
