package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "harvester_cycle_duration_seconds",
		Help:    "Time taken to run every account once",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
	lastCycle = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "harvester_last_cycle_timestamp",
		Help: "Unix time the last cycle finished",
	})
	skippedTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvester_skipped_ticks_total",
		Help: "Ticks dropped because a cycle was still running",
	})
	accountPanics = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harvester_account_panics_total",
		Help: "Account runs that panicked and were recovered",
	})
)
