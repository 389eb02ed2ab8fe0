package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var queueSize = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "harvester_queue_size",
	Help: "The number of transactions currently waiting in the queue",
})

var transactions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "harvester_transactions_total",
	Help: "Submitted transactions by result",
}, []string{"result"})

var delaySeconds = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "harvester_submission_delay_seconds",
	Help:    "Randomized pause applied before each submission",
	Buckets: prometheus.LinearBuckets(0, 2, 10),
})
