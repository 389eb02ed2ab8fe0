package rpc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var failovers = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "harvester_endpoint_failovers_total",
	Help: "The number of endpoints skipped before a read succeeded",
}, []string{"pool"})

var exhausted = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "harvester_endpoint_exhausted_total",
	Help: "The number of reads for which every endpoint failed",
}, []string{"pool"})
