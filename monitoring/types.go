package monitoring

import (
	"context"
	"time"

	eos "github.com/eoscanada/eos-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var blockHeight = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "harvester_block_height",
	Help: "The head block number of the chain at a given time",
})

var headLag = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "harvester_head_lag_seconds",
	Help: "How far the head block time trails the local clock",
})

var headFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "harvester_head_failures_total",
	Help: "Head polls where every endpoint failed",
})

// HeadSource returns the current chain head. *chain.Client satisfies it.
type HeadSource interface {
	Info(ctx context.Context) (*eos.InfoResp, bool)
}

type Monitor struct {
	source   HeadSource
	interval time.Duration
	now      func() time.Time
}

func NewMonitor(source HeadSource, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Monitor{
		source:   source,
		interval: interval,
		now:      time.Now,
	}
}
