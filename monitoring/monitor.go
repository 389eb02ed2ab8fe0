package monitoring

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

func (m *Monitor) updateHeight(ctx context.Context) bool {
	info, ok := m.source.Info(ctx)
	if !ok || info == nil {
		headFailures.Inc()
		return false
	}

	blockHeight.Set(float64(info.HeadBlockNum))
	lag := m.now().Sub(info.HeadBlockTime.Time)
	headLag.Set(lag.Seconds())

	log.Debug().
		Uint32("height", info.HeadBlockNum).
		Dur("lag", lag).
		Msg("Chain head")
	return true
}

// Start polls the chain head until ctx ends.
func (m *Monitor) Start(ctx context.Context) {
	t := time.NewTicker(m.interval)
	defer t.Stop()

	m.updateHeight(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.updateHeight(ctx)
		}
	}
}
