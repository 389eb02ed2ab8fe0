package queue

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/JackalLabs/harvester/config"
	"github.com/JackalLabs/harvester/wallet"
	"github.com/rs/zerolog/log"
)

var ErrStopped = errors.New("queue is not running")

// Queue submits transactions one at a time, pausing a random delay from the
// configured window before each one.
type Queue struct {
	submitter Submitter
	messages  chan *Message
	done      chan struct{}
	stopOnce  sync.Once

	minDelay time.Duration
	maxDelay time.Duration
	dryRun   bool
	sleep    SleepFunc

	randMu sync.Mutex
	rand   *rand.Rand
}

func NewQueue(submitter Submitter, delay config.DelayConfig, dryRun bool) *Queue {
	return &Queue{
		submitter: submitter,
		messages:  make(chan *Message),
		done:      make(chan struct{}),
		minDelay:  seconds(delay.Min),
		maxDelay:  seconds(delay.Max),
		dryRun:    dryRun,
		sleep:     Sleep,
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// WithSleep replaces the pause used before submissions.
func (q *Queue) WithSleep(sleep SleepFunc) *Queue {
	q.sleep = sleep
	return q
}

func (q *Queue) WithSeed(seed int64) *Queue {
	q.randMu.Lock()
	defer q.randMu.Unlock()
	q.rand = rand.New(rand.NewSource(seed))
	return q
}

// Sleep waits for d unless ctx ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Delay samples a pause uniformly from the configured window.
func (q *Queue) Delay() time.Duration {
	if q.maxDelay <= q.minDelay {
		return q.minDelay
	}
	q.randMu.Lock()
	defer q.randMu.Unlock()
	return q.minDelay + time.Duration(q.rand.Int63n(int64(q.maxDelay-q.minDelay)+1))
}

// Add enqueues one transaction. Wait on the returned group before reading
// the message result.
func (q *Queue) Add(account string, signer wallet.Signer, actions ...wallet.Action) (*Message, *sync.WaitGroup) {
	var wg sync.WaitGroup
	wg.Add(1)

	m := &Message{
		account: account,
		actions: actions,
		signer:  signer,
		wg:      &wg,
	}

	queueSize.Inc()
	select {
	case q.messages <- m:
	case <-q.done:
		queueSize.Dec()
		m.err = ErrStopped
		m.Done()
	}

	return m, &wg
}

// Stop ends Listen after the message in flight, if any, completes.
func (q *Queue) Stop() {
	q.stopOnce.Do(func() {
		close(q.done)
	})
}

// Listen processes messages until ctx ends or Stop is called.
func (q *Queue) Listen(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			q.Stop()
			return
		case <-q.done:
			return
		case m := <-q.messages:
			queueSize.Dec()
			q.process(ctx, m)
		}
	}
}

func (q *Queue) process(ctx context.Context, m *Message) {
	defer m.Done()

	names := make([]string, 0, len(m.actions))
	for _, a := range m.actions {
		names = append(names, a.String())
	}
	l := log.With().
		Str("account", m.account).
		Str("actions", strings.Join(names, ",")).
		Logger()

	m.delay = q.Delay()
	delaySeconds.Observe(m.delay.Seconds())
	l.Info().Dur("delay", m.delay).Msg("Waiting before submission")

	if err := q.sleep(ctx, m.delay); err != nil {
		m.err = err
		transactions.WithLabelValues("canceled").Inc()
		return
	}

	if q.dryRun {
		m.dryRun = true
		transactions.WithLabelValues("dry_run").Inc()
		l.Info().Msg("Dry run, transaction not submitted")
		return
	}

	id, err := q.submitter.Submit(ctx, m.signer, m.actions)
	if err != nil {
		m.err = err
		transactions.WithLabelValues("failed").Inc()
		l.Error().Err(err).Msg("Transaction failed")
		return
	}

	m.txID = id
	transactions.WithLabelValues("success").Inc()
	l.Info().Str("tx", id).Msg("Transaction submitted")
}
