package core

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JackalLabs/harvester/farm"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
)

// Runner runs the task sequence of one account. *farm.Farmer satisfies it.
type Runner interface {
	Account() string
	Run(ctx context.Context) farm.Report
}

var _ Runner = (*farm.Farmer)(nil)

// Cycle summarizes one pass over every account.
type Cycle struct {
	Started   time.Time     `json:"started"`
	Finished  time.Time     `json:"finished"`
	Reports   []farm.Report `json:"reports"`
	Submitted int           `json:"submitted"`
	Failed    int           `json:"failed"`
	Errors    []string      `json:"errors,omitempty"`
}

// Scheduler runs every account in sequence on a fixed interval. A tick that
// fires while a cycle is still running is dropped.
type Scheduler struct {
	runners  []Runner
	interval time.Duration
	now      func() time.Time

	busy    atomic.Bool
	skipped atomic.Int64
	wg      sync.WaitGroup

	mu   sync.RWMutex
	last *Cycle
}

func NewScheduler(runners []Runner, interval time.Duration) *Scheduler {
	return &Scheduler{
		runners:  runners,
		interval: interval,
		now:      time.Now,
	}
}

// Skipped is the number of ticks dropped so far.
func (s *Scheduler) Skipped() int64 {
	return s.skipped.Load()
}

// Last returns the most recent finished cycle, or nil before the first one.
func (s *Scheduler) Last() *Cycle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Reports returns the per-account reports of the last cycle.
func (s *Scheduler) Reports() []farm.Report {
	if c := s.Last(); c != nil {
		return c.Reports
	}
	return nil
}

// Accounts lists the accounts in run order.
func (s *Scheduler) Accounts() []string {
	names := make([]string, 0, len(s.runners))
	for _, r := range s.runners {
		names = append(names, r.Account())
	}
	return names
}

// RunCycle runs every account once. The returned error aggregates the
// accounts that panicked, were interrupted or had failed actions.
func (s *Scheduler) RunCycle(ctx context.Context) (*Cycle, error) {
	c := &Cycle{Started: s.now()}
	var result *multierror.Error

	for _, r := range s.runners {
		if ctx.Err() != nil {
			result = multierror.Append(result, ctx.Err())
			break
		}

		report, err := s.runAccount(ctx, r)
		c.Reports = append(c.Reports, report)
		c.Submitted += report.Submitted()
		c.Failed += report.Failed()
		if err != nil {
			result = multierror.Append(result, err)
		}
	}

	c.Finished = s.now()
	took := c.Finished.Sub(c.Started)
	cycleDuration.Observe(took.Seconds())
	lastCycle.Set(float64(c.Finished.Unix()))

	err := result.ErrorOrNil()
	if err != nil {
		for _, e := range result.Errors {
			c.Errors = append(c.Errors, e.Error())
		}
	}

	s.mu.Lock()
	s.last = c
	s.mu.Unlock()

	log.Info().
		Int("accounts", len(c.Reports)).
		Int("submitted", c.Submitted).
		Int("failed", c.Failed).
		Dur("took", took).
		Msg("Cycle finished")

	return c, err
}

func (s *Scheduler) runAccount(ctx context.Context, r Runner) (report farm.Report, err error) {
	account := r.Account()
	defer func() {
		if p := recover(); p != nil {
			accountPanics.Inc()
			log.Error().Str("account", account).Interface("panic", p).Msg("Account run panicked")
			report = farm.Report{Account: account, Error: fmt.Sprint(p)}
			err = fmt.Errorf("%s: panic: %v", account, p)
		}
	}()

	report = r.Run(ctx)
	switch {
	case report.Error != "":
		err = fmt.Errorf("%s: %s", account, report.Error)
	case report.Failed() > 0:
		err = fmt.Errorf("%s: %d actions failed", account, report.Failed())
	}
	return report, err
}

// tick starts a cycle unless one is running. It reports whether a cycle was started.
func (s *Scheduler) tick(ctx context.Context) bool {
	if !s.busy.CompareAndSwap(false, true) {
		s.skipped.Add(1)
		skippedTicks.Inc()
		log.Warn().Msg("Previous cycle still running, skipping tick")
		return false
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.busy.Store(false)

		if _, err := s.RunCycle(ctx); err != nil {
			log.Warn().Err(err).Msg("Cycle finished with errors")
		}
	}()
	return true
}

// Start runs a cycle right away and then on every interval until ctx ends.
// It returns once the running cycle, if any, has finished.
func (s *Scheduler) Start(ctx context.Context) {
	defer s.wg.Wait()

	log.Info().
		Strs("accounts", s.Accounts()).
		Dur("interval", s.interval).
		Msg("Scheduler started")

	t := time.NewTicker(s.interval)
	defer t.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Scheduler stopped")
			return
		case <-t.C:
			s.tick(ctx)
		}
	}
}
