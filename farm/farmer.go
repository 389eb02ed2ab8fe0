package farm

import (
	"context"
	"time"

	"github.com/JackalLabs/harvester/types"
	"github.com/JackalLabs/harvester/wallet"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Env is what every farmer shares.
type Env struct {
	Game      GameReader
	Assets    AssetReader
	Poster    Poster
	Templates *types.Templates
	Settings  Settings
	Pools     []Shuffler
	Now       func() time.Time
}

// Farmer runs the task sequence for one account.
type Farmer struct {
	account string
	signer  wallet.Signer
	env     Env
	log     zerolog.Logger
}

func NewFarmer(account string, signer wallet.Signer, env Env) *Farmer {
	if env.Now == nil {
		env.Now = time.Now
	}
	return &Farmer{
		account: account,
		signer:  signer,
		env:     env,
		log:     log.With().Str("account", account).Logger(),
	}
}

func (f *Farmer) Account() string {
	return f.account
}

// Run walks every state in order, skipping disabled tasks. It stops early
// only when ctx ends.
func (f *Farmer) Run(ctx context.Context) Report {
	report := Report{
		Account: f.account,
		Started: f.env.Now(),
	}

	for state := StateDeposit; state != StateDone; state = state.Next() {
		if err := ctx.Err(); err != nil {
			report.Error = err.Error()
			break
		}
		if !f.env.Settings.enabled(state) {
			continue
		}

		for _, p := range f.env.Pools {
			p.Shuffle()
		}

		tr := f.runState(ctx, state)
		if tr.Skipped != "" {
			tasksSkipped.WithLabelValues(tr.State).Inc()
			f.log.Info().Str("state", tr.State).Int("found", tr.Found).Msg(tr.Skipped)
		}
		report.Tasks = append(report.Tasks, tr)
	}

	report.Finished = f.env.Now()
	f.log.Info().
		Int("submitted", report.Submitted()).
		Int("failed", report.Failed()).
		Dur("took", report.Finished.Sub(report.Started)).
		Msg("Account run finished")

	return report
}

func (f *Farmer) runState(ctx context.Context, state State) TaskReport {
	switch state {
	case StateDeposit:
		return f.deposit(ctx)
	case StateRecover:
		return f.recoverEnergy(ctx)
	case StateRepair:
		return f.repair(ctx)
	case StateUseTools:
		return f.useTools(ctx)
	case StateClaimCrops:
		return f.claimCrops(ctx)
	case StateFeed:
		return f.feed(ctx)
	case StateWithdraw:
		return f.withdraw(ctx)
	}
	return TaskReport{State: state.String()}
}

// submit queues one transaction and waits for its outcome.
func (f *Farmer) submit(tr *TaskReport, actions ...wallet.Action) bool {
	m, wg := f.env.Poster.Add(f.account, f.signer, actions...)
	wg.Wait()

	if err := m.Error(); err != nil {
		tr.Failed++
		actionsFailed.WithLabelValues(tr.State).Inc()
		return false
	}
	tr.Submitted++
	return true
}

func (f *Farmer) eligible(tr *TaskReport, n int) {
	tr.Eligible = n
	actionsEligible.WithLabelValues(tr.State).Add(float64(n))
}
