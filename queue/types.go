package queue

import (
	"context"
	"sync"
	"time"

	"github.com/JackalLabs/harvester/wallet"
)

// Submitter signs and broadcasts a transaction. *wallet.Builder satisfies it.
type Submitter interface {
	Submit(ctx context.Context, signer wallet.Signer, actions []wallet.Action) (string, error)
}

var _ Submitter = (*wallet.Builder)(nil)

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

type Message struct {
	account string
	actions []wallet.Action
	signer  wallet.Signer
	wg      *sync.WaitGroup
	err     error
	txID    string
	delay   time.Duration
	dryRun  bool
}

func (m *Message) Done() {
	m.wg.Done()
}

func (m *Message) Error() error {
	return m.err
}

// TxID is empty for failed and dry run submissions.
func (m *Message) TxID() string {
	return m.txID
}

func (m *Message) Delay() time.Duration {
	return m.delay
}

func (m *Message) DryRun() bool {
	return m.dryRun
}

func (m *Message) Account() string {
	return m.account
}

func (m *Message) Actions() []wallet.Action {
	return m.actions
}
