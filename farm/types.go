package farm

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/JackalLabs/harvester/config"
	"github.com/JackalLabs/harvester/queue"
	"github.com/JackalLabs/harvester/types"
	"github.com/JackalLabs/harvester/wallet"
)

// GameReader reads per-account game state. *chain.Gateway satisfies it.
type GameReader interface {
	Tools(ctx context.Context, owner string) []types.Tool
	Crops(ctx context.Context, owner string) []types.Crop
	Animals(ctx context.Context, owner string) []types.Animal
	Account(ctx context.Context, owner string) (types.GameAccount, bool)
	WalletBalances(ctx context.Context, owner string) types.Balances
}

// AssetReader lists food cards. *atomic.Gateway satisfies it.
type AssetReader interface {
	Foods(ctx context.Context, owner string) []types.FoodItem
}

// Poster queues one transaction. *queue.Queue satisfies it.
type Poster interface {
	Add(account string, signer wallet.Signer, actions ...wallet.Action) (*queue.Message, *sync.WaitGroup)
}

var _ Poster = (*queue.Queue)(nil)

// Shuffler is an endpoint pool reshuffled before every task.
type Shuffler interface {
	Shuffle()
}

// State is one step of the per account task sequence.
type State int

const (
	StateDeposit State = iota
	StateRecover
	StateRepair
	StateUseTools
	StateClaimCrops
	StateFeed
	StateWithdraw
	StateDone
)

var stateNames = map[State]string{
	StateDeposit:    "deposit",
	StateRecover:    "recover",
	StateRepair:     "repair",
	StateUseTools:   "use_tools",
	StateClaimCrops: "claim_crops",
	StateFeed:       "feed",
	StateWithdraw:   "withdraw",
	StateDone:       "done",
}

// stateTasks maps states to the task toggle names of the configuration.
var stateTasks = map[State]string{
	StateDeposit:    config.TaskDeposit,
	StateRecover:    config.TaskRecover,
	StateRepair:     config.TaskRepair,
	StateUseTools:   config.TaskTools,
	StateClaimCrops: config.TaskCrops,
	StateFeed:       config.TaskFeed,
	StateWithdraw:   config.TaskWithdraw,
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// Next returns the following state. Done is terminal.
func (s State) Next() State {
	if s >= StateDone {
		return StateDone
	}
	return s + 1
}

func (s State) Task() string {
	return stateTasks[s]
}

// Settings is the immutable decision input shared by every farmer.
type Settings struct {
	RepairThreshold    float64
	RecoverThreshold   float64
	MaxFoodConsumption float64
	Withdraw           config.TransferRule
	Deposit            config.TransferRule
	Tasks              []string
}

func NewSettings(cfg *config.Config) (Settings, error) {
	withdraw, err := cfg.Withdraw.Parse()
	if err != nil {
		return Settings{}, err
	}
	deposit, err := cfg.Deposit.Parse()
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		RepairThreshold:    cfg.Thresholds.Repair,
		RecoverThreshold:   cfg.Thresholds.Recover,
		MaxFoodConsumption: cfg.Thresholds.MaxFoodConsumption,
		Withdraw:           withdraw,
		Deposit:            deposit,
		Tasks:              append([]string(nil), cfg.Tasks...),
	}, nil
}

func (s Settings) enabled(state State) bool {
	return slices.Contains(s.Tasks, state.Task())
}

// TaskReport summarizes one state of a run.
type TaskReport struct {
	State     string `json:"state"`
	Found     int    `json:"found"`
	Eligible  int    `json:"eligible"`
	Submitted int    `json:"submitted"`
	Failed    int    `json:"failed"`
	Skipped   string `json:"skipped,omitempty"`
}

// Report summarizes one full run of an account.
type Report struct {
	Account  string       `json:"account"`
	Started  time.Time    `json:"started"`
	Finished time.Time    `json:"finished"`
	Tasks    []TaskReport `json:"tasks"`
	Error    string       `json:"error,omitempty"`
}

func (r Report) Submitted() int {
	n := 0
	for _, t := range r.Tasks {
		n += t.Submitted
	}
	return n
}

func (r Report) Failed() int {
	n := 0
	for _, t := range r.Tasks {
		n += t.Failed
	}
	return n
}
