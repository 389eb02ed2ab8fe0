package farm_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/JackalLabs/harvester/config"
	"github.com/JackalLabs/harvester/farm"
	"github.com/JackalLabs/harvester/queue"
	"github.com/JackalLabs/harvester/testutil"
	"github.com/JackalLabs/harvester/testutil/mocks"
	"github.com/JackalLabs/harvester/types"
	"github.com/JackalLabs/harvester/wallet"
	"github.com/stretchr/testify/require"
)

const owner = "alice.wam"

var now = time.Unix(1_700_000_000, 0)

type fakeGame struct {
	tools   []types.Tool
	crops   []types.Crop
	animals []types.Animal
	account *types.GameAccount
	wallet  types.Balances
}

func (g *fakeGame) Tools(context.Context, string) []types.Tool     { return g.tools }
func (g *fakeGame) Crops(context.Context, string) []types.Crop     { return g.crops }
func (g *fakeGame) Animals(context.Context, string) []types.Animal { return g.animals }
func (g *fakeGame) WalletBalances(context.Context, string) types.Balances {
	return g.wallet
}

func (g *fakeGame) Account(context.Context, string) (types.GameAccount, bool) {
	if g.account == nil {
		return types.GameAccount{}, false
	}
	return *g.account, true
}

type fakeAssets struct {
	foods []types.FoodItem
	calls int
}

func (a *fakeAssets) Foods(context.Context, string) []types.FoodItem {
	a.calls++
	return a.foods
}

type fakeSubmitter struct {
	mu  sync.Mutex
	txs [][]wallet.Action
	// failFirst rejects that many submissions before accepting the rest.
	failFirst int
}

func (s *fakeSubmitter) Submit(_ context.Context, _ wallet.Signer, actions []wallet.Action) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, actions)
	if len(s.txs) <= s.failFirst {
		return "", errors.New("assertion failure with message: tool is broken")
	}
	return "tx", nil
}

type countingPool struct{ shuffles int }

func (p *countingPool) Shuffle() { p.shuffles++ }

type harness struct {
	sub    *fakeSubmitter
	delays []time.Duration
	mu     sync.Mutex
	q      *queue.Queue
}

func newHarness(t *testing.T) *harness {
	h := &harness{sub: &fakeSubmitter{}}
	h.q = queue.NewQueue(h.sub, config.DelayConfig{Min: 4, Max: 10}, false).
		WithSleep(func(ctx context.Context, d time.Duration) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.delays = append(h.delays, d)
			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	go h.q.Listen(ctx)
	t.Cleanup(cancel)
	return h
}

func settings(t *testing.T, mutate func(c *config.Config)) farm.Settings {
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	s, err := farm.NewSettings(cfg)
	require.NoError(t, err)
	return s
}

func TestRepairOnlyDamagedTool(t *testing.T) {
	r := require.New(t)
	h := newHarness(t)

	game := &fakeGame{tools: []types.Tool{
		{AssetID: 1, Durability: 100, CurrentDurability: 30},
		{AssetID: 2, Durability: 100, CurrentDurability: 80},
	}}
	f := farm.NewFarmer(owner, &testutil.FakeSigner{}, farm.Env{
		Game:     game,
		Assets:   &fakeAssets{},
		Poster:   h.q,
		Settings: settings(t, func(c *config.Config) { c.Tasks = []string{config.TaskRepair} }),
		Now:      func() time.Time { return now },
	})

	report := f.Run(context.Background())

	r.Len(h.sub.txs, 1)
	r.Len(h.sub.txs[0], 1)
	a := h.sub.txs[0][0]
	r.Equal("repair", a.Name)
	r.Equal(uint64(1), a.Data["asset_id"])

	r.Len(h.delays, 1)
	r.GreaterOrEqual(h.delays[0], 4*time.Second)
	r.LessOrEqual(h.delays[0], 10*time.Second)

	r.Len(report.Tasks, 1)
	r.Equal(farm.TaskReport{State: "repair", Found: 2, Eligible: 1, Submitted: 1}, report.Tasks[0])
}

func TestRepairContinuesAfterFailedItem(t *testing.T) {
	r := require.New(t)
	h := newHarness(t)
	h.sub.failFirst = 1

	game := &fakeGame{tools: []types.Tool{
		{AssetID: 1, Durability: 100, CurrentDurability: 10},
		{AssetID: 2, Durability: 100, CurrentDurability: 20},
		{AssetID: 3, Durability: 100, CurrentDurability: 30},
	}}
	f := farm.NewFarmer(owner, &testutil.FakeSigner{}, farm.Env{
		Game:     game,
		Assets:   &fakeAssets{},
		Poster:   h.q,
		Settings: settings(t, func(c *config.Config) { c.Tasks = []string{config.TaskRepair} }),
		Now:      func() time.Time { return now },
	})

	report := f.Run(context.Background())

	r.Len(h.sub.txs, 3, "every eligible tool is attempted")
	r.Equal(farm.TaskReport{State: "repair", Found: 3, Eligible: 3, Submitted: 2, Failed: 1}, report.Tasks[0])
	r.Equal(2, report.Submitted())
	r.Equal(1, report.Failed())
}

func TestFeedWithoutFoodSubmitsNothing(t *testing.T) {
	r := require.New(t)

	poster := mocks.SetupPoster(t) // no calls expected
	assets := &fakeAssets{}
	game := &fakeGame{animals: []types.Animal{
		{AssetID: 7, Name: "Chicken", TemplateID: 298614, NextAvailability: types.Uint64(now.Unix() - 60)},
	}}
	f := farm.NewFarmer(owner, &testutil.FakeSigner{}, farm.Env{
		Game:     game,
		Assets:   assets,
		Poster:   poster,
		Settings: settings(t, func(c *config.Config) { c.Tasks = []string{config.TaskFeed} }),
		Now:      func() time.Time { return now },
	})

	report := f.Run(context.Background())
	r.Equal(1, assets.calls)
	r.Equal(0, report.Submitted())
	r.Equal("No food available", report.Tasks[0].Skipped)
}

func TestFeedMatchesFoodOnce(t *testing.T) {
	r := require.New(t)
	h := newHarness(t)

	due := types.Uint64(now.Unix() - 1)
	game := &fakeGame{animals: []types.Animal{
		{AssetID: 1, TemplateID: 298614, NextAvailability: due},
		{AssetID: 2, TemplateID: 298613, NextAvailability: due},
		{AssetID: 3, TemplateID: 298614, NextAvailability: types.Uint64(now.Unix() + 60)},
	}}
	assets := &fakeAssets{foods: []types.FoodItem{{AssetID: 50, TemplateID: 318606}}}

	f := farm.NewFarmer(owner, &testutil.FakeSigner{}, farm.Env{
		Game:      game,
		Assets:    assets,
		Poster:    h.q,
		Templates: types.NewTemplates(nil, nil, nil),
		Settings:  settings(t, func(c *config.Config) { c.Tasks = []string{config.TaskFeed} }),
		Now:       func() time.Time { return now },
	})

	report := f.Run(context.Background())
	r.Len(h.sub.txs, 1)
	feed := h.sub.txs[0][0]
	r.Equal("transfer", feed.Name)
	r.Equal([]uint64{50}, feed.Data["asset_ids"])
	r.Equal("feed_animal:1", feed.Data["memo"])
	r.Equal(farm.TaskReport{State: "feed", Found: 3, Eligible: 1, Submitted: 1}, report.Tasks[0])
}

func TestWithdrawBelowThresholdSubmitsNothing(t *testing.T) {
	r := require.New(t)

	poster := mocks.SetupPoster(t)
	game := &fakeGame{account: &types.GameAccount{Account: owner, Balances: []string{"50.0000 FOOD"}}}
	f := farm.NewFarmer(owner, &testutil.FakeSigner{}, farm.Env{
		Game:   game,
		Assets: &fakeAssets{},
		Poster: poster,
		Settings: settings(t, func(c *config.Config) {
			c.Tasks = []string{config.TaskWithdraw}
			c.Withdraw = config.TransferConfig{Enabled: true, Threshold: "100 FOOD"}
		}),
	})

	report := f.Run(context.Background())
	r.Equal(0, report.Submitted())
	r.Equal("No balance above withdraw threshold", report.Tasks[0].Skipped)
}

func TestWithdrawBatchesQuantities(t *testing.T) {
	r := require.New(t)
	h := newHarness(t)

	game := &fakeGame{account: &types.GameAccount{
		Account:  owner,
		Balances: []string{"150.0000 FOOD", "900.0000 WOOD", "1.0000 GOLD"},
	}}
	f := farm.NewFarmer(owner, &testutil.FakeSigner{}, farm.Env{
		Game:      game,
		Assets:    &fakeAssets{},
		Poster:    h.q,
		Templates: types.NewTemplates(nil, nil, &types.GameConfig{Fee: 6}),
		Settings: settings(t, func(c *config.Config) {
			c.Tasks = []string{config.TaskWithdraw}
			c.Withdraw = config.TransferConfig{Enabled: true, Threshold: "100 FOOD, 100 WOOD, 100 GOLD", Max: "500 WOOD"}
		}),
	})

	f.Run(context.Background())
	r.Len(h.sub.txs, 1)
	w := h.sub.txs[0][0]
	r.Equal("withdraw", w.Name)
	r.Equal([]string{"150.0000 FOOD", "500.0000 WOOD"}, w.Data["quantities"])
	r.Equal(uint64(6), w.Data["fee"])
}

func TestFullRunOrderAndShuffles(t *testing.T) {
	r := require.New(t)
	h := newHarness(t)

	ready := types.Uint64(now.Unix() - 1)
	game := &fakeGame{
		tools: []types.Tool{{AssetID: 1, TemplateID: 203881, Durability: 100, CurrentDurability: 10, NextAvailability: ready}},
		crops: []types.Crop{{AssetID: 2, NextAvailability: ready}},
		account: &types.GameAccount{
			Account:   owner,
			Energy:    10,
			MaxEnergy: 500,
			Balances:  []string{"10.0000 FOOD", "200.0000 WOOD"},
		},
		wallet: types.Balances{{Amount: 40, Symbol: "FWF", Precision: 4}},
	}
	pools := []farm.Shuffler{&countingPool{}, &countingPool{}}
	tpl := types.NewTemplates([]types.ToolConfig{{TemplateID: 203881, DurabilityConsumed: 5}}, nil, nil)

	f := farm.NewFarmer(owner, &testutil.FakeSigner{}, farm.Env{
		Game:      game,
		Assets:    &fakeAssets{},
		Poster:    h.q,
		Templates: tpl,
		Pools:     pools,
		Settings: settings(t, func(c *config.Config) {
			c.Deposit = config.TransferConfig{Enabled: true, Threshold: "50 FOOD"}
			c.Withdraw = config.TransferConfig{Enabled: true, Threshold: "100 WOOD"}
		}),
		Now: func() time.Time { return now },
	})

	report := f.Run(context.Background())

	var names []string
	for _, tx := range h.sub.txs {
		names = append(names, tx[0].Name)
	}
	r.Equal([]string{"transfers", "recover", "repair", "claim", "cropclaim", "withdraw"}, names)

	var states []string
	for _, tr := range report.Tasks {
		states = append(states, tr.State)
	}
	r.Equal([]string{"deposit", "recover", "repair", "use_tools", "claim_crops", "feed", "withdraw"}, states)
	r.Equal(6, report.Submitted())
	for _, p := range pools {
		r.Equal(7, p.(*countingPool).shuffles)
	}
}

func TestRunStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := farm.NewFarmer(owner, &testutil.FakeSigner{}, farm.Env{
		Game:     &fakeGame{},
		Assets:   &fakeAssets{},
		Poster:   mocks.SetupPoster(t),
		Settings: settings(t, nil),
	})
	report := f.Run(ctx)
	require.Empty(t, report.Tasks)
	require.Equal(t, context.Canceled.Error(), report.Error)
}

func TestStateSequence(t *testing.T) {
	r := require.New(t)

	var seen []string
	for s := farm.StateDeposit; s != farm.StateDone; s = s.Next() {
		seen = append(seen, s.String())
	}
	r.Equal([]string{"deposit", "recover", "repair", "use_tools", "claim_crops", "feed", "withdraw"}, seen)
	r.Equal(farm.StateDone, farm.StateDone.Next())
	r.Equal("tools", farm.StateUseTools.Task())
}
