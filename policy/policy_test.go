package policy

import (
	"fmt"
	"testing"
	"time"

	"github.com/JackalLabs/harvester/types"
	"github.com/stretchr/testify/require"
)

func TestIsRepairable(t *testing.T) {
	tests := []struct {
		current, durability types.Uint64
		threshold           float64
		want                bool
	}{
		{current: 60, durability: 200, threshold: 50, want: true},
		{current: 100, durability: 200, threshold: 50, want: false},
		{current: 99, durability: 200, threshold: 50, want: true},
		{current: 160, durability: 200, threshold: 50, want: false},
		{current: 0, durability: 0, threshold: 50, want: false},
		{current: 0, durability: 100, threshold: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d<%v", tt.current, tt.durability, tt.threshold), func(t *testing.T) {
			tool := types.Tool{CurrentDurability: tt.current, Durability: tt.durability}
			require.Equal(t, tt.want, IsRepairable(tool, tt.threshold))
		})
	}
}

func TestIsClaimable(t *testing.T) {
	r := require.New(t)
	now := time.Unix(1_700_000_000, 0)

	r.True(IsClaimable(types.Uint64(now.Unix()-1), now))
	r.False(IsClaimable(types.Uint64(now.Unix()), now))
	r.False(IsClaimable(types.Uint64(now.Unix()+1), now))
	r.True(IsClaimable(0, now))

	late := now.Add(900 * time.Millisecond)
	r.True(IsClaimable(types.Uint64(now.Unix()), late), "sub-second lateness counts")
	r.False(IsClaimable(types.Uint64(now.Unix()+1), late))
}

func TestIsUsable(t *testing.T) {
	r := require.New(t)
	now := time.Unix(1_700_000_000, 0)
	cfg := &types.ToolConfig{DurabilityConsumed: 5}

	ready := types.Tool{NextAvailability: types.Uint64(now.Unix() - 10), CurrentDurability: 6}
	r.True(IsUsable(ready, cfg, now))

	worn := ready
	worn.CurrentDurability = 5
	r.False(IsUsable(worn, cfg, now))
	r.True(IsUsable(worn, nil, now))

	cooling := ready
	cooling.NextAvailability = types.Uint64(now.Unix() + 10)
	r.False(IsUsable(cooling, cfg, now))
}

func TestEnergyRecovery(t *testing.T) {
	tests := []struct {
		name       string
		energy     types.Uint64
		maxEnergy  types.Uint64
		food       string
		threshold  float64
		maxConsume float64
		want       uint64
		ok         bool
	}{
		{name: "limited by food cap", energy: 50, maxEnergy: 500, food: "100.0000 FOOD", threshold: 50, maxConsume: 20, want: 100, ok: true},
		{name: "limited by missing energy", energy: 480, maxEnergy: 500, food: "100.0000 FOOD", threshold: 99, maxConsume: 100, want: 20, ok: true},
		{name: "limited by balance", energy: 0, maxEnergy: 500, food: "3.5000 FOOD", threshold: 50, maxConsume: 100, want: 17, ok: true},
		{name: "minimum food", energy: 0, maxEnergy: 500, food: "0.2000 FOOD", threshold: 50, maxConsume: 100, want: 1, ok: true},
		{name: "too little food", energy: 0, maxEnergy: 500, food: "0.1999 FOOD", threshold: 50, maxConsume: 100},
		{name: "above threshold", energy: 250, maxEnergy: 500, food: "100.0000 FOOD", threshold: 50, maxConsume: 100},
		{name: "full", energy: 500, maxEnergy: 500, food: "100.0000 FOOD", threshold: 200, maxConsume: 100},
		{name: "no max energy", energy: 0, maxEnergy: 0, food: "100.0000 FOOD", threshold: 50, maxConsume: 100},
		{name: "zero consumption cap", energy: 0, maxEnergy: 500, food: "100.0000 FOOD", threshold: 50, maxConsume: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := require.New(t)
			acc := types.GameAccount{Energy: tt.energy, MaxEnergy: tt.maxEnergy, Balances: []string{"10.0000 GOLD", tt.food}}

			got, ok := EnergyRecovery(acc, tt.threshold, tt.maxConsume)
			r.Equal(tt.ok, ok)
			r.Equal(tt.want, got)
			r.LessOrEqual(got, uint64(tt.maxEnergy-min(tt.energy, tt.maxEnergy)))
		})
	}
}

func TestMatchFoodUnique(t *testing.T) {
	r := require.New(t)

	animals := []types.Animal{
		{AssetID: 1, TemplateID: 298614},
		{AssetID: 2, TemplateID: 298613},
		{AssetID: 3, TemplateID: 298597},
		{AssetID: 4, TemplateID: 298603},
		{AssetID: 5, TemplateID: 999},
	}
	pool := []types.FoodItem{
		{AssetID: 10, TemplateID: 318606},
		{AssetID: 11, TemplateID: 298593},
		{AssetID: 12, TemplateID: 318606},
	}

	meals, unmatched := MatchFood(animals, pool, types.NewTemplates(nil, nil, nil).FoodMap())
	r.Len(meals, 3)
	r.Equal(types.Uint64(10), meals[0].Food.AssetID)
	r.Equal(types.Uint64(12), meals[1].Food.AssetID)
	r.Equal(types.Uint64(11), meals[2].Food.AssetID)

	seen := map[types.Uint64]bool{}
	for _, m := range meals {
		r.False(seen[m.Food.AssetID], "food assigned twice")
		seen[m.Food.AssetID] = true
	}

	r.Len(unmatched, 2)
	r.Equal(types.Uint64(4), unmatched[0].AssetID)
	r.Equal(types.Uint64(5), unmatched[1].AssetID)
	r.Len(pool, 3, "caller pool untouched")
}

func TestMatchFoodEmptyPool(t *testing.T) {
	animals := []types.Animal{{AssetID: 1, TemplateID: 298614}, {AssetID: 2, TemplateID: 298597}}
	meals, unmatched := MatchFood(animals, nil, types.NewTemplates(nil, nil, nil).FoodMap())
	require.Empty(t, meals)
	require.Equal(t, animals, unmatched)
}

func balances(t *testing.T, s string) types.Balances {
	b, err := types.ParseBalanceList(s)
	require.NoError(t, err)
	return b
}

func TestSelectWithdrawable(t *testing.T) {
	r := require.New(t)

	got := SelectWithdrawable(
		balances(t, "50 FOOD"),
		balances(t, "100 FOOD"),
		nil,
	)
	r.Empty(got)

	got = SelectWithdrawable(
		balances(t, "500 WOOD, 120 FOOD, 20 GOLD"),
		balances(t, "100 WOOD, 100 FOOD, 50 GOLD"),
		balances(t, "250 WOOD"),
	)
	r.Equal([]string{"250.0000 WOOD", "120.0000 FOOD"}, got.Quantities())

	got = SelectWithdrawable(balances(t, "100 FOOD"), balances(t, "100 FOOD"), nil)
	r.Len(got, 1, "threshold is inclusive")
}

func TestSelectDepositable(t *testing.T) {
	r := require.New(t)

	got := SelectDepositable(
		balances(t, "10 FOOD, 500 WOOD, 1 GOLD"),
		balances(t, "300 FWF, 40 FWW"),
		balances(t, "100 FOOD, 100 WOOD, 100 GOLD"),
		balances(t, "200 FOOD"),
	)
	r.Equal([]string{"200.0000 FWF"}, got.Quantities())

	r.Empty(SelectDepositable(nil, nil, balances(t, "100 FOOD"), nil))
}
