package farm

import (
	"context"

	"github.com/JackalLabs/harvester/policy"
	"github.com/JackalLabs/harvester/types"
	"github.com/JackalLabs/harvester/wallet"
)

func (f *Farmer) deposit(ctx context.Context) TaskReport {
	tr := TaskReport{State: StateDeposit.String()}
	rule := f.env.Settings.Deposit
	if !rule.Enabled {
		tr.Skipped = "Auto deposit disabled"
		return tr
	}

	acc, ok := f.env.Game.Account(ctx, f.account)
	if !ok {
		tr.Skipped = "No game account found"
		return tr
	}
	held := f.env.Game.WalletBalances(ctx, f.account)
	tr.Found = len(held)

	quantities := policy.SelectDepositable(acc.ParsedBalances(), held, rule.Threshold, rule.Max)
	f.eligible(&tr, len(quantities))
	if len(quantities) == 0 {
		tr.Skipped = "Nothing to deposit"
		return tr
	}

	f.log.Info().Str("quantities", quantities.String()).Msg("Depositing tokens")
	f.submit(&tr, wallet.Deposit(f.account, quantities))
	return tr
}

func (f *Farmer) recoverEnergy(ctx context.Context) TaskReport {
	tr := TaskReport{State: StateRecover.String()}

	acc, ok := f.env.Game.Account(ctx, f.account)
	if !ok {
		tr.Skipped = "No game account found"
		return tr
	}
	tr.Found = 1

	energy, ok := policy.EnergyRecovery(acc, f.env.Settings.RecoverThreshold, f.env.Settings.MaxFoodConsumption)
	if !ok {
		tr.Skipped = "Energy recovery not needed or not affordable"
		return tr
	}
	f.eligible(&tr, 1)

	f.log.Info().
		Uint64("energy", uint64(acc.Energy)).
		Uint64("max_energy", uint64(acc.MaxEnergy)).
		Uint64("recover", energy).
		Msg("Recovering energy")
	f.submit(&tr, wallet.Recover(f.account, energy))
	return tr
}

func (f *Farmer) repair(ctx context.Context) TaskReport {
	tr := TaskReport{State: StateRepair.String()}

	tools := f.env.Game.Tools(ctx, f.account)
	tr.Found = len(tools)

	var due []types.Tool
	for _, t := range tools {
		if policy.IsRepairable(t, f.env.Settings.RepairThreshold) {
			due = append(due, t)
		}
	}
	f.eligible(&tr, len(due))
	if len(due) == 0 {
		tr.Skipped = "No tools to repair"
		return tr
	}

	for _, t := range due {
		f.log.Info().
			Str("asset_id", t.AssetID.String()).
			Str("type", t.Type).
			Uint64("durability", uint64(t.CurrentDurability)).
			Uint64("max_durability", uint64(t.Durability)).
			Float64("percent", t.DurabilityPercent()).
			Msg("Repairing tool")
		f.submit(&tr, wallet.Repair(f.account, t.AssetID))
	}
	return tr
}

func (f *Farmer) useTools(ctx context.Context) TaskReport {
	tr := TaskReport{State: StateUseTools.String()}

	tools := f.env.Game.Tools(ctx, f.account)
	tr.Found = len(tools)
	now := f.env.Now()

	var ready []types.Tool
	for _, t := range tools {
		var cfg *types.ToolConfig
		if c, ok := f.env.Templates.Tool(t.TemplateID); ok {
			cfg = &c
		}
		if policy.IsUsable(t, cfg, now) {
			ready = append(ready, t)
		}
	}
	f.eligible(&tr, len(ready))
	if len(ready) == 0 {
		tr.Skipped = "No tools ready to claim"
		return tr
	}

	for _, t := range ready {
		f.log.Info().Str("asset_id", t.AssetID.String()).Str("type", t.Type).Msg("Claiming with tool")
		f.submit(&tr, wallet.Claim(f.account, t.AssetID))
	}
	return tr
}

func (f *Farmer) claimCrops(ctx context.Context) TaskReport {
	tr := TaskReport{State: StateClaimCrops.String()}

	crops := f.env.Game.Crops(ctx, f.account)
	tr.Found = len(crops)
	now := f.env.Now()

	var ready []types.Crop
	for _, c := range crops {
		if policy.IsClaimable(c.NextAvailability, now) {
			ready = append(ready, c)
		}
	}
	f.eligible(&tr, len(ready))
	if len(ready) == 0 {
		tr.Skipped = "No crops ready to claim"
		return tr
	}

	for _, c := range ready {
		f.log.Info().Str("asset_id", c.AssetID.String()).Str("name", c.Name).Msg("Claiming crop")
		f.submit(&tr, wallet.CropClaim(f.account, c.AssetID))
	}
	return tr
}

func (f *Farmer) feed(ctx context.Context) TaskReport {
	tr := TaskReport{State: StateFeed.String()}

	animals := f.env.Game.Animals(ctx, f.account)
	tr.Found = len(animals)
	now := f.env.Now()

	var hungry []types.Animal
	for _, a := range animals {
		if policy.IsClaimable(a.NextAvailability, now) {
			hungry = append(hungry, a)
		}
	}
	if len(hungry) == 0 {
		tr.Skipped = "No animals ready to feed"
		return tr
	}

	foods := f.env.Assets.Foods(ctx, f.account)
	if len(foods) == 0 {
		tr.Skipped = "No food available"
		return tr
	}
	if len(hungry) > len(foods) {
		f.log.Warn().Int("animals", len(hungry)).Int("food", len(foods)).Msg("Not enough food to feed every animal")
	}

	meals, unmatched := policy.MatchFood(hungry, foods, f.env.Templates.FoodMap())
	for _, a := range unmatched {
		f.log.Info().Str("asset_id", a.AssetID.String()).Str("name", a.Name).Msg("No compatible food found")
	}
	f.eligible(&tr, len(meals))
	if len(meals) == 0 {
		tr.Skipped = "No compatible food for any animal"
		return tr
	}

	for _, m := range meals {
		f.log.Info().
			Str("asset_id", m.Animal.AssetID.String()).
			Str("name", m.Animal.Name).
			Str("food_id", m.Food.AssetID.String()).
			Str("food", m.Food.Name).
			Msg("Feeding animal")
		f.submit(&tr, wallet.Feed(f.account, m.Food.AssetID, m.Animal.AssetID))
	}
	return tr
}

func (f *Farmer) withdraw(ctx context.Context) TaskReport {
	tr := TaskReport{State: StateWithdraw.String()}
	rule := f.env.Settings.Withdraw
	if !rule.Enabled {
		tr.Skipped = "Auto withdraw disabled"
		return tr
	}

	acc, ok := f.env.Game.Account(ctx, f.account)
	if !ok {
		tr.Skipped = "No game account found"
		return tr
	}
	balances := acc.ParsedBalances()
	tr.Found = len(balances)

	quantities := policy.SelectWithdrawable(balances, rule.Threshold, rule.Max)
	f.eligible(&tr, len(quantities))
	if len(quantities) == 0 {
		tr.Skipped = "No balance above withdraw threshold"
		return tr
	}

	fee := f.env.Templates.WithdrawFee()
	f.log.Info().Str("quantities", quantities.String()).Uint64("fee", fee).Msg("Withdrawing resources")
	f.submit(&tr, wallet.Withdraw(f.account, quantities, fee))
	return tr
}
