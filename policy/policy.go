package policy

import (
	"math"
	"time"

	"github.com/JackalLabs/harvester/types"
)

const (
	// MinFoodForRecovery is the smallest FOOD balance worth spending on energy.
	MinFoodForRecovery = 0.2
	// EnergyPerFood is the fixed conversion rate of the recover action.
	EnergyPerFood = 5

	FoodSymbol = "FOOD"
)

// IsRepairable reports whether the tool durability ratio is strictly below
// threshold percent. A tool without durability is never repairable.
func IsRepairable(tool types.Tool, threshold float64) bool {
	if tool.Durability == 0 {
		return false
	}
	return tool.DurabilityPercent() < threshold
}

// IsClaimable reports whether next (epoch seconds) is strictly before now,
// comparing at the resolution of now.
func IsClaimable(next types.Uint64, now time.Time) bool {
	return next.Time().Before(now)
}

// IsUsable reports whether a tool is off cooldown and has enough durability
// left to be used once. Without a template only the cooldown counts.
func IsUsable(tool types.Tool, cfg *types.ToolConfig, now time.Time) bool {
	if !IsClaimable(tool.NextAvailability, now) {
		return false
	}
	if cfg == nil {
		return true
	}
	return tool.CurrentDurability > cfg.DurabilityConsumed
}

// EnergyRecovery returns how much energy to recover, and false when the
// account is above threshold percent or lacks food.
func EnergyRecovery(acc types.GameAccount, threshold, maxConsumption float64) (uint64, bool) {
	if acc.MaxEnergy == 0 || acc.Energy >= acc.MaxEnergy {
		return 0, false
	}
	ratio := 100 * float64(acc.Energy) / float64(acc.MaxEnergy)
	if ratio >= threshold {
		return 0, false
	}

	food := acc.ParsedBalances().Amount(FoodSymbol)
	if food < MinFoodForRecovery {
		return 0, false
	}

	spend := math.Min(maxConsumption, food)
	if spend <= 0 {
		return 0, false
	}
	affordable := uint64(math.Floor(spend*EnergyPerFood + 1e-9))
	missing := uint64(acc.MaxEnergy - acc.Energy)

	amount := min(missing, affordable)
	return amount, amount > 0
}

// Meal pairs an animal with the food asset it will eat.
type Meal struct {
	Animal types.Animal
	Food   types.FoodItem
}

// MatchFood assigns each animal the first unused food item whose template is
// mapped from the animal template. Food is never assigned twice. Animals
// without a mapping or without remaining food are returned as unmatched.
func MatchFood(animals []types.Animal, pool []types.FoodItem, foodMap map[types.Uint64]types.Uint64) ([]Meal, []types.Animal) {
	used := make([]bool, len(pool))
	var meals []Meal
	var unmatched []types.Animal

	for _, animal := range animals {
		want, ok := foodMap[animal.TemplateID]
		if !ok {
			unmatched = append(unmatched, animal)
			continue
		}

		found := -1
		for i, food := range pool {
			if !used[i] && food.TemplateID == want {
				found = i
				break
			}
		}
		if found < 0 {
			unmatched = append(unmatched, animal)
			continue
		}

		used[found] = true
		meals = append(meals, Meal{Animal: animal, Food: pool[found]})
	}

	return meals, unmatched
}

// SelectWithdrawable emits min(amount, cap) for every balance meeting its
// threshold. Symbols without a threshold are never withdrawn; a missing cap
// means no cap.
func SelectWithdrawable(balances, thresholds, caps types.Balances) types.Balances {
	var out types.Balances
	for _, b := range balances {
		th, ok := thresholds.Find(b.Symbol)
		if !ok || b.Amount <= 0 || b.Amount < th.Amount {
			continue
		}
		out = append(out, capped(b, caps))
	}
	return out
}

// SelectDepositable emits the wallet tokens to move into the game for every
// resource whose game balance is below its threshold. thresholds and caps use
// game symbols; the result uses wallet symbols.
func SelectDepositable(game, wallet, thresholds, caps types.Balances) types.Balances {
	var out types.Balances
	for _, th := range thresholds {
		if game.Amount(th.Symbol) >= th.Amount {
			continue
		}

		symbol, ok := types.WalletSymbol(th.Symbol)
		if !ok {
			continue
		}
		held, ok := wallet.Find(symbol)
		if !ok || held.Amount <= 0 {
			continue
		}

		if c, ok := caps.Find(th.Symbol); ok && held.Amount > c.Amount {
			held.Amount = c.Amount
		}
		out = append(out, held)
	}
	return out
}

func capped(b types.Balance, caps types.Balances) types.Balance {
	if c, ok := caps.Find(b.Symbol); ok && b.Amount > c.Amount {
		b.Amount = c.Amount
	}
	return b
}
