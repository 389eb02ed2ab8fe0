package wallet

import (
	"fmt"

	"github.com/JackalLabs/harvester/types"
)

const (
	GameContract   = "farmersworld"
	TokenContract  = "farmerstoken"
	AssetsContract = "atomicassets"

	ActivePermission = "active"
)

type Authorization struct {
	Actor      string
	Permission string
}

// Action is one contract call. Data is serialized against the contract ABI
// at submission time.
type Action struct {
	Contract      string
	Name          string
	Authorization []Authorization
	Data          map[string]any
}

func (a Action) String() string {
	return fmt.Sprintf("%s::%s", a.Contract, a.Name)
}

func active(owner string) []Authorization {
	return []Authorization{{Actor: owner, Permission: ActivePermission}}
}

// Claim collects the output of a tool.
func Claim(owner string, toolID types.Uint64) Action {
	return Action{
		Contract:      GameContract,
		Name:          "claim",
		Authorization: active(owner),
		Data: map[string]any{
			"owner":    owner,
			"asset_id": uint64(toolID),
		},
	}
}

// CropClaim waters a planted crop.
func CropClaim(owner string, cropID types.Uint64) Action {
	return Action{
		Contract:      GameContract,
		Name:          "cropclaim",
		Authorization: active(owner),
		Data: map[string]any{
			"owner":   owner,
			"crop_id": uint64(cropID),
		},
	}
}

func Repair(owner string, toolID types.Uint64) Action {
	return Action{
		Contract:      GameContract,
		Name:          "repair",
		Authorization: active(owner),
		Data: map[string]any{
			"asset_owner": owner,
			"asset_id":    uint64(toolID),
		},
	}
}

// Feed transfers one food card to the game with the animal in the memo.
func Feed(owner string, foodID, animalID types.Uint64) Action {
	return Action{
		Contract:      AssetsContract,
		Name:          "transfer",
		Authorization: active(owner),
		Data: map[string]any{
			"from":      owner,
			"to":        GameContract,
			"asset_ids": []uint64{uint64(foodID)},
			"memo":      fmt.Sprintf("feed_animal:%d", uint64(animalID)),
		},
	}
}

func Recover(owner string, energy uint64) Action {
	return Action{
		Contract:      GameContract,
		Name:          "recover",
		Authorization: active(owner),
		Data: map[string]any{
			"owner":            owner,
			"energy_recovered": energy,
		},
	}
}

// Withdraw moves in-game resources to wallet tokens. fee is the percentage
// currently charged by the game.
func Withdraw(owner string, quantities types.Balances, fee uint64) Action {
	return Action{
		Contract:      GameContract,
		Name:          "withdraw",
		Authorization: active(owner),
		Data: map[string]any{
			"owner":      owner,
			"quantities": quantities.Quantities(),
			"fee":        fee,
		},
	}
}

// Deposit moves wallet tokens into the game.
func Deposit(owner string, quantities types.Balances) Action {
	return Action{
		Contract:      TokenContract,
		Name:          "transfers",
		Authorization: active(owner),
		Data: map[string]any{
			"from":       owner,
			"to":         GameContract,
			"quantities": quantities.Quantities(),
			"memo":       "deposit",
		},
	}
}
