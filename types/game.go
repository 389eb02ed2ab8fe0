package types

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// Uint64 decodes chain integers that may be rendered either as JSON numbers
// or as quoted strings (nodeos quotes large 64 bit values, AtomicAssets quotes all ids).
type Uint64 uint64

func (u *Uint64) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*u = 0
		return nil
	}
	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(string(data), 64)
		if ferr != nil {
			return err
		}
		if f < 0 || f > math.MaxUint64 {
			return fmt.Errorf("%s is out of range for uint64", data)
		}
		v = uint64(f)
	}
	*u = Uint64(v)
	return nil
}

func (u Uint64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(u), 10)), nil
}

func (u Uint64) String() string {
	return strconv.FormatUint(uint64(u), 10)
}

// Time converts an epoch seconds value.
func (u Uint64) Time() time.Time {
	return time.Unix(int64(u), 0)
}

type Tool struct {
	AssetID           Uint64 `json:"asset_id"`
	Owner             string `json:"owner"`
	Type              string `json:"type"`
	Rarity            string `json:"rarity"`
	TemplateID        Uint64 `json:"template_id"`
	Durability        Uint64 `json:"durability"`
	CurrentDurability Uint64 `json:"current_durability"`
	NextAvailability  Uint64 `json:"next_availability"`
}

// DurabilityPercent is the remaining durability as a percentage of the maximum.
func (t Tool) DurabilityPercent() float64 {
	if t.Durability == 0 {
		return 0
	}
	return 100 * float64(t.CurrentDurability) / float64(t.Durability)
}

type Crop struct {
	AssetID          Uint64 `json:"asset_id"`
	Owner            string `json:"owner"`
	Name             string `json:"name"`
	TemplateID       Uint64 `json:"template_id"`
	TimesClaimed     Uint64 `json:"times_claimed"`
	LastClaimed      Uint64 `json:"last_claimed"`
	NextAvailability Uint64 `json:"next_availability"`
}

type Animal struct {
	AssetID          Uint64 `json:"asset_id"`
	Owner            string `json:"owner"`
	Name             string `json:"name"`
	TemplateID       Uint64 `json:"template_id"`
	TimesClaimed     Uint64 `json:"times_claimed"`
	LastClaimed      Uint64 `json:"last_claimed"`
	NextAvailability Uint64 `json:"next_availability"`
}

// GameAccount is a row of the game "accounts" table.
type GameAccount struct {
	Account   string   `json:"account"`
	Balances  []string `json:"balances"`
	Energy    Uint64   `json:"energy"`
	MaxEnergy Uint64   `json:"max_energy"`
}

func (a GameAccount) ParsedBalances() Balances {
	return ParseBalanceStrings(a.Balances)
}

// WalletRow is a row of the token contract "accounts" table.
type WalletRow struct {
	Balance string `json:"balance"`
}

type ToolConfig struct {
	TemplateID         Uint64 `json:"template_id"`
	TemplateName       string `json:"template_name"`
	SchemaName         string `json:"schema_name"`
	Type               string `json:"type"`
	Rarity             string `json:"rarity"`
	Level              Uint64 `json:"level"`
	EnergyConsumed     Uint64 `json:"energy_consumed"`
	DurabilityConsumed Uint64 `json:"durability_consumed"`
	ChargedTime        Uint64 `json:"charged_time"`
}

type AnimalConfig struct {
	TemplateID      Uint64 `json:"template_id"`
	Name            string `json:"name"`
	SchemaName      string `json:"schema_name"`
	Rarity          string `json:"rarity"`
	ConsumedCard    Uint64 `json:"consumed_card"`
	DailyClaimLimit Uint64 `json:"daily_claim_limit"`
	ChargeTime      Uint64 `json:"charge_time"`
}

// GameConfig is the singleton row of the game "config" table.
type GameConfig struct {
	Fee Uint64 `json:"fee"`
}

type FoodItem struct {
	AssetID    Uint64 `json:"asset_id"`
	Name       string `json:"name"`
	Owner      string `json:"owner"`
	TemplateID Uint64 `json:"template_id"`
}

// SortTools orders tools by template then next availability.
func SortTools(tools []Tool) {
	sort.SliceStable(tools, func(i, j int) bool {
		if tools[i].TemplateID != tools[j].TemplateID {
			return tools[i].TemplateID < tools[j].TemplateID
		}
		return tools[i].NextAvailability < tools[j].NextAvailability
	})
}

func SortCrops(crops []Crop) {
	sort.SliceStable(crops, func(i, j int) bool {
		if crops[i].TemplateID != crops[j].TemplateID {
			return crops[i].TemplateID < crops[j].TemplateID
		}
		return crops[i].NextAvailability < crops[j].NextAvailability
	})
}

func SortAnimals(animals []Animal) {
	sort.SliceStable(animals, func(i, j int) bool {
		if animals[i].TemplateID != animals[j].TemplateID {
			return animals[i].TemplateID < animals[j].TemplateID
		}
		return animals[i].NextAvailability < animals[j].NextAvailability
	})
}
