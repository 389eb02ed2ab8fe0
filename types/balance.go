package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TokenPrecision is the number of decimals used by every Farmers World token.
const TokenPrecision = 4

// Balance is a typed "amount SYMBOL" pair, e.g. "12.5000 FOOD".
type Balance struct {
	Amount    float64
	Symbol    string
	Precision int
}

type Balances []Balance

var ErrInvalidBalance = errors.New("invalid balance")

// ParseBalance parses a single "amount SYMBOL" string.
func ParseBalance(s string) (Balance, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return Balance{}, fmt.Errorf("%w: %q", ErrInvalidBalance, s)
	}

	amount, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Balance{}, errors.Join(fmt.Errorf("%w: %q", ErrInvalidBalance, s), err)
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Balance{}, fmt.Errorf("%w: negative or non-finite amount in %q", ErrInvalidBalance, s)
	}

	precision := 0
	if i := strings.IndexByte(fields[0], '.'); i >= 0 {
		precision = len(fields[0]) - i - 1
	}

	return Balance{
		Amount:    amount,
		Symbol:    strings.ToUpper(fields[1]),
		Precision: precision,
	}, nil
}

// ParseBalanceList parses the "amount SYMBOL, amount SYMBOL" list format.
// An empty string yields an empty list.
func ParseBalanceList(s string) (Balances, error) {
	out := make(Balances, 0)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		b, err := ParseBalance(part)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// ParseBalanceStrings parses the string slice form used by on-chain rows.
// Malformed entries are dropped.
func ParseBalanceStrings(list []string) Balances {
	out := make(Balances, 0, len(list))
	for _, s := range list {
		b, err := ParseBalance(s)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	return out
}

// WithPrecision returns the balance truncated (never rounded up) to p decimals.
func (b Balance) WithPrecision(p int) Balance {
	scale := math.Pow10(p)
	b.Amount = math.Floor(b.Amount*scale+1e-9) / scale
	b.Precision = p
	return b
}

func (b Balance) String() string {
	return fmt.Sprintf("%.*f %s", b.Precision, b.Amount, b.Symbol)
}

// Quantity is the chain asset string with the token precision applied.
func (b Balance) Quantity() string {
	return b.WithPrecision(TokenPrecision).String()
}

// Find returns the balance for symbol.
func (bs Balances) Find(symbol string) (Balance, bool) {
	symbol = strings.ToUpper(symbol)
	for _, b := range bs {
		if b.Symbol == symbol {
			return b, true
		}
	}
	return Balance{}, false
}

// Amount returns the amount held for symbol, zero if absent.
func (bs Balances) Amount(symbol string) float64 {
	b, _ := bs.Find(symbol)
	return b.Amount
}

func (bs Balances) Quantities() []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Quantity())
	}
	return out
}

func (bs Balances) String() string {
	parts := make([]string, 0, len(bs))
	for _, b := range bs {
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ", ")
}

// walletSymbols maps in-game resource symbols to their farmerstoken counterparts.
var walletSymbols = map[string]string{
	"WOOD": "FWW",
	"GOLD": "FWG",
	"FOOD": "FWF",
}

// WalletSymbol returns the wallet token symbol for an in-game resource.
func WalletSymbol(game string) (string, bool) {
	s, ok := walletSymbols[strings.ToUpper(game)]
	return s, ok
}

// GameSymbol returns the in-game resource symbol for a wallet token.
func GameSymbol(wallet string) (string, bool) {
	wallet = strings.ToUpper(wallet)
	for g, w := range walletSymbols {
		if w == wallet {
			return g, true
		}
	}
	return "", false
}
