package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	eos "github.com/eoscanada/eos-go"
	"github.com/eoscanada/eos-go/ecc"
)

var ErrNoKeys = errors.New("no private keys configured")

// Signer produces one signature per held key over a transaction.
type Signer interface {
	PublicKeys() []ecc.PublicKey
	Sign(ctx context.Context, tx *eos.SignedTransaction, chainID []byte) (*eos.SignedTransaction, error)
}

var _ Signer = (*Keyring)(nil)

// Keyring holds the WIF keys of one account.
type Keyring struct {
	bag  *eos.KeyBag
	pubs []ecc.PublicKey
}

// NewKeyring validates and imports every key. Order is preserved.
func NewKeyring(ctx context.Context, wifs []string) (*Keyring, error) {
	k := &Keyring{bag: eos.NewKeyBag()}

	for i, wif := range wifs {
		wif = strings.TrimSpace(wif)
		if wif == "" {
			continue
		}
		priv, err := ecc.NewPrivateKey(wif)
		if err != nil {
			return nil, fmt.Errorf("private key #%d is invalid: %w", i+1, err)
		}
		if err := k.bag.ImportPrivateKey(ctx, wif); err != nil {
			return nil, fmt.Errorf("cannot import private key #%d: %w", i+1, err)
		}
		k.pubs = append(k.pubs, priv.PublicKey())
	}

	if len(k.pubs) == 0 {
		return nil, ErrNoKeys
	}
	return k, nil
}

func (k *Keyring) PublicKeys() []ecc.PublicKey {
	out := make([]ecc.PublicKey, len(k.pubs))
	copy(out, k.pubs)
	return out
}

// PublicKeyStrings returns the legacy EOS prefixed form of every key.
func (k *Keyring) PublicKeyStrings() []string {
	out := make([]string, 0, len(k.pubs))
	for _, p := range k.pubs {
		out = append(out, p.String())
	}
	return out
}

func (k *Keyring) Sign(ctx context.Context, tx *eos.SignedTransaction, chainID []byte) (*eos.SignedTransaction, error) {
	return k.bag.Sign(ctx, tx, chainID, k.pubs...)
}
