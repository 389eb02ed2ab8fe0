package testutil

import (
	"context"
	"sync"

	eos "github.com/eoscanada/eos-go"
	"github.com/eoscanada/eos-go/ecc"
)

// FakeSigner records signing requests without producing real signatures.
type FakeSigner struct {
	mu sync.Mutex

	Err      error
	ChainIDs [][]byte
	Signed   []*eos.SignedTransaction
}

func (s *FakeSigner) PublicKeys() []ecc.PublicKey {
	return nil
}

func (s *FakeSigner) Sign(_ context.Context, tx *eos.SignedTransaction, chainID []byte) (*eos.SignedTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.ChainIDs = append(s.ChainIDs, chainID)
	s.Signed = append(s.Signed, tx)
	return tx, nil
}

func (s *FakeSigner) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Signed)
}
