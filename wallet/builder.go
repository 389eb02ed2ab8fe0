package wallet

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/JackalLabs/harvester/chain"
	eos "github.com/eoscanada/eos-go"
	lru "github.com/hashicorp/golang-lru"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultExpiration = time.Hour
	abiCacheSize      = 16
)

var (
	ErrNoEndpoint   = errors.New("no chain endpoint available")
	ErrNoActions    = errors.New("transaction has no actions")
	ErrShortBlockID = errors.New("head block id is shorter than 12 bytes")
)

// RefBlockPrefix is the little endian uint32 at bytes 8..11 of the head block id.
func RefBlockPrefix(headBlockID []byte) (uint32, error) {
	if len(headBlockID) < 12 {
		return 0, ErrShortBlockID
	}
	return binary.LittleEndian.Uint32(headBlockID[8:12]), nil
}

// Header derives the TAPoS fields and expiration from one head snapshot.
func Header(info *eos.InfoResp, expiration time.Duration) (eos.TransactionHeader, error) {
	prefix, err := RefBlockPrefix(info.HeadBlockID)
	if err != nil {
		return eos.TransactionHeader{}, err
	}
	return eos.TransactionHeader{
		Expiration:     eos.JSONTime{Time: info.HeadBlockTime.Time.UTC().Add(expiration)},
		RefBlockNum:    uint16(info.HeadBlockNum & 0xffff),
		RefBlockPrefix: prefix,
	}, nil
}

// Builder assembles, signs and pushes transactions. Every submission talks to
// a single randomly chosen endpoint and is never retried.
type Builder struct {
	client     *chain.Client
	abis       *lru.Cache
	expiration time.Duration
}

func NewBuilder(client *chain.Client) (*Builder, error) {
	cache, err := lru.New(abiCacheSize)
	if err != nil {
		return nil, err
	}
	return &Builder{
		client:     client,
		abis:       cache,
		expiration: DefaultExpiration,
	}, nil
}

func (b *Builder) step(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.client.Timeout())
}

func (b *Builder) abi(ctx context.Context, node chain.Node, contract string) (*eos.ABI, error) {
	if v, ok := b.abis.Get(contract); ok {
		return v.(*eos.ABI), nil
	}

	sctx, cancel := b.step(ctx)
	defer cancel()
	res, err := node.GetABI(sctx, eos.AN(contract))
	if err != nil {
		return nil, fmt.Errorf("cannot fetch abi of %s: %w", contract, err)
	}
	abi := res.ABI
	b.abis.Add(contract, &abi)
	return &abi, nil
}

// Encode serializes action data against the contract ABI.
func (b *Builder) Encode(ctx context.Context, node chain.Node, a Action) (*eos.Action, error) {
	abi, err := b.abi(ctx, node, a.Contract)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(a.Data)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal %s data: %w", a, err)
	}
	data, err := abi.EncodeAction(eos.ActN(a.Name), raw)
	if err != nil {
		return nil, fmt.Errorf("cannot serialize %s: %w", a, err)
	}

	auth := make([]eos.PermissionLevel, 0, len(a.Authorization))
	for _, p := range a.Authorization {
		auth = append(auth, eos.PermissionLevel{Actor: eos.AN(p.Actor), Permission: eos.PN(p.Permission)})
	}

	return &eos.Action{
		Account:       eos.AN(a.Contract),
		Name:          eos.ActN(a.Name),
		Authorization: auth,
		ActionData:    eos.ActionData{HexData: data},
	}, nil
}

// Submit signs actions with every key of signer and pushes them as one
// transaction. It returns the transaction id.
func (b *Builder) Submit(ctx context.Context, signer Signer, actions []Action) (string, error) {
	if len(actions) == 0 {
		return "", ErrNoActions
	}
	endpoint, node := b.client.Random()
	if node == nil {
		return "", ErrNoEndpoint
	}

	ictx, cancel := b.step(ctx)
	info, err := node.GetInfo(ictx)
	cancel()
	if err != nil {
		return "", fmt.Errorf("cannot fetch head info from %s: %w", endpoint, err)
	}

	header, err := Header(info, b.expiration)
	if err != nil {
		return "", err
	}

	tx := &eos.Transaction{TransactionHeader: header}
	for _, a := range actions {
		act, err := b.Encode(ctx, node, a)
		if err != nil {
			return "", err
		}
		tx.Actions = append(tx.Actions, act)
	}

	signed, err := signer.Sign(ctx, eos.NewSignedTransaction(tx), info.ChainID)
	if err != nil {
		return "", fmt.Errorf("cannot sign transaction: %w", err)
	}
	packed, err := signed.Pack(eos.CompressionNone)
	if err != nil {
		return "", fmt.Errorf("cannot pack transaction: %w", err)
	}

	pctx, cancel := b.step(ctx)
	defer cancel()
	res, err := node.PushTransaction(pctx, packed)
	if err != nil {
		return "", fmt.Errorf("push to %s failed: %w", endpoint, err)
	}

	log.Debug().
		Str("endpoint", endpoint).
		Uint16("ref_block_num", header.RefBlockNum).
		Uint32("ref_block_prefix", header.RefBlockPrefix).
		Str("tx", res.TransactionID).
		Msg("Transaction pushed")

	return res.TransactionID, nil
}
