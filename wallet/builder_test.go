package wallet_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JackalLabs/harvester/chain"
	"github.com/JackalLabs/harvester/rpc"
	"github.com/JackalLabs/harvester/testutil"
	"github.com/JackalLabs/harvester/types"
	"github.com/JackalLabs/harvester/wallet"
	eos "github.com/eoscanada/eos-go"
	"github.com/eoscanada/eos-go/ecc"
	"github.com/stretchr/testify/require"
)

const gameABI = `{
	"version": "eosio::abi/1.1",
	"types": [],
	"structs": [
		{"name": "claim", "base": "", "fields": [
			{"name": "owner", "type": "name"},
			{"name": "asset_id", "type": "uint64"}
		]},
		{"name": "repair", "base": "", "fields": [
			{"name": "asset_owner", "type": "name"},
			{"name": "asset_id", "type": "uint64"}
		]}
	],
	"actions": [
		{"name": "claim", "type": "claim", "ricardian_contract": ""},
		{"name": "repair", "type": "repair", "ricardian_contract": ""}
	],
	"tables": []
}`

func newBuilder(t *testing.T, node *testutil.FakeNode) *wallet.Builder {
	abi, err := eos.NewABI(strings.NewReader(gameABI))
	require.NoError(t, err)
	node.ABIs[wallet.GameContract] = abi

	pool := rpc.NewPool("wax", []string{"a"})
	client := chain.NewClient(pool, testutil.Dialer(map[string]*testutil.FakeNode{"a": node}), time.Second)
	b, err := wallet.NewBuilder(client)
	require.NoError(t, err)
	return b
}

func TestRefBlockPrefix(t *testing.T) {
	r := require.New(t)

	id := make([]byte, 32)
	copy(id[8:12], []byte{0xAA, 0xBB, 0xCC, 0xDD})
	prefix, err := wallet.RefBlockPrefix(id)
	r.NoError(err)
	r.Equal(uint32(0xDDCCBBAA), prefix)

	_, err = wallet.RefBlockPrefix(id[:11])
	r.ErrorIs(err, wallet.ErrShortBlockID)
}

func TestHeader(t *testing.T) {
	r := require.New(t)

	info := testutil.NewFakeNode().Info
	h, err := wallet.Header(info, time.Hour)
	r.NoError(err)
	r.Equal(uint16(0x5678), h.RefBlockNum)
	r.Equal(uint32(0xDDCCBBAA), h.RefBlockPrefix)
	r.Equal(testutil.HeadTime.Add(3600*time.Second), h.Expiration.Time)
}

func TestSubmit(t *testing.T) {
	r := require.New(t)

	node := testutil.NewFakeNode()
	b := newBuilder(t, node)
	signer := &testutil.FakeSigner{}

	id, err := b.Submit(context.Background(), signer, []wallet.Action{
		wallet.Claim("alice.wam", 1099511627776),
		wallet.Repair("alice.wam", 1099511627777),
	})
	r.NoError(err)
	r.Equal(node.TxID, id)
	r.Equal(1, node.PushCount())

	r.Equal(1, signer.Count())
	r.Equal([]byte(testutil.ChainID), signer.ChainIDs[0])

	tx := signer.Signed[0].Transaction
	r.Equal(uint32(0xDDCCBBAA), tx.RefBlockPrefix)
	r.Equal(uint16(0x5678), tx.RefBlockNum)
	r.Len(tx.Actions, 2)
	r.Equal(eos.AN("farmersworld"), tx.Actions[0].Account)
	r.Equal(eos.ActN("repair"), tx.Actions[1].Name)
	r.Len(tx.Actions[0].HexData, 16, "name + uint64")
	r.Equal(eos.AN("alice.wam"), tx.Actions[0].Authorization[0].Actor)
	r.Equal(eos.PN("active"), tx.Actions[0].Authorization[0].Permission)
}

func TestSubmitCachesABI(t *testing.T) {
	r := require.New(t)

	node := testutil.NewFakeNode()
	b := newBuilder(t, node)
	signer := &testutil.FakeSigner{}

	_, err := b.Submit(context.Background(), signer, []wallet.Action{wallet.Claim("alice.wam", 1)})
	r.NoError(err)

	node.ABIErr = errors.New("abi endpoint down")
	_, err = b.Submit(context.Background(), signer, []wallet.Action{wallet.Claim("alice.wam", 2)})
	r.NoError(err)
	r.Equal(2, node.PushCount())
}

func TestSubmitFailures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(n *testutil.FakeNode, s *testutil.FakeSigner)
		actions []wallet.Action
		want    string
	}{
		{
			name:    "info",
			setup:   func(n *testutil.FakeNode, _ *testutil.FakeSigner) { n.InfoErr = errors.New("connection refused") },
			actions: []wallet.Action{wallet.Claim("alice.wam", 1)},
			want:    "cannot fetch head info",
		},
		{
			name:    "unknown contract",
			setup:   func(n *testutil.FakeNode, _ *testutil.FakeSigner) { delete(n.ABIs, wallet.GameContract) },
			actions: []wallet.Action{wallet.Recover("alice.wam", 10)},
			want:    "cannot fetch abi of farmersworld",
		},
		{
			name:    "unknown action",
			setup:   func(*testutil.FakeNode, *testutil.FakeSigner) {},
			actions: []wallet.Action{{Contract: wallet.GameContract, Name: "nope", Data: map[string]any{}}},
			want:    "cannot serialize farmersworld::nope",
		},
		{
			name:    "sign",
			setup:   func(_ *testutil.FakeNode, s *testutil.FakeSigner) { s.Err = errors.New("bad key") },
			actions: []wallet.Action{wallet.Claim("alice.wam", 1)},
			want:    "cannot sign transaction: bad key",
		},
		{
			name: "push",
			setup: func(n *testutil.FakeNode, _ *testutil.FakeSigner) {
				n.PushErr = errors.New("assertion failure with message: not enough energy")
			},
			actions: []wallet.Action{wallet.Claim("alice.wam", 1)},
			want:    "not enough energy",
		},
		{
			name:    "empty",
			setup:   func(*testutil.FakeNode, *testutil.FakeSigner) {},
			actions: nil,
			want:    wallet.ErrNoActions.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := require.New(t)
			node := testutil.NewFakeNode()
			b := newBuilder(t, node)
			signer := &testutil.FakeSigner{}
			tt.setup(node, signer)

			_, err := b.Submit(context.Background(), signer, tt.actions)
			r.Error(err)
			r.Contains(err.Error(), tt.want)
			r.Zero(node.PushCount(), "never resubmitted or pushed")
		})
	}
}

func TestSubmitNoEndpoint(t *testing.T) {
	client := chain.NewClient(rpc.NewPool("wax", nil), testutil.Dialer(nil), time.Second)
	b, err := wallet.NewBuilder(client)
	require.NoError(t, err)

	_, err = b.Submit(context.Background(), &testutil.FakeSigner{}, []wallet.Action{wallet.Claim("alice.wam", 1)})
	require.ErrorIs(t, err, wallet.ErrNoEndpoint)
}

func TestActionPayloads(t *testing.T) {
	r := require.New(t)

	feed := wallet.Feed("alice.wam", 11, 22)
	r.Equal("atomicassets", feed.Contract)
	r.Equal("transfer", feed.Name)
	r.Equal([]uint64{11}, feed.Data["asset_ids"])
	r.Equal("feed_animal:22", feed.Data["memo"])
	r.Equal("farmersworld", feed.Data["to"])

	qty := types.Balances{
		{Amount: 12.34567, Symbol: "WOOD", Precision: 5},
		{Amount: 3, Symbol: "GOLD"},
	}
	w := wallet.Withdraw("alice.wam", qty, 5)
	r.Equal([]string{"12.3456 WOOD", "3.0000 GOLD"}, w.Data["quantities"])
	r.Equal(uint64(5), w.Data["fee"])

	d := wallet.Deposit("alice.wam", types.Balances{{Amount: 50, Symbol: "FWF"}})
	r.Equal("farmerstoken", d.Contract)
	r.Equal("transfers", d.Name)
	r.Equal([]string{"50.0000 FWF"}, d.Data["quantities"])
	r.Equal("deposit", d.Data["memo"])

	r.Equal("farmersworld::cropclaim", wallet.CropClaim("alice.wam", 3).String())
}

func TestKeyring(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	k, err := wallet.NewKeyring(ctx, []string{" 5KQwrPbwdL6PhXujxW37FSSQZ1JiwsST4cqQzDeyXtP79zkvFD3 ", ""})
	r.NoError(err)
	r.Equal([]string{"EOS6MRyAjQq8ud7hVNYcfnVPJqcVpscN5So8BhtHuGYqET5GDW5CV"}, k.PublicKeyStrings())
	r.Len(k.PublicKeys(), 1)

	_, err = wallet.NewKeyring(ctx, []string{"not-a-key"})
	r.ErrorContains(err, "private key #1 is invalid")

	_, err = wallet.NewKeyring(ctx, nil)
	r.ErrorIs(err, wallet.ErrNoKeys)
}

func TestSubmitSignsWithEveryKey(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	var wifs []string
	for range 2 {
		priv, err := ecc.NewRandomPrivateKey()
		r.NoError(err)
		wifs = append(wifs, priv.String())
	}
	k, err := wallet.NewKeyring(ctx, wifs)
	r.NoError(err)
	r.Len(k.PublicKeys(), 2)

	node := testutil.NewFakeNode()
	b := newBuilder(t, node)

	_, err = b.Submit(ctx, k, []wallet.Action{wallet.Repair("alice.wam", 7)})
	r.NoError(err)
	r.Equal(1, node.PushCount())
	r.Len(node.Pushed[0].Signatures, 2)
}
