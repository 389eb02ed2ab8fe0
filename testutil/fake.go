package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/JackalLabs/harvester/chain"
	eos "github.com/eoscanada/eos-go"
)

var _ chain.Node = (*FakeNode)(nil)

// HeadBlockID is a block id whose bytes 8..11 are AA BB CC DD.
var HeadBlockID = eos.Checksum256{
	0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
	0xAA, 0xBB, 0xCC, 0xDD,
	0x0c, 0x0d, 0x0e, 0x0f, 0x10, 0x11, 0x12, 0x13,
	0x14, 0x15, 0x16, 0x17, 0x18, 0x19, 0x1a, 0x1b,
	0x1c, 0x1d, 0x1e, 0x1f,
}

var ChainID = eos.Checksum256{
	0x10, 0x64, 0x48, 0x7b, 0x3f, 0xd8, 0x4e, 0x4c,
	0x14, 0xb1, 0x8b, 0x39, 0x1f, 0xd9, 0xfe, 0x26,
	0x92, 0x95, 0xd6, 0x1a, 0x3b, 0x97, 0x0d, 0x24,
	0x10, 0x82, 0x63, 0x52, 0x8c, 0x61, 0x23, 0x8e,
}

// HeadTime is the head block time reported by NewFakeNode.
var HeadTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// TableKey identifies the rows returned for one contract table scope.
func TableKey(code, scope, table string) string {
	return fmt.Sprintf("%s/%s/%s", code, scope, table)
}

// FakeNode is an in-memory nodeos endpoint.
type FakeNode struct {
	mu sync.Mutex

	Info    *eos.InfoResp
	InfoErr error

	Tables   map[string]string
	TableErr error
	// Hang blocks every call until the context is done.
	Hang bool

	ABIs   map[string]*eos.ABI
	ABIErr error

	TxID    string
	PushErr error

	TableCalls []eos.GetTableRowsRequest
	Pushed     []*eos.PackedTransaction
	InfoCalls  int
}

func NewFakeNode() *FakeNode {
	return &FakeNode{
		Info: &eos.InfoResp{
			ChainID:       ChainID,
			HeadBlockNum:  0x12345678,
			HeadBlockID:   HeadBlockID,
			HeadBlockTime: eos.BlockTimestamp{Time: HeadTime},
		},
		Tables: make(map[string]string),
		ABIs:   make(map[string]*eos.ABI),
		TxID:   "0f1e2d3c",
	}
}

// WithRows registers the JSON rows array for a table and returns the node.
func (f *FakeNode) WithRows(code, scope, table, rows string) *FakeNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Tables[TableKey(code, scope, table)] = rows
	return f
}

func (f *FakeNode) hang(ctx context.Context) error {
	if !f.Hang {
		return nil
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *FakeNode) GetInfo(ctx context.Context) (*eos.InfoResp, error) {
	if err := f.hang(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.InfoCalls++
	if f.InfoErr != nil {
		return nil, f.InfoErr
	}
	cp := *f.Info
	return &cp, nil
}

func (f *FakeNode) GetTableRows(ctx context.Context, params eos.GetTableRowsRequest) (*eos.GetTableRowsResp, error) {
	if err := f.hang(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TableCalls = append(f.TableCalls, params)
	if f.TableErr != nil {
		return nil, f.TableErr
	}
	rows, ok := f.Tables[TableKey(params.Code, params.Scope, params.Table)]
	if !ok {
		rows = "[]"
	}
	return &eos.GetTableRowsResp{Rows: []byte(rows)}, nil
}

func (f *FakeNode) GetABI(ctx context.Context, account eos.AccountName) (*eos.GetABIResp, error) {
	if err := f.hang(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ABIErr != nil {
		return nil, f.ABIErr
	}
	abi, ok := f.ABIs[string(account)]
	if !ok {
		return nil, errors.New("unknown contract " + string(account))
	}
	return &eos.GetABIResp{AccountName: account, ABI: *abi}, nil
}

func (f *FakeNode) PushTransaction(ctx context.Context, tx *eos.PackedTransaction) (*eos.PushTransactionFullResp, error) {
	if err := f.hang(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PushErr != nil {
		return nil, f.PushErr
	}
	f.Pushed = append(f.Pushed, tx)
	return &eos.PushTransactionFullResp{TransactionID: f.TxID}, nil
}

func (f *FakeNode) PushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Pushed)
}

func (f *FakeNode) TableCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.TableCalls)
}

// Dialer serves the given nodes by endpoint name.
func Dialer(nodes map[string]*FakeNode) chain.Dialer {
	return func(endpoint string) chain.Node {
		n, ok := nodes[endpoint]
		if !ok {
			n = NewFakeNode()
			n.InfoErr = errors.New("connection refused")
			n.TableErr = errors.New("connection refused")
			n.PushErr = errors.New("connection refused")
		}
		return n
	}
}
