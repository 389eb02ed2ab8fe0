package chain

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/JackalLabs/harvester/rpc"
	eos "github.com/eoscanada/eos-go"
)

// Node is the subset of the nodeos HTTP API used by the bot. *eos.API satisfies it.
type Node interface {
	GetInfo(ctx context.Context) (*eos.InfoResp, error)
	GetTableRows(ctx context.Context, params eos.GetTableRowsRequest) (*eos.GetTableRowsResp, error)
	GetABI(ctx context.Context, account eos.AccountName) (*eos.GetABIResp, error)
	PushTransaction(ctx context.Context, tx *eos.PackedTransaction) (*eos.PushTransactionFullResp, error)
}

var _ Node = (*eos.API)(nil)

// Dialer builds a Node for one endpoint URL.
type Dialer func(endpoint string) Node

// DialEOS returns an eos-go client with a bounded HTTP timeout.
func DialEOS(timeout time.Duration) Dialer {
	return func(endpoint string) Node {
		api := eos.New(endpoint)
		api.HttpClient = &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport,
		}
		return api
	}
}

// Client hands out Nodes for the endpoints of a pool, dialing each one once.
type Client struct {
	pool    *rpc.Pool
	dial    Dialer
	timeout time.Duration

	mu    sync.Mutex
	nodes map[string]Node
}

func NewClient(pool *rpc.Pool, dial Dialer, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = rpc.DefaultTimeout
	}
	return &Client{
		pool:    pool,
		dial:    dial,
		timeout: timeout,
		nodes:   make(map[string]Node),
	}
}

func (c *Client) Pool() *rpc.Pool {
	return c.pool
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Node returns the cached Node for endpoint.
func (c *Client) Node(endpoint string) Node {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.nodes[endpoint]
	if !ok {
		n = c.dial(endpoint)
		c.nodes[endpoint] = n
	}
	return n
}

// Random picks one endpoint uniformly and returns it with its Node.
// Submissions use this instead of walking the pool.
func (c *Client) Random() (string, Node) {
	endpoint := c.pool.Random()
	if endpoint == "" {
		return "", nil
	}
	return endpoint, c.Node(endpoint)
}

// Info returns the chain head, failing over across the pool.
func (c *Client) Info(ctx context.Context) (*eos.InfoResp, bool) {
	return rpc.Walk(ctx, c.pool, c.timeout, func(ctx context.Context, endpoint string) (*eos.InfoResp, error) {
		return c.Node(endpoint).GetInfo(ctx)
	})
}
