package chain

import (
	"context"
	"errors"
	"strconv"

	"github.com/JackalLabs/harvester/rpc"
	"github.com/JackalLabs/harvester/types"
	eos "github.com/eoscanada/eos-go"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	GameContract  = "farmersworld"
	TokenContract = "farmerstoken"

	DefaultRowLimit = 100
)

var errNoRows = errors.New("node returned no rows field")

// TableQuery selects rows of one contract table. An empty Bound means no
// account filter, otherwise lower and upper bound are both set to Bound.
type TableQuery struct {
	Code    string
	Scope   string
	Table   string
	Bound   string
	Index   int
	KeyType string
	Limit   uint32
}

func (q TableQuery) request() eos.GetTableRowsRequest {
	req := eos.GetTableRowsRequest{
		Code:  q.Code,
		Scope: q.Scope,
		Table: q.Table,
		Limit: q.Limit,
		JSON:  true,
	}
	if req.Scope == "" {
		req.Scope = q.Code
	}
	if req.Limit == 0 {
		req.Limit = DefaultRowLimit
	}
	if q.Bound != "" {
		req.LowerBound = q.Bound
		req.UpperBound = q.Bound
		req.KeyType = q.KeyType
		if req.KeyType == "" {
			req.KeyType = "i64"
		}
	}
	if q.Index > 0 {
		req.Index = strconv.Itoa(q.Index)
	}
	return req
}

// Gateway reads game state tables. Reads never fail: when every endpoint
// fails the result is empty.
type Gateway struct {
	client *Client
	code   string
	token  string
}

func NewGateway(client *Client) *Gateway {
	return &Gateway{
		client: client,
		code:   GameContract,
		token:  TokenContract,
	}
}

func (g *Gateway) Client() *Client {
	return g.client
}

// ReadTable returns the raw JSON rows selected by q.
func (g *Gateway) ReadTable(ctx context.Context, q TableQuery) []jsoniter.RawMessage {
	return readRows[jsoniter.RawMessage](ctx, g.client, q)
}

// readRows decodes inside the attempt so a malformed response fails over like
// any other endpoint error.
func readRows[T any](ctx context.Context, c *Client, q TableQuery) []T {
	req := q.request()

	rows, ok := rpc.Walk(ctx, c.pool, c.timeout, func(ctx context.Context, endpoint string) ([]T, error) {
		res, err := c.Node(endpoint).GetTableRows(ctx, req)
		if err != nil {
			return nil, err
		}
		if res == nil || len(res.Rows) == 0 {
			return nil, errNoRows
		}

		var out []T
		if err := json.Unmarshal(res.Rows, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if !ok {
		log.Debug().
			Str("code", req.Code).
			Str("table", req.Table).
			Str("bound", q.Bound).
			Msg("table read returned no data")
		return []T{}
	}
	if rows == nil {
		rows = []T{}
	}
	return rows
}

func (g *Gateway) owned(table string, index int, owner string) TableQuery {
	return TableQuery{
		Code:    g.code,
		Scope:   g.code,
		Table:   table,
		Bound:   owner,
		Index:   index,
		KeyType: "i64",
	}
}

func (g *Gateway) Tools(ctx context.Context, owner string) []types.Tool {
	tools := readRows[types.Tool](ctx, g.client, g.owned("tools", 2, owner))
	types.SortTools(tools)
	return tools
}

func (g *Gateway) Crops(ctx context.Context, owner string) []types.Crop {
	crops := readRows[types.Crop](ctx, g.client, g.owned("crops", 2, owner))
	types.SortCrops(crops)
	return crops
}

func (g *Gateway) Animals(ctx context.Context, owner string) []types.Animal {
	animals := readRows[types.Animal](ctx, g.client, g.owned("animals", 2, owner))
	types.SortAnimals(animals)
	return animals
}

// Account returns the in-game account row, false when the account has none.
func (g *Gateway) Account(ctx context.Context, owner string) (types.GameAccount, bool) {
	rows := readRows[types.GameAccount](ctx, g.client, g.owned("accounts", 1, owner))
	for _, row := range rows {
		if row.Account == owner {
			return row, true
		}
	}
	return types.GameAccount{}, false
}

// WalletBalances returns the farmerstoken balances held outside the game.
func (g *Gateway) WalletBalances(ctx context.Context, owner string) types.Balances {
	rows := readRows[types.WalletRow](ctx, g.client, TableQuery{
		Code:  g.token,
		Scope: owner,
		Table: "accounts",
	})

	out := make(types.Balances, 0, len(rows))
	for _, row := range rows {
		b, err := types.ParseBalance(row.Balance)
		if err != nil {
			log.Warn().Err(err).Str("owner", owner).Msg("Skipping malformed wallet balance")
			continue
		}
		out = append(out, b)
	}
	return out
}

func (g *Gateway) ToolConfigs(ctx context.Context) []types.ToolConfig {
	return readRows[types.ToolConfig](ctx, g.client, TableQuery{Code: g.code, Table: "toolconfs"})
}

func (g *Gateway) AnimalConfigs(ctx context.Context) []types.AnimalConfig {
	return readRows[types.AnimalConfig](ctx, g.client, TableQuery{Code: g.code, Table: "anmconfs"})
}

// GameConfig returns the withdraw fee configuration, nil when unavailable.
func (g *Gateway) GameConfig(ctx context.Context) *types.GameConfig {
	rows := readRows[types.GameConfig](ctx, g.client, TableQuery{Code: g.code, Table: "config", Limit: 1})
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}

// Templates loads every static configuration table.
func (g *Gateway) Templates(ctx context.Context) *types.Templates {
	tools := g.ToolConfigs(ctx)
	animals := g.AnimalConfigs(ctx)
	cfg := g.GameConfig(ctx)

	log.Info().
		Int("tool_templates", len(tools)).
		Int("animal_templates", len(animals)).
		Bool("game_config", cfg != nil).
		Msg("Loaded game templates")

	return types.NewTemplates(tools, animals, cfg)
}
