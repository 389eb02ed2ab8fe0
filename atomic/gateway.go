package atomic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/JackalLabs/harvester/config"
	"github.com/JackalLabs/harvester/rpc"
	"github.com/JackalLabs/harvester/types"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	Collection = "farmersworld"
	FoodSchema = "foods"

	DefaultLimit = 100
	assetsPath   = "/atomicassets/v1/assets"
)

var errUnsuccessful = errors.New("asset index reported failure")

type assetsResponse struct {
	Success bool    `json:"success"`
	Data    []asset `json:"data"`
	Message string  `json:"message"`
}

type asset struct {
	AssetID  types.Uint64 `json:"asset_id"`
	Name     string       `json:"name"`
	Owner    string       `json:"owner"`
	Template struct {
		TemplateID types.Uint64 `json:"template_id"`
	} `json:"template"`
}

// Gateway lists AtomicAssets holdings through its own endpoint pool.
type Gateway struct {
	pool    *rpc.Pool
	http    *http.Client
	timeout time.Duration
	limit   int
}

// NewGateway builds a gateway whose HTTP client gives up connecting after timeout.
func NewGateway(pool *rpc.Pool, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = rpc.DefaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: timeout}).DialContext

	return &Gateway{
		pool:    pool,
		http:    &http.Client{Transport: transport},
		timeout: timeout,
		limit:   DefaultLimit,
	}
}

func (g *Gateway) WithLimit(limit int) *Gateway {
	if limit > 0 {
		g.limit = limit
	}
	return g
}

func (g *Gateway) Pool() *rpc.Pool {
	return g.pool
}

// Foods lists the farmersworld food cards owned by owner.
func (g *Gateway) Foods(ctx context.Context, owner string) []types.FoodItem {
	return g.Assets(ctx, owner, Collection, FoodSchema)
}

// Assets returns the first page of assets. Exhaustion of the pool yields an
// empty slice.
func (g *Gateway) Assets(ctx context.Context, owner, collection, schema string) []types.FoodItem {
	items, ok := rpc.Walk(ctx, g.pool, g.timeout, func(ctx context.Context, endpoint string) ([]types.FoodItem, error) {
		return g.fetch(ctx, endpoint, owner, collection, schema)
	})
	if !ok {
		log.Debug().Str("owner", owner).Str("schema", schema).Msg("asset listing returned no data")
		return []types.FoodItem{}
	}
	return items
}

func (g *Gateway) assetsURL(endpoint, owner, collection, schema string) string {
	q := url.Values{}
	q.Set("owner", owner)
	q.Set("collection_name", collection)
	q.Set("schema_name", schema)
	q.Set("page", "1")
	q.Set("limit", strconv.Itoa(g.limit))
	return strings.TrimRight(endpoint, "/") + assetsPath + "?" + q.Encode()
}

func (g *Gateway) fetch(ctx context.Context, endpoint, owner, collection, schema string) ([]types.FoodItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.assetsURL(endpoint, owner, collection, schema), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", config.UserAgent())

	res, err := g.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("asset index returned %s", res.Status)
	}

	var body assetsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("cannot decode asset listing: %w", err)
	}
	if !body.Success {
		return nil, fmt.Errorf("%w: %s", errUnsuccessful, body.Message)
	}

	items := make([]types.FoodItem, 0, len(body.Data))
	for _, a := range body.Data {
		items = append(items, types.FoodItem{
			AssetID:    a.AssetID,
			Name:       a.Name,
			Owner:      a.Owner,
			TemplateID: a.Template.TemplateID,
		})
	}
	return items, nil
}
