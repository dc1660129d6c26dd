package tradeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// --- Chains ---

func (c *Client) GetChains(ctx context.Context) ([]Chain, error) {
	return doJSON[[]Chain](c, ctx, request{method: http.MethodGet, path: "/chains", auth: true})
}

// CreateChain returns nil without error when the backend answered with an empty payload.
func (c *Client) CreateChain(ctx context.Context, dto ChainPayload) (*Chain, error) {
	return doJSON[*Chain](c, ctx, request{method: http.MethodPost, path: "/chains", body: dto, auth: true})
}

func (c *Client) UpdateChain(ctx context.Context, id int64, dto ChainPayload) (bool, error) {
	return doJSON[bool](c, ctx, request{method: http.MethodPatch, path: fmt.Sprintf("/chains/%d", id), body: dto, auth: true})
}

func (c *Client) DeleteChain(ctx context.Context, id int64) (bool, error) {
	return doJSON[bool](c, ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/chains/%d", id), auth: true})
}

// --- DEXes ---

func (c *Client) GetDexes(ctx context.Context) ([]DEX, error) {
	return doJSON[[]DEX](c, ctx, request{method: http.MethodGet, path: "/dexes", auth: true})
}

func (c *Client) CreateDex(ctx context.Context, dto DEXPayload) (*DEX, error) {
	return doJSON[*DEX](c, ctx, request{method: http.MethodPost, path: "/dexes", body: dto, auth: true})
}

func (c *Client) UpdateDex(ctx context.Context, id int64, dto DEXPayload) (bool, error) {
	return doJSON[bool](c, ctx, request{method: http.MethodPatch, path: fmt.Sprintf("/dexes/%d", id), body: dto, auth: true})
}

func (c *Client) DeleteDex(ctx context.Context, id int64) (bool, error) {
	return doJSON[bool](c, ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/dexes/%d", id), auth: true})
}

// --- DEX routers ---

func (c *Client) GetDexRouters(ctx context.Context) ([]DEXRouter, error) {
	return doJSON[[]DEXRouter](c, ctx, request{method: http.MethodGet, path: "/dex-routers", auth: true})
}

// GetDexRoutersByChainID lists the routers deployed on chainID.
func (c *Client) GetDexRoutersByChainID(ctx context.Context, chainID string) ([]DEXRouter, error) {
	q := url.Values{}
	q.Set("chainId", chainID)
	return doJSON[[]DEXRouter](c, ctx, request{method: http.MethodGet, path: "/dex-routers/get-by-chain", query: q, auth: true})
}

func (c *Client) GetDexRouterByID(ctx context.Context, id int64) (*DEXRouter, error) {
	return doJSON[*DEXRouter](c, ctx, request{method: http.MethodGet, path: fmt.Sprintf("/dex-routers/%d", id), auth: true})
}

func (c *Client) CreateDexRouter(ctx context.Context, dto DEXRouterPayload) (*DEXRouter, error) {
	return doJSON[*DEXRouter](c, ctx, request{method: http.MethodPost, path: "/dex-routers", body: dto, auth: true})
}

func (c *Client) UpdateDexRouter(ctx context.Context, id int64, dto DEXRouterPayload) (bool, error) {
	return doJSON[bool](c, ctx, request{method: http.MethodPatch, path: fmt.Sprintf("/dex-routers/%d", id), body: dto, auth: true})
}

func (c *Client) DeleteDexRouter(ctx context.Context, id int64) (bool, error) {
	return doJSON[bool](c, ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/dex-routers/%d", id), auth: true})
}

// --- Trading contracts ---

func (c *Client) GetTradingContracts(ctx context.Context) ([]TradingContract, error) {
	return doJSON[[]TradingContract](c, ctx, request{method: http.MethodGet, path: "/trading-contracts", auth: true})
}

func (c *Client) GetTradingContractByID(ctx context.Context, id int64) (*TradingContract, error) {
	return doJSON[*TradingContract](c, ctx, request{method: http.MethodGet, path: fmt.Sprintf("/trading-contracts/%d", id), auth: true})
}

func (c *Client) CreateTradingContract(ctx context.Context, dto TradingContractPayload) (*TradingContract, error) {
	return doJSON[*TradingContract](c, ctx, request{method: http.MethodPost, path: "/trading-contracts", body: dto, auth: true})
}

func (c *Client) UpdateTradingContract(ctx context.Context, id int64, dto TradingContractPayload) (bool, error) {
	return doJSON[bool](c, ctx, request{method: http.MethodPatch, path: fmt.Sprintf("/trading-contracts/%d", id), body: dto, auth: true})
}

func (c *Client) DeleteTradingContract(ctx context.Context, id int64) (bool, error) {
	return doJSON[bool](c, ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/trading-contracts/%d", id), auth: true})
}
