package tradeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) GetSnipesByContractID(ctx context.Context, contractID int64) ([]Snipe, error) {
	q := url.Values{}
	q.Set("contractId", strconv.FormatInt(contractID, 10))
	return doJSON[[]Snipe](c, ctx, request{method: http.MethodGet, path: "/snipes", query: q, auth: true})
}

func (c *Client) GetSnipeByID(ctx context.Context, id int64) (*Snipe, error) {
	return doJSON[*Snipe](c, ctx, request{method: http.MethodGet, path: fmt.Sprintf("/snipes/%d", id), auth: true})
}

// GetSnipeDataByID returns the status and log transcript of a running snipe.
func (c *Client) GetSnipeDataByID(ctx context.Context, id int64) (*SnipeData, error) {
	return doJSON[*SnipeData](c, ctx, request{method: http.MethodGet, path: fmt.Sprintf("/snipes/data/%d", id), auth: true})
}

// SnipeSwapEthToTokens registers a conditional swap and returns its id.
func (c *Client) SnipeSwapEthToTokens(ctx context.Context, action SnipeAction) (int64, error) {
	return doJSON[int64](c, ctx, request{method: http.MethodPost, path: "/snipes/swap-eth-to-token", body: action, auth: true})
}

func (c *Client) DeleteSnipe(ctx context.Context, id int64) (bool, error) {
	return doJSON[bool](c, ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/snipes/%d", id), auth: true})
}
