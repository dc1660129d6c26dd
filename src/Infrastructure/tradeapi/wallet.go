package tradeapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// GetWallet returns the signer the backend trades with.
func (c *Client) GetWallet(ctx context.Context) (*Wallet, error) {
	return doJSON[*Wallet](c, ctx, request{method: http.MethodGet, path: "/wallet", auth: true})
}

// GetBalance returns the native coin balance on chainID.
func (c *Client) GetBalance(ctx context.Context, chainID string) (*WalletBalance, error) {
	q := url.Values{}
	q.Set("chainId", chainID)
	return doJSON[*WalletBalance](c, ctx, request{method: http.MethodGet, path: "/wallet/balance", query: q, auth: true})
}

// GetErc20Balance returns the token balance of a trading contract.
func (c *Client) GetErc20Balance(ctx context.Context, contractID int64) (*WalletBalance, error) {
	q := url.Values{}
	q.Set("contractId", strconv.FormatInt(contractID, 10))
	return doJSON[*WalletBalance](c, ctx, request{method: http.MethodGet, path: "/wallet/erc20-balance", query: q, auth: true})
}

// CheckWETHApproval reports whether the router may move the wallet's wrapped native token.
func (c *Client) CheckWETHApproval(ctx context.Context, routerID int64) (*ApprovalStatus, error) {
	return doJSON[*ApprovalStatus](c, ctx, request{
		method: http.MethodPost,
		path:   "/wallet/check-weth-approval",
		body:   approvalRequest{DEXRouterID: routerID},
		auth:   true,
	})
}

// CheckApproval reports whether the router may move the contract's token.
func (c *Client) CheckApproval(ctx context.Context, contractID, routerID int64) (*ApprovalStatus, error) {
	return doJSON[*ApprovalStatus](c, ctx, request{
		method: http.MethodPost,
		path:   "/wallet/check-approval",
		body:   approvalRequest{ContractID: contractID, DEXRouterID: routerID},
		auth:   true,
	})
}

func (c *Client) ApproveContract(ctx context.Context, contractID, routerID int64) (*CompletedTransaction, error) {
	return doJSON[*CompletedTransaction](c, ctx, request{
		method: http.MethodPost,
		path:   "/wallet/approve",
		body:   approvalRequest{ContractID: contractID, DEXRouterID: routerID},
		auth:   true,
	})
}

func (c *Client) ApproveWETH(ctx context.Context, routerID int64) (*CompletedTransaction, error) {
	return doJSON[*CompletedTransaction](c, ctx, request{
		method: http.MethodPost,
		path:   "/wallet/approve-weth",
		body:   approvalRequest{DEXRouterID: routerID},
		auth:   true,
	})
}

// Swap submits an immediate ETH to token swap.
func (c *Client) Swap(ctx context.Context, contractID, routerID int64, amountIn string) (*CompletedTransaction, error) {
	return doJSON[*CompletedTransaction](c, ctx, request{
		method: http.MethodPost,
		path:   "/swap",
		body:   swapRequest{ContractID: contractID, DEXRouterID: routerID, ExactAmountIn: amountIn},
		auth:   true,
	})
}
