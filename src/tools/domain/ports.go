package domain

import (
	"context"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
)

// ToolsAPI is the part of the trading backend the tools pages drive.
// *tradeapi.Client satisfies it.
type ToolsAPI interface {
	GetTradingContractByID(ctx context.Context, id int64) (*tradeapi.TradingContract, error)
	UpdateTradingContract(ctx context.Context, id int64, dto tradeapi.TradingContractPayload) (bool, error)
	GetDexRouterByID(ctx context.Context, id int64) (*tradeapi.DEXRouter, error)

	GetWallet(ctx context.Context) (*tradeapi.Wallet, error)
	GetBalance(ctx context.Context, chainID string) (*tradeapi.WalletBalance, error)
	GetErc20Balance(ctx context.Context, contractID int64) (*tradeapi.WalletBalance, error)
	CheckWETHApproval(ctx context.Context, routerID int64) (*tradeapi.ApprovalStatus, error)
	CheckApproval(ctx context.Context, contractID, routerID int64) (*tradeapi.ApprovalStatus, error)
	ApproveContract(ctx context.Context, contractID, routerID int64) (*tradeapi.CompletedTransaction, error)
	ApproveWETH(ctx context.Context, routerID int64) (*tradeapi.CompletedTransaction, error)
	Swap(ctx context.Context, contractID, routerID int64, amountIn string) (*tradeapi.CompletedTransaction, error)

	GetSnipesByContractID(ctx context.Context, contractID int64) ([]tradeapi.Snipe, error)
	GetSnipeByID(ctx context.Context, id int64) (*tradeapi.Snipe, error)
	GetSnipeDataByID(ctx context.Context, id int64) (*tradeapi.SnipeData, error)
	SnipeSwapEthToTokens(ctx context.Context, action tradeapi.SnipeAction) (int64, error)
	DeleteSnipe(ctx context.Context, id int64) (bool, error)
}

// RouterLister lists the routers of one chain through the shared query cache.
// The manage use case satisfies it.
type RouterLister interface {
	ListDexRoutersByChain(ctx context.Context, chainID string) ([]tradeapi.DEXRouter, error)
}

var _ ToolsAPI = (*tradeapi.Client)(nil)
