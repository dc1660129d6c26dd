package domain

import (
	"context"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
)

// CatalogAPI is the slice of the backend the editors use. *tradeapi.Client satisfies it.
type CatalogAPI interface {
	GetChains(ctx context.Context) ([]tradeapi.Chain, error)
	CreateChain(ctx context.Context, dto tradeapi.ChainPayload) (*tradeapi.Chain, error)
	UpdateChain(ctx context.Context, id int64, dto tradeapi.ChainPayload) (bool, error)
	DeleteChain(ctx context.Context, id int64) (bool, error)

	GetDexes(ctx context.Context) ([]tradeapi.DEX, error)
	CreateDex(ctx context.Context, dto tradeapi.DEXPayload) (*tradeapi.DEX, error)
	UpdateDex(ctx context.Context, id int64, dto tradeapi.DEXPayload) (bool, error)
	DeleteDex(ctx context.Context, id int64) (bool, error)

	GetDexRouters(ctx context.Context) ([]tradeapi.DEXRouter, error)
	GetDexRoutersByChainID(ctx context.Context, chainID string) ([]tradeapi.DEXRouter, error)
	CreateDexRouter(ctx context.Context, dto tradeapi.DEXRouterPayload) (*tradeapi.DEXRouter, error)
	UpdateDexRouter(ctx context.Context, id int64, dto tradeapi.DEXRouterPayload) (bool, error)
	DeleteDexRouter(ctx context.Context, id int64) (bool, error)

	GetTradingContracts(ctx context.Context) ([]tradeapi.TradingContract, error)
	CreateTradingContract(ctx context.Context, dto tradeapi.TradingContractPayload) (*tradeapi.TradingContract, error)
	UpdateTradingContract(ctx context.Context, id int64, dto tradeapi.TradingContractPayload) (bool, error)
	DeleteTradingContract(ctx context.Context, id int64) (bool, error)
}
