package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/MMN3003/tradedesk/src/Infrastructure/ethereum"
	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/query"
	"github.com/MMN3003/tradedesk/src/tools/domain"
	"github.com/MMN3003/tradedesk/src/validation"
)

// SwapTool swaps an exact amount of ETH for the selected contract's token.
type SwapTool struct {
	cfg    *Configuration
	api    domain.ToolsAPI
	cache  *query.Cache
	logger *logger.Logger

	mu     sync.Mutex
	busy   bool
	lastTx string
}

func NewSwapTool(cfg *Configuration, api domain.ToolsAPI, cache *query.Cache, logg *logger.Logger) *SwapTool {
	return &SwapTool{cfg: cfg, api: api, cache: cache, logger: logg}
}

// Swap submits the swap and returns its transaction hash.
func (s *SwapTool) Swap(ctx context.Context, form domain.SwapForm) (string, error) {
	contract, router := s.cfg.Selection()
	switch {
	case contract == nil:
		return "", domain.ErrNoContract
	case router == nil:
		return "", domain.ErrNoRouter
	case !s.cfg.CanProceed():
		return "", domain.ErrNotApproved
	}
	if err := validation.Struct(form); err != nil {
		return "", err
	}
	amount, err := amountOf("exactAmountIn", form.ExactAmountIn, ethDecimals)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", domain.ErrBusy
	}
	s.busy = true
	s.lastTx = ""
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	tx, err := s.api.Swap(ctx, contract.ID, router.ID, amount)
	if err != nil {
		return "", err
	}
	if tx == nil || tx.TxHash == "" {
		return "", tradeapi.Rejected("Swap was not submitted")
	}

	s.logger.Infof("tools: swapped %s ETH on contract %d via router %d, tx %s", amount, contract.ID, router.ID, tx.TxHash)
	s.mu.Lock()
	s.lastTx = tx.TxHash
	s.mu.Unlock()
	s.cache.Invalidate(query.GetBalance, query.GetErc20Balance)
	return tx.TxHash, nil
}

type SwapSnapshot struct {
	Processing bool   `json:"processing"`
	TxHash     string `json:"txHash,omitempty"`
}

func (s *SwapTool) Snapshot() SwapSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SwapSnapshot{Processing: s.busy, TxHash: s.lastTx}
}

// ethDecimals is the scale of native coin amounts.
const ethDecimals = 18

// amountOf normalizes an operator amount for the backend. Amounts finer than
// decimals fail as a validation error on field.
func amountOf(field, raw string, decimals int32) (string, error) {
	d, err := ethereum.ParseAmount(raw, decimals)
	if err != nil {
		return "", tradeapi.Invalid(map[string]string{
			field: fmt.Sprintf("%s has more than %d decimal places", field, decimals),
		})
	}
	return d.String(), nil
}
