package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MMN3003/tradedesk/src/Infrastructure/ethereum"
	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/logger"
	managedomain "github.com/MMN3003/tradedesk/src/manage/domain"
	manageuc "github.com/MMN3003/tradedesk/src/manage/usecase"
	"github.com/MMN3003/tradedesk/src/query"
	"github.com/MMN3003/tradedesk/src/tools/domain"
	"github.com/MMN3003/tradedesk/src/validation"
)

// BalancePoll names the wallet balance subscription of the selected contract.
const BalancePoll = "wallet-balances"

type Balances struct {
	Native       *tradeapi.WalletBalance `json:"native,omitempty"`
	ERC20        *tradeapi.WalletBalance `json:"erc20,omitempty"`
	NativeAmount string                  `json:"nativeAmount,omitempty"`
	ERC20Amount  string                  `json:"erc20Amount,omitempty"`
}

// ConfigurationSnapshot is what the tools pages render for the selector.
type ConfigurationSnapshot struct {
	Contract       *tradeapi.TradingContract `json:"contract"`
	Router         *tradeapi.DEXRouter       `json:"router"`
	ERC20Approval  domain.ApprovalState      `json:"erc20Approval"`
	WETHApproval   domain.ApprovalState      `json:"wethApproval"`
	ApprovingERC20 bool                      `json:"approvingErc20"`
	ApprovingWETH  bool                      `json:"approvingWeth"`
	CanProceed     bool                      `json:"canProceed"`
	SwapSettings   *domain.SwapSettingsForm  `json:"swapSettings,omitempty"`
	Balances       Balances                  `json:"balances"`
	WalletAddress  string                    `json:"walletAddress,omitempty"`
	WalletShort    string                    `json:"walletShort,omitempty"`
}

// Configuration is the contract/router selector shared by the swap and snipe
// tools. It tracks both approval legs and keeps the wallet balances polled.
type Configuration struct {
	api          domain.ToolsAPI
	routers      domain.RouterLister
	cache        *query.Cache
	scheduler    query.Scheduler
	logger       *logger.Logger
	balanceEvery time.Duration

	mu             sync.Mutex
	contract       *tradeapi.TradingContract
	router         *tradeapi.DEXRouter
	erc20          domain.ApprovalState
	weth           domain.ApprovalState
	approvingERC20 bool
	approvingWETH  bool
	balanceSub     *query.Subscription
	listeners      []func(erc20Approved, wethApproved bool)
}

func NewConfiguration(api domain.ToolsAPI, routers domain.RouterLister, cache *query.Cache, scheduler query.Scheduler, logg *logger.Logger, balanceEvery time.Duration) *Configuration {
	return &Configuration{
		api:          api,
		routers:      routers,
		cache:        cache,
		scheduler:    scheduler,
		logger:       logg,
		balanceEvery: balanceEvery,
		erc20:        domain.ApprovalUnknown,
		weth:         domain.ApprovalUnknown,
	}
}

// OnApprovalChange registers fn to be told the approval legs after every change.
func (c *Configuration) OnApprovalChange(fn func(erc20Approved, wethApproved bool)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// ---------- SELECTION ----------

// SelectContract loads the contract and makes it current. The router is
// cleared, the ERC-20 leg goes back to UNKNOWN and balance polling restarts.
func (c *Configuration) SelectContract(ctx context.Context, id int64) (*tradeapi.TradingContract, error) {
	contract, err := c.api.GetTradingContractByID(ctx, id)
	if err == nil && contract == nil {
		err = tradeapi.Rejected("Trading contract %d not found", id)
	}

	c.mu.Lock()
	c.stopBalancesLocked()
	c.router = nil
	c.erc20 = domain.ApprovalUnknown
	if err != nil {
		c.contract = nil
		c.mu.Unlock()
		c.emit()
		return nil, err
	}
	c.contract = contract
	c.balanceSub = c.scheduler.Start(BalancePoll, c.balanceEvery, c.refreshBalances(contract.ChainID, contract.ID))
	c.mu.Unlock()

	c.logger.Infof("tools: selected contract %d (%s)", contract.ID, contract.Name)
	c.emit()
	return copyOf(contract), nil
}

// RouterOptions lists the routers of the selected contract's chain. It is
// empty while no contract with a chain id is selected.
func (c *Configuration) RouterOptions(ctx context.Context) ([]managedomain.Option, error) {
	contract, _ := c.Selection()
	if contract == nil || contract.ChainID == "" {
		return []managedomain.Option{}, nil
	}
	routers, err := c.routers.ListDexRoutersByChain(ctx, contract.ChainID)
	if err != nil {
		return nil, err
	}
	return manageuc.RouterOptions(routers), nil
}

// SelectRouter makes one of RouterOptions current. Both legs go back to
// UNKNOWN since the ERC-20 allowance belongs to the (contract, router) pair,
// then both are checked for the new pair.
func (c *Configuration) SelectRouter(ctx context.Context, id int64) (*tradeapi.DEXRouter, error) {
	contract, _ := c.Selection()
	if contract == nil || contract.ChainID == "" {
		return nil, domain.ErrNoContract
	}
	routers, err := c.routers.ListDexRoutersByChain(ctx, contract.ChainID)
	if err != nil {
		return nil, err
	}
	if !containsRouter(routers, id) {
		return nil, domain.ErrUnknownRouter
	}

	router, err := c.api.GetDexRouterByID(ctx, id)
	if err == nil && router == nil {
		err = tradeapi.Rejected("DEX router %d not found", id)
	}

	c.mu.Lock()
	if c.contract == nil || c.contract.ID != contract.ID {
		c.mu.Unlock()
		return nil, domain.ErrNoContract
	}
	c.weth = domain.ApprovalUnknown
	c.erc20 = domain.ApprovalUnknown
	if err != nil {
		c.router = nil
	} else {
		c.router = router
	}
	c.mu.Unlock()
	c.emit()
	if err != nil {
		return nil, err
	}

	c.logger.WithField("contract", contract.ID).Infof("tools: selected router %d (%s)", router.ID, router.Name)
	errWETH := c.checkWETH(ctx, router.ID)
	errERC20 := c.checkERC20(ctx, contract.ID, router.ID)
	return copyOf(router), errors.Join(errWETH, errERC20)
}

// Deselect drops the selection and stops balance polling.
func (c *Configuration) Deselect() {
	c.mu.Lock()
	c.stopBalancesLocked()
	c.contract = nil
	c.router = nil
	c.erc20 = domain.ApprovalUnknown
	c.weth = domain.ApprovalUnknown
	c.mu.Unlock()
	c.emit()
}

// Selection returns copies of the selected contract and router.
func (c *Configuration) Selection() (*tradeapi.TradingContract, *tradeapi.DEXRouter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyOf(c.contract), copyOf(c.router)
}

// CanProceed reports whether both approval legs are APPROVED.
func (c *Configuration) CanProceed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canProceedLocked()
}

func (c *Configuration) canProceedLocked() bool {
	return c.erc20 == domain.ApprovalApproved && c.weth == domain.ApprovalApproved
}

// ---------- APPROVALS ----------

func (c *Configuration) checkWETH(ctx context.Context, routerID int64) error {
	status, err := c.api.CheckWETHApproval(ctx, routerID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	if c.router == nil || c.router.ID != routerID {
		c.mu.Unlock()
		return nil
	}
	c.weth = domain.ApprovalOf(status != nil && status.Approved)
	c.mu.Unlock()
	c.emit()
	return nil
}

func (c *Configuration) checkERC20(ctx context.Context, contractID, routerID int64) error {
	status, err := c.api.CheckApproval(ctx, contractID, routerID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	if c.contract == nil || c.contract.ID != contractID || c.router == nil || c.router.ID != routerID {
		c.mu.Unlock()
		return nil
	}
	c.erc20 = domain.ApprovalOf(status != nil && status.Approved)
	c.mu.Unlock()
	c.emit()
	return nil
}

// ApproveERC20 approves the selected contract for the selected router and,
// when the backend returns a transaction hash, checks the leg again.
func (c *Configuration) ApproveERC20(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.contract == nil {
		c.mu.Unlock()
		return "", domain.ErrNoContract
	}
	if c.router == nil {
		c.mu.Unlock()
		return "", domain.ErrNoRouter
	}
	if c.approvingERC20 {
		c.mu.Unlock()
		return "", domain.ErrBusy
	}
	c.approvingERC20 = true
	contractID, routerID := c.contract.ID, c.router.ID
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.approvingERC20 = false
		c.mu.Unlock()
	}()

	tx, err := c.api.ApproveContract(ctx, contractID, routerID)
	if err != nil {
		return "", err
	}
	if tx == nil || tx.TxHash == "" {
		return "", nil
	}
	c.logger.Infof("tools: contract %d approved for router %d, tx %s", contractID, routerID, tx.TxHash)
	return tx.TxHash, c.checkERC20(ctx, contractID, routerID)
}

// ApproveWETH approves WETH for the selected router.
func (c *Configuration) ApproveWETH(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.router == nil {
		c.mu.Unlock()
		return "", domain.ErrNoRouter
	}
	if c.approvingWETH {
		c.mu.Unlock()
		return "", domain.ErrBusy
	}
	c.approvingWETH = true
	routerID := c.router.ID
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.approvingWETH = false
		c.mu.Unlock()
	}()

	tx, err := c.api.ApproveWETH(ctx, routerID)
	if err != nil {
		return "", err
	}
	if tx == nil || tx.TxHash == "" {
		return "", nil
	}
	c.logger.Infof("tools: WETH approved for router %d, tx %s", routerID, tx.TxHash)
	return tx.TxHash, c.checkWETH(ctx, routerID)
}

// ---------- SWAP SETTINGS ----------

// SaveSwapSettings stores gas price, gas limit and slippage on the selected contract.
func (c *Configuration) SaveSwapSettings(ctx context.Context, form domain.SwapSettingsForm) error {
	contract, _ := c.Selection()
	if contract == nil {
		return domain.ErrNoContract
	}
	if err := validation.Struct(form); err != nil {
		return err
	}

	ok, err := c.api.UpdateTradingContract(ctx, contract.ID, form.Payload())
	if err != nil {
		return err
	}
	if !ok {
		return tradeapi.Rejected("Failed to update swap settings")
	}

	c.mu.Lock()
	if c.contract != nil && c.contract.ID == contract.ID {
		updated := *c.contract
		updated.GasPrice, updated.GasLimit, updated.Slippage = form.GasPrice, form.GasLimit, form.Slippage
		c.contract = &updated
	}
	c.mu.Unlock()
	c.cache.Invalidate(query.GetTradingContracts)
	return nil
}

// ---------- BALANCES ----------

func balanceKey(chainID string) string {
	return query.Key(query.GetBalance, map[string]any{"chainId": chainID})
}

func erc20BalanceKey(contractID int64) string {
	return query.Key(query.GetErc20Balance, map[string]any{"contractId": contractID})
}

func (c *Configuration) refreshBalances(chainID string, contractID int64) func(ctx context.Context) {
	return func(ctx context.Context) {
		if chainID != "" {
			_, err := query.Refetch(ctx, c.cache, balanceKey(chainID), func(ctx context.Context) (*tradeapi.WalletBalance, error) {
				return c.api.GetBalance(ctx, chainID)
			})
			if err != nil && ctx.Err() == nil {
				c.logger.Warnf("tools: balance of chain %s: %v", chainID, err)
			}
		}
		_, err := query.Refetch(ctx, c.cache, erc20BalanceKey(contractID), func(ctx context.Context) (*tradeapi.WalletBalance, error) {
			return c.api.GetErc20Balance(ctx, contractID)
		})
		if err != nil && ctx.Err() == nil {
			c.logger.Warnf("tools: erc20 balance of contract %d: %v", contractID, err)
		}
	}
}

func (c *Configuration) stopBalancesLocked() {
	if c.balanceSub != nil {
		c.balanceSub.Stop()
		c.balanceSub = nil
	}
}

// ---------- SNAPSHOT ----------

func (c *Configuration) Snapshot(ctx context.Context) ConfigurationSnapshot {
	c.mu.Lock()
	snap := ConfigurationSnapshot{
		Contract:       copyOf(c.contract),
		Router:         copyOf(c.router),
		ERC20Approval:  c.erc20,
		WETHApproval:   c.weth,
		ApprovingERC20: c.approvingERC20,
		ApprovingWETH:  c.approvingWETH,
		CanProceed:     c.canProceedLocked(),
	}
	c.mu.Unlock()

	if snap.Contract != nil {
		settings := domain.SwapSettingsOf(*snap.Contract)
		snap.SwapSettings = &settings
		if b, ok := query.Peek[*tradeapi.WalletBalance](c.cache, balanceKey(snap.Contract.ChainID)); ok {
			snap.Balances.Native = b
			snap.Balances.NativeAmount = c.amountOfBalance(b, ethDecimals)
		}
		if b, ok := query.Peek[*tradeapi.WalletBalance](c.cache, erc20BalanceKey(snap.Contract.ID)); ok {
			snap.Balances.ERC20 = b
			snap.Balances.ERC20Amount = c.amountOfBalance(b, int32(snap.Contract.Decimals))
		}
	}

	wallet, err := query.Fetch(ctx, c.cache, query.Key(query.GetWallet, nil), c.api.GetWallet)
	if err != nil {
		c.logger.Warnf("tools: wallet: %v", err)
	} else if wallet != nil {
		address, err := ethereum.ChecksumAddress(wallet.Address)
		if err != nil {
			c.logger.Warnf("tools: wallet: %v", err)
			address = wallet.Address
		}
		snap.WalletAddress = address
		snap.WalletShort = ethereum.ShortAddress(address)
	}
	return snap
}

// amountOfBalance scales balanceInHex by decimals. Balances without a hex
// figure keep the backend's formatted value.
func (c *Configuration) amountOfBalance(b *tradeapi.WalletBalance, decimals int32) string {
	if b == nil {
		return ""
	}
	if b.BalanceInHex == "" {
		return b.Balance
	}
	wei, err := ethereum.DecodeWei(b.BalanceInHex)
	if err != nil {
		c.logger.Warnf("tools: balance %q: %v", b.BalanceInHex, err)
		return b.Balance
	}
	return ethereum.FromWei(wei, decimals).String()
}

func (c *Configuration) emit() {
	c.mu.Lock()
	erc20, weth := c.erc20 == domain.ApprovalApproved, c.weth == domain.ApprovalApproved
	listeners := append([]func(bool, bool){}, c.listeners...)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(erc20, weth)
	}
}

func containsRouter(routers []tradeapi.DEXRouter, id int64) bool {
	for _, r := range routers {
		if r.ID == id {
			return true
		}
	}
	return false
}

func copyOf[T any](v *T) *T {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
