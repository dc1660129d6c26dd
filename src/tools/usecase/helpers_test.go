package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/query"
	"github.com/MMN3003/tradedesk/src/query/querytest"
)

// fakeAPI is an in-memory trading backend for the tools.
type fakeAPI struct {
	mu sync.Mutex

	contracts map[int64]tradeapi.TradingContract
	routers   map[int64]tradeapi.DEXRouter
	erc20OK   map[[2]int64]bool
	wethOK    map[int64]bool

	approveHash string
	swapHash    string
	snipeID     int64
	snipes      map[int64]tradeapi.Snipe
	snipeData   []tradeapi.SnipeData
	dataCalls   int
	updateOK    bool
	calls       []string
	swapErr     error
	checkErr    error
	swapAmounts []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		contracts: map[int64]tradeapi.TradingContract{
			1: {ID: 1, ChainID: "1", Name: "Pepe", Symbol: "PEPE", Decimals: 9, Chain: &tradeapi.Chain{Name: "Ethereum"}},
			2: {ID: 2, ChainID: "1", Name: "Shib", Symbol: "SHIB", Chain: &tradeapi.Chain{Name: "Ethereum"}},
		},
		routers: map[int64]tradeapi.DEXRouter{
			5: {ID: 5, Name: "Uniswap", Type: tradeapi.RouterTypeRouter02, Chain: tradeapi.Chain{ChainID: "1", Name: "Ethereum"}},
		},
		erc20OK:  map[[2]int64]bool{},
		wethOK:   map[int64]bool{},
		snipes:   map[int64]tradeapi.Snipe{},
		updateOK: true,
	}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAPI) called(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) GetTradingContractByID(_ context.Context, id int64) (*tradeapi.TradingContract, error) {
	f.record("GetTradingContractByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.contracts[id]
	if !ok {
		return nil, &tradeapi.Error{Kind: tradeapi.KindTransport, Status: 404, Message: "Trading contract not found"}
	}
	return &c, nil
}

func (f *fakeAPI) UpdateTradingContract(context.Context, int64, tradeapi.TradingContractPayload) (bool, error) {
	f.record("UpdateTradingContract")
	return f.updateOK, nil
}

func (f *fakeAPI) GetDexRouterByID(_ context.Context, id int64) (*tradeapi.DEXRouter, error) {
	f.record("GetDexRouterByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.routers[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeAPI) ListDexRoutersByChain(_ context.Context, chainID string) ([]tradeapi.DEXRouter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tradeapi.DEXRouter
	for _, r := range f.routers {
		if r.Chain.ChainID == chainID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAPI) GetWallet(context.Context) (*tradeapi.Wallet, error) {
	return &tradeapi.Wallet{Address: "0x52908400098527886e0f7030069857d2e4169ee7"}, nil
}

func (f *fakeAPI) GetBalance(context.Context, string) (*tradeapi.WalletBalance, error) {
	f.record("GetBalance")
	return &tradeapi.WalletBalance{BalanceInHex: "0x14d1120d7b160000", Balance: "1.5"}, nil
}

func (f *fakeAPI) GetErc20Balance(context.Context, int64) (*tradeapi.WalletBalance, error) {
	f.record("GetErc20Balance")
	return &tradeapi.WalletBalance{BalanceInHex: "0xe8d4a51000", Balance: "1000"}, nil
}

func (f *fakeAPI) CheckWETHApproval(_ context.Context, routerID int64) (*tradeapi.ApprovalStatus, error) {
	f.record("CheckWETHApproval")
	f.mu.Lock()
	defer f.mu.Unlock()
	return &tradeapi.ApprovalStatus{Approved: f.wethOK[routerID]}, nil
}

func (f *fakeAPI) CheckApproval(_ context.Context, contractID, routerID int64) (*tradeapi.ApprovalStatus, error) {
	f.record("CheckApproval")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	return &tradeapi.ApprovalStatus{Approved: f.erc20OK[[2]int64{contractID, routerID}]}, nil
}

func (f *fakeAPI) ApproveContract(_ context.Context, contractID, routerID int64) (*tradeapi.CompletedTransaction, error) {
	f.record("ApproveContract")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.approveHash == "" {
		return nil, nil
	}
	f.erc20OK[[2]int64{contractID, routerID}] = true
	return &tradeapi.CompletedTransaction{TxHash: f.approveHash}, nil
}

func (f *fakeAPI) ApproveWETH(_ context.Context, routerID int64) (*tradeapi.CompletedTransaction, error) {
	f.record("ApproveWETH")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.approveHash == "" {
		return nil, nil
	}
	f.wethOK[routerID] = true
	return &tradeapi.CompletedTransaction{TxHash: f.approveHash}, nil
}

func (f *fakeAPI) Swap(_ context.Context, _, _ int64, amount string) (*tradeapi.CompletedTransaction, error) {
	f.record("Swap")
	if f.swapErr != nil {
		return nil, f.swapErr
	}
	if f.swapHash == "" {
		return nil, nil
	}
	f.mu.Lock()
	f.swapAmounts = append(f.swapAmounts, amount)
	f.mu.Unlock()
	return &tradeapi.CompletedTransaction{TxHash: f.swapHash}, nil
}

func (f *fakeAPI) GetSnipesByContractID(_ context.Context, contractID int64) ([]tradeapi.Snipe, error) {
	f.record("GetSnipesByContractID")
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tradeapi.Snipe
	for _, s := range f.snipes {
		if s.ContractID == contractID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeAPI) GetSnipeByID(_ context.Context, id int64) (*tradeapi.Snipe, error) {
	f.record("GetSnipeByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.snipes[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// GetSnipeDataByID replays snipeData one entry per call, then repeats the last.
func (f *fakeAPI) GetSnipeDataByID(context.Context, int64) (*tradeapi.SnipeData, error) {
	f.record("GetSnipeDataByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.snipeData) == 0 {
		return nil, nil
	}
	i := f.dataCalls
	if i >= len(f.snipeData) {
		i = len(f.snipeData) - 1
	}
	f.dataCalls++
	d := f.snipeData[i]
	return &d, nil
}

func (f *fakeAPI) SnipeSwapEthToTokens(_ context.Context, action tradeapi.SnipeAction) (int64, error) {
	f.record("SnipeSwapEthToTokens")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snipeID > 0 {
		f.snipes[f.snipeID] = tradeapi.Snipe{
			ID:              f.snipeID,
			ContractID:      action.ContractID,
			SnipedAmountOut: action.SnipedAmountOut,
			ExactAmountIn:   action.ExactAmountIn,
			Status:          tradeapi.SnipeInit,
		}
	}
	return f.snipeID, nil
}

func (f *fakeAPI) DeleteSnipe(_ context.Context, id int64) (bool, error) {
	f.record("DeleteSnipe")
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.snipes, id)
	return true, nil
}

type fixture struct {
	api       *fakeAPI
	cache     *query.Cache
	scheduler *querytest.ManualScheduler
	svc       *Service
}

func newFixture(t *testing.T, stopOnTerminal bool) *fixture {
	t.Helper()
	api := newFakeAPI()
	cache := query.NewCache(64, time.Minute)
	sched := querytest.NewManualScheduler()
	svc := NewService(api, api, cache, sched, logger.Nop(), Options{
		BalanceInterval:     10 * time.Second,
		SnipeInterval:       3 * time.Second,
		SnipeStopOnTerminal: stopOnTerminal,
	})
	t.Cleanup(svc.Stop)
	return &fixture{api: api, cache: cache, scheduler: sched, svc: svc}
}

// ready selects contract 1 with router 5 and both legs approved.
func (f *fixture) ready(t *testing.T) {
	t.Helper()
	f.api.erc20OK[[2]int64{1, 5}] = true
	f.api.wethOK[5] = true
	ctx := context.Background()
	if _, err := f.svc.Config.SelectContract(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Config.SelectRouter(ctx, 5); err != nil {
		t.Fatal(err)
	}
	if !f.svc.Config.CanProceed() {
		t.Fatal("expected both legs approved")
	}
}
