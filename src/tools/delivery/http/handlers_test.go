package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/logger"
	manageuc "github.com/MMN3003/tradedesk/src/manage/usecase"
	"github.com/MMN3003/tradedesk/src/notify"
	"github.com/MMN3003/tradedesk/src/query"
	"github.com/MMN3003/tradedesk/src/query/querytest"
	"github.com/MMN3003/tradedesk/src/tools/domain"
	"github.com/MMN3003/tradedesk/src/tools/usecase"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backendReplies = map[string]string{
	"GET /trading-contracts/1":         `{"data":{"id":1,"chainId":"1","name":"Pepe","symbol":"PEPE","decimals":18,"gasLimit":"300000"}}`,
	"GET /dex-routers/get-by-chain":    `{"data":[{"id":5,"name":"Uniswap","type":"router02","chain":{"chainId":"1","name":"Ethereum"}}]}`,
	"GET /dex-routers/5":               `{"data":{"id":5,"name":"Uniswap","type":"router02","chain":{"chainId":"1","name":"Ethereum"}}}`,
	"POST /wallet/check-weth-approval": `{"data":{"approved":true}}`,
	"POST /wallet/check-approval":      `{"data":{"approved":true}}`,
	"GET /wallet":                      `{"data":{"address":"0x52908400098527886E0F7030069857D2E4169EE7"}}`,
	"GET /wallet/balance":              `{"data":{"balance":"1.5"}}`,
	"GET /wallet/erc20-balance":        `{"data":{"balance":"1000"}}`,
	"POST /swap":                       `{"data":{"txHash":"0xfeed"}}`,
	"GET /snipes":                      `{"data":[{"id":7,"contractId":1,"status":-1},{"id":8,"contractId":1,"status":4}]}`,
	"GET /snipes/data/7":               `{"data":{"status":2,"data":"","logs":"watching\nmempool"}}`,
	"DELETE /snipes/7":                 `{"data":true}`,
}

type testEnv struct {
	router    *gin.Engine
	handler   *Handler
	scheduler *querytest.ManualScheduler
	notify    *notify.Queue

	mu    sync.Mutex
	calls []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		call := r.Method + " " + r.URL.Path
		env.mu.Lock()
		env.calls = append(env.calls, call)
		env.mu.Unlock()
		reply, ok := backendReplies[call]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"not found"}`)
			return
		}
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(backend.Close)

	client, err := tradeapi.NewClient(backend.URL,
		tradeapi.WithLogger(zerolog.Nop()),
		tradeapi.WithTokenSource(tradeapi.TokenFunc(func(context.Context) (string, error) { return "tok", nil })),
	)
	require.NoError(t, err)

	cache := query.NewCache(64, time.Minute)
	env.scheduler = querytest.NewManualScheduler()
	svc := usecase.NewService(client, manageuc.NewService(client, cache, logger.Nop()), cache, env.scheduler, logger.Nop(), usecase.Options{
		BalanceInterval:     10 * time.Second,
		SnipeInterval:       3 * time.Second,
		SnipeStopOnTerminal: true,
	})
	t.Cleanup(svc.Stop)

	gin.SetMode(gin.TestMode)
	env.router = gin.New()
	env.notify = notify.NewQueue(time.Minute, nil)
	env.handler = NewHandler(svc, env.notify, logger.Nop())
	env.handler.RegisterRoutes(env.router, func(c *gin.Context) { c.Next() })
	return env
}

func (e *testEnv) send(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) called(call string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, c := range e.calls {
		if c == call {
			n++
		}
	}
	return n
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestSelectRouter_WithoutContract(t *testing.T) {
	env := newTestEnv(t)

	w := env.send(http.MethodPost, "/api/tools/config/router", `{"routerId":5}`)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	w = env.send(http.MethodGet, "/api/tools/config/routers", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSelectionAndSwap(t *testing.T) {
	env := newTestEnv(t)

	w := env.send(http.MethodPost, "/api/tools/config/contract", `{"contractId":1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap := decode[usecase.ConfigurationSnapshot](t, w)
	require.NotNil(t, snap.Contract)
	assert.Equal(t, "Pepe", snap.Contract.Name)
	assert.False(t, snap.CanProceed)
	assert.Equal(t, "0x5290...9EE7", snap.WalletShort)

	w = env.send(http.MethodPost, "/api/tools/swap", `{"exactAmountIn":"0.1"}`)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	w = env.send(http.MethodPost, "/api/tools/config/router", `{"routerId":5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap = decode[usecase.ConfigurationSnapshot](t, w)
	assert.True(t, snap.CanProceed)
	assert.Equal(t, domain.ApprovalApproved, snap.ERC20Approval)
	assert.Equal(t, domain.ApprovalApproved, snap.WETHApproval)

	w = env.send(http.MethodPost, "/api/tools/swap", `{"exactAmountIn":"0"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.send(http.MethodPost, "/api/tools/swap", `{"exactAmountIn":"0.1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0xfeed", decode[TxResponse](t, w).TxHash)
	assert.Equal(t, 1, env.called("POST /swap"))
}

func TestSaveSwapSettings_BackendError(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusOK, env.send(http.MethodPost, "/api/tools/config/contract", `{"contractId":1}`).Code)

	w := env.send(http.MethodPut, "/api/tools/config/swap-settings", `{"gasPrice":"5","gasLimit":"21000","slippage":1}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	list := env.notify.List()
	require.Len(t, list, 1)
	assert.Equal(t, notify.LevelError, list[0].Level)
	assert.Equal(t, "not found", list[0].Message)
}

func TestDeleteSnipe_OnlyFailed(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusOK, env.send(http.MethodPost, "/api/tools/config/contract", `{"contractId":1}`).Code)

	w := env.send(http.MethodDelete, "/api/tools/snipes/8", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[DeleteSnipeResponse](t, w).Deleted)
	assert.Zero(t, env.called("DELETE /snipes/8"))

	w = env.send(http.MethodDelete, "/api/tools/snipes/7", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[DeleteSnipeResponse](t, w).Deleted)

	w = env.send(http.MethodDelete, "/api/tools/snipes/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitSnipe_NotReadyIsNoop(t *testing.T) {
	env := newTestEnv(t)

	w := env.send(http.MethodPost, "/api/tools/snipes", `{"snipedAmountOut":"100","exactAmountIn":"0.1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[SubmitSnipeResponse](t, w)
	assert.False(t, resp.Created)
	assert.Equal(t, "list", resp.Mode)
	assert.Zero(t, env.called("POST /snipes/swap-eth-to-token"))
	assert.Empty(t, env.notify.List())
}

func TestSnipeStream(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	t.Cleanup(srv.Close)

	require.Equal(t, http.StatusOK, env.send(http.MethodPost, "/api/tools/config/contract", `{"contractId":1}`).Code)
	w := env.send(http.MethodPost, "/api/tools/snipes/tracking", `{"snipeId":7}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, 1, env.scheduler.Tick(usecase.SnipePoll))

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/tools/snipes/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first domain.SnipeUpdate
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, int64(7), first.SnipeID)
	assert.Equal(t, "Snipping", first.Label)
	assert.Equal(t, []string{"watching", "mempool"}, first.Lines)

	require.Eventually(t, func() bool { return env.handler.stream.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, 1, env.scheduler.Tick(usecase.SnipePoll))

	var next domain.SnipeUpdate
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, tradeapi.SnipeSniping, next.Status)
	assert.False(t, next.Terminal)
}
