package tradeapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticToken(tok string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) { return tok, nil })
}

func newTestClient(t *testing.T, h http.HandlerFunc, ts TokenSource) (*Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/", WithTokenSource(ts), WithLogger(zerolog.Nop()), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c, &hits
}

func writeData(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": v})
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)
}

func TestGetChains_UnwrapsEnvelopeAndSendsBearer(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/chains", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		writeData(w, []Chain{{ID: 1, ChainID: "1", Name: "Ethereum"}})
	}, staticToken("tok-1"))

	chains, err := c.GetChains(context.Background())
	require.NoError(t, err)
	require.Len(t, chains, 1)
	assert.Equal(t, "Ethereum", chains[0].Name)
}

func TestAuthenticatedCall_WithoutTokenNeverDispatches(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []Chain{})
	}, staticToken(""))

	_, err := c.GetChains(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthenticated(err))
	assert.Equal(t, "Not authenticated", err.Error())
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestTokenSourceError_IsUnauthenticated(t *testing.T) {
	boom := errors.New("store unavailable")
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, TokenFunc(func(context.Context) (string, error) {
		return "", boom
	}))

	_, err := c.GetWallet(context.Background())
	assert.True(t, IsUnauthenticated(err))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestLogin_SendsNoAuthorization(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		var body LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body.Email)
		assert.Equal(t, "secret", body.Password)
		writeData(w, TokenData{Token: "jwt", ExpiresIn: 3600})
	}, staticToken(""))

	tok, err := c.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", tok)
}

func TestErrorMessage_TakenFromServerPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string message", `{"message":"chain already exists"}`, "chain already exists"},
		{"list message", `{"message":["name must be shorter","address is invalid"]}`, "name must be shorter, address is invalid"},
		{"no message", `oops`, "http error 400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, tt.body)
			}, staticToken("tok"))

			_, err := c.CreateChain(context.Background(), ChainPayload{})
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, KindTransport, apiErr.Kind)
			assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		})
	}
}

func TestTransportFailure_UsesUnderlyingMessage(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:1", WithTokenSource(staticToken("tok")), WithLogger(zerolog.Nop()),
		WithTimeout(500*time.Millisecond))
	require.NoError(t, err)

	_, err = c.GetDexes(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
	assert.NotEmpty(t, err.Error())
}

func TestCreateChain_OmitsNilFields(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"chainId": "1", "name": "Ethereum"}, body)
		writeData(w, Chain{ID: 7, ChainID: "1", Name: "Ethereum"})
	}, staticToken("tok"))

	id, name := "1", "Ethereum"
	chain, err := c.CreateChain(context.Background(), ChainPayload{ChainID: &id, Name: &name})
	require.NoError(t, err)
	require.NotNil(t, chain)
	assert.Equal(t, int64(7), chain.ID)
}

func TestNullData_DecodesToZeroValue(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":null}`)
	}, staticToken("tok"))

	chain, err := c.CreateChain(context.Background(), ChainPayload{})
	require.NoError(t, err)
	assert.Nil(t, chain)

	ok, err := c.UpdateChain(context.Background(), 3, ChainPayload{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQueryParameters(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dex-routers/get-by-chain":
			assert.Equal(t, "chainId=56", r.URL.RawQuery)
			writeData(w, []DEXRouter{{ID: 2}})
		case "/wallet/erc20-balance":
			assert.Equal(t, "contractId=9", r.URL.RawQuery)
			writeData(w, WalletBalance{Balance: "1.5"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}, staticToken("tok"))

	routers, err := c.GetDexRoutersByChainID(context.Background(), "56")
	require.NoError(t, err)
	assert.Len(t, routers, 1)

	bal, err := c.GetErc20Balance(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "1.5", bal.Balance)
}

func TestApprovalBodies(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch r.URL.Path {
		case "/wallet/check-weth-approval":
			assert.Equal(t, map[string]any{"dexRouterId": float64(4)}, body)
		case "/wallet/check-approval":
			assert.Equal(t, map[string]any{"contractId": float64(3), "dexRouterId": float64(4)}, body)
		}
		writeData(w, ApprovalStatus{Approved: true})
	}, staticToken("tok"))

	weth, err := c.CheckWETHApproval(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, weth.Approved)

	erc20, err := c.CheckApproval(context.Background(), 3, 4)
	require.NoError(t, err)
	assert.True(t, erc20.Approved)
}

func TestDo_FoldsIntoResult(t *testing.T) {
	ok := Do(context.Background(), func(context.Context) (int, error) { return 5, nil })
	assert.True(t, ok.OK)
	assert.Equal(t, 5, ok.Value)
	assert.Nil(t, ok.Err)

	failed := Do(context.Background(), func(context.Context) (int, error) { return 0, Rejected("Failed to delete chain %s", "x") })
	assert.False(t, failed.OK)
	require.NotNil(t, failed.Err)
	assert.Equal(t, KindRejected, failed.Err.Kind)
	assert.Equal(t, "Failed to delete chain x", failed.Err.Message)

	foreign := Do(context.Background(), func(context.Context) (int, error) { return 0, errors.New("plain") })
	assert.Equal(t, KindTransport, foreign.Err.Kind)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/chains/:id", routeLabel("/chains/12"))
	assert.Equal(t, "/snipes/data/:id", routeLabel("/snipes/data/3"))
	assert.Equal(t, "/dex-routers/get-by-chain", routeLabel("/dex-routers/get-by-chain"))
}

type recordingObserver struct {
	calls []string
}

func (o *recordingObserver) ObserveBackend(method, path, outcome string, _ time.Duration) {
	o.calls = append(o.calls, method+" "+path+" "+outcome)
}

func TestObserverSeesEachRoundTrip(t *testing.T) {
	obs := &recordingObserver{}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(w, true)
	}, staticToken("tok"))
	c.Observer = obs

	_, err := c.DeleteSnipe(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"DELETE /snipes/:id ok"}, obs.calls)
}
