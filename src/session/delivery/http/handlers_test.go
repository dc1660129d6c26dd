package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/console"
	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/notify"
	"github.com/MMN3003/tradedesk/src/session/repository"
	"github.com/MMN3003/tradedesk/src/session/usecase"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const backendToken = "eyJhbGciOiJIUzI1NiJ9.eyJleHAiOjQxMDI0NDQ4MDB9.sig"

type fixture struct {
	engine  *gin.Engine
	service *usecase.Service
	repo    *repository.FileTokenRepo
	meHits  *int32
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	var meHits int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			var body tradeapi.LoginRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if body.Email != "a@b.com" || body.Password != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
				return
			}
			_, _ = w.Write([]byte(`{"data":{"token":"` + backendToken + `","expiresIn":3600}}`))
		case "/auth/me":
			atomic.AddInt32(&meHits, 1)
			if r.Header.Get("Authorization") != "Bearer "+backendToken {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
				return
			}
			_, _ = w.Write([]byte(`{"data":{"email":"a@b.com","firstName":"Ada","lastName":"Lovelace"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(backend.Close)

	logg := logger.Nop()
	repo := repository.NewFileTokenRepo(filepath.Join(t.TempDir(), "token.json"), logg)
	svc := usecase.NewService(repo, logg, time.Minute)
	client, err := tradeapi.NewClient(backend.URL, tradeapi.WithTokenSource(svc), tradeapi.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	svc.SetAdapters(client)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(console.Templates())
	queue := notify.NewQueue(time.Minute, nil)
	h := NewHandler(svc, queue, logg)
	h.RegisterRoutes(r)
	console.NewHandler(svc, queue, logg).RegisterRoutes(r, h.RequireUser())

	return fixture{engine: r, service: svc, repo: repo, meHits: &meHits}
}

func (f fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestProtectedPage_RedirectsToLoginWithoutUser(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/manage/chains", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Len(t, w.Header().Values("Location"), 1)

	w = f.do(http.MethodGet, "/api/menu", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginScenario(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/auth/login", LoginRequestBody{Email: "a@b.com", Password: "secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "Ada", user.FirstName)

	stored, err := f.repo.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, backendToken, stored)
	assert.Equal(t, int32(1), atomic.LoadInt32(f.meHits))

	w = f.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/manage/dexes", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "DEXes")

	w = f.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLogin_BadCredentialsNotifies(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/auth/login", LoginRequestBody{Email: "a@b.com", Password: "nope"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Nil(t, f.service.User())

	w = f.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/auth/login", LoginRequestBody{Email: "a@b.com", Password: "secret"}).Code)

	w := f.do(http.MethodPost, "/api/auth/logout", map[string]string{})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Nil(t, f.service.User())

	stored, err := f.repo.GetToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)

	w = f.do(http.MethodGet, "/tools/swap-eth-to-tokens", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestLoginPage(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="login"`)
}
