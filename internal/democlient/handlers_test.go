package democlient_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/identity/core/cookie"
	"github.com/dmitrymomot/identity/internal/democlient"
)

const testSessionSecret = "test-session-secret-32-bytes-long!!"

// fakeProvider stands in for the authorization server's token and userinfo
// endpoints.
type fakeProvider struct {
	server        *http.ServeMux
	tokenCalls    atomic.Int64
	userinfoCalls atomic.Int64

	tokenStatus    int
	tokenBody      any
	userinfoStatus int
	userinfoBody   any

	lastTokenForm url.Values
}

func newFakeProvider() *fakeProvider {
	p := &fakeProvider{
		tokenStatus:    http.StatusOK,
		tokenBody:      map[string]any{"access_token": "at-123", "token_type": "Bearer", "expires_in": 3600},
		userinfoStatus: http.StatusOK,
		userinfoBody:   map[string]string{"sub": "user_001", "username": "demo"},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		p.tokenCalls.Add(1)
		_ = r.ParseForm()
		p.lastTokenForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(p.tokenStatus)
		_ = json.NewEncoder(w).Encode(p.tokenBody)
	})
	mux.HandleFunc("/oauth/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		p.userinfoCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer at-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(p.userinfoStatus)
		_ = json.NewEncoder(w).Encode(p.userinfoBody)
	})
	p.server = mux
	return p
}

type clientEnv struct {
	router   http.Handler
	provider *fakeProvider
}

func newClientEnv(t *testing.T) *clientEnv {
	t.Helper()

	provider := newFakeProvider()
	srv := httptest.NewServer(provider.server)
	t.Cleanup(srv.Close)

	cfg := democlient.Config{
		Host:          "127.0.0.1",
		Port:          8081,
		ClientID:      "demo-client",
		ClientSecret:  "s3cret",
		RedirectURI:   "http://127.0.0.1:8081/callback",
		AuthorizeURL:  srv.URL + "/oauth/authorize",
		TokenURL:      srv.URL + "/oauth/token",
		UserinfoURL:   srv.URL + "/oauth/userinfo",
		Scope:         "profile",
		SessionSecret: testSessionSecret,
	}

	cookies, err := cookie.New([]string{testSessionSecret})
	require.NoError(t, err)

	h := democlient.NewHandler(cfg, cookies, srv.Client(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	return &clientEnv{
		router:   democlient.NewRouter(h, slog.New(slog.NewTextHandler(io.Discard, nil))),
		provider: provider,
	}
}

// startLogin runs GET /login and returns the state parameter plus the state
// cookie the browser would hold.
func (e *clientEnv) startLogin(t *testing.T) (string, *http.Cookie) {
	t.Helper()

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	var stateCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "oauth_state" {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie, "login must set the state cookie")
	return state, stateCookie
}

func (e *clientEnv) callback(t *testing.T, query string, stateCookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/callback?"+query, nil)
	if stateCookie != nil {
		req.AddCookie(stateCookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	t.Parallel()
	env := newClientEnv(t)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	q := loc.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "demo-client", q.Get("client_id"))
	assert.Equal(t, "http://127.0.0.1:8081/callback", q.Get("redirect_uri"))
	assert.Equal(t, "profile", q.Get("scope"))
	assert.NotEmpty(t, q.Get("state"))

	// The signed cookie must verify and carry the same state.
	state, stateCookie := env.startLogin(t)
	verifier, err := cookie.New([]string{testSessionSecret})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/callback", nil)
	req.AddCookie(stateCookie)
	stored, err := verifier.GetSigned(req, "oauth_state")
	require.NoError(t, err)
	assert.Equal(t, state, stored)
}

func TestLoginStatesAreUnique(t *testing.T) {
	t.Parallel()
	env := newClientEnv(t)

	first, _ := env.startLogin(t)
	second, _ := env.startLogin(t)
	assert.NotEqual(t, first, second)
}

func TestCallback(t *testing.T) {
	t.Parallel()

	t.Run("completes the flow", func(t *testing.T) {
		t.Parallel()
		env := newClientEnv(t)

		state, stateCookie := env.startLogin(t)
		rec := env.callback(t, url.Values{"code": {"code-abc"}, "state": {state}}.Encode(), stateCookie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), "demo")
		assert.Contains(t, rec.Body.String(), "user_001")

		form := env.provider.lastTokenForm
		assert.Equal(t, "authorization_code", form.Get("grant_type"))
		assert.Equal(t, "code-abc", form.Get("code"))
		assert.Equal(t, "http://127.0.0.1:8081/callback", form.Get("redirect_uri"))
		assert.Equal(t, "demo-client", form.Get("client_id"))
		assert.Equal(t, "s3cret", form.Get("client_secret"))
	})

	t.Run("state mismatch aborts before the exchange", func(t *testing.T) {
		t.Parallel()
		env := newClientEnv(t)

		_, stateCookie := env.startLogin(t)
		rec := env.callback(t, url.Values{"code": {"code-abc"}, "state": {"attacker-state"}}.Encode(), stateCookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int64(0), env.provider.tokenCalls.Load())
	})

	t.Run("missing state cookie aborts before the exchange", func(t *testing.T) {
		t.Parallel()
		env := newClientEnv(t)

		rec := env.callback(t, url.Values{"code": {"code-abc"}, "state": {"whatever"}}.Encode(), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int64(0), env.provider.tokenCalls.Load())
	})

	t.Run("tampered state cookie aborts before the exchange", func(t *testing.T) {
		t.Parallel()
		env := newClientEnv(t)

		state, stateCookie := env.startLogin(t)
		stateCookie.Value = stateCookie.Value + "x"
		rec := env.callback(t, url.Values{"code": {"code-abc"}, "state": {state}}.Encode(), stateCookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int64(0), env.provider.tokenCalls.Load())
	})

	t.Run("provider denial renders an error page", func(t *testing.T) {
		t.Parallel()
		env := newClientEnv(t)

		_, stateCookie := env.startLogin(t)
		rec := env.callback(t, url.Values{"error": {"access_denied"}, "state": {"irrelevant"}}.Encode(), stateCookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "access_denied")
		assert.Equal(t, int64(0), env.provider.tokenCalls.Load())
	})

	t.Run("missing code", func(t *testing.T) {
		t.Parallel()
		env := newClientEnv(t)

		state, stateCookie := env.startLogin(t)
		rec := env.callback(t, url.Values{"state": {state}}.Encode(), stateCookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int64(0), env.provider.tokenCalls.Load())
	})

	t.Run("rejected code surfaces the provider error", func(t *testing.T) {
		t.Parallel()
		env := newClientEnv(t)
		env.provider.tokenStatus = http.StatusBadRequest
		env.provider.tokenBody = map[string]string{"error": "invalid_grant"}

		state, stateCookie := env.startLogin(t)
		rec := env.callback(t, url.Values{"code": {"stale-code"}, "state": {state}}.Encode(), stateCookie)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid_grant")
	})

	t.Run("userinfo failure renders an error page", func(t *testing.T) {
		t.Parallel()
		env := newClientEnv(t)
		env.provider.userinfoStatus = http.StatusInternalServerError
		env.provider.userinfoBody = map[string]string{}

		state, stateCookie := env.startLogin(t)
		rec := env.callback(t, url.Values{"code": {"code-abc"}, "state": {state}}.Encode(), stateCookie)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestHome(t *testing.T) {
	t.Parallel()
	env := newClientEnv(t)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/login")
}
