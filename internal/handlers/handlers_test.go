package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/GenaM19021977/teplomarket/internal/backend"
	"github.com/GenaM19021977/teplomarket/internal/cart"
	"github.com/GenaM19021977/teplomarket/internal/catalog"
	"github.com/GenaM19021977/teplomarket/internal/currency"
	"github.com/GenaM19021977/teplomarket/internal/events"
	"github.com/GenaM19021977/teplomarket/internal/favorites"
	"github.com/GenaM19021977/teplomarket/internal/kvstore"
	"github.com/GenaM19021977/teplomarket/internal/session"
)

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	KV        *kvstore.Memory
	Bus       *events.Bus
	Session   *session.Store
	Cart      *cart.Store
	Favorites *favorites.Store
	Catalog   *catalog.Cache
	Backend   *backend.Client
	Pricing   *Pricing
	Selection *currency.Selection
}

// newTestEnv wires the whole state layer over an in-memory profile
// store and the given fake backend.
func newTestEnv(t *testing.T, backendHandler http.Handler) *testEnv {
	t.Helper()

	if backendHandler == nil {
		backendHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
	}
	srv := httptest.NewServer(backendHandler)
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv := kvstore.NewMemory()
	bus := events.NewBus()
	sess := session.New(kv, log)
	api := backend.NewClient(srv.URL, sess, sess.Clear)
	sel := currency.NewSelection(kv, bus)
	require.True(t, sel.Set("BYN"))

	env := &testEnv{
		T:         t,
		E:         echo.New(),
		KV:        kv,
		Bus:       bus,
		Session:   sess,
		Cart:      cart.New(kv, bus, sess, log),
		Favorites: favorites.New(kv, bus, sess, log),
		Catalog:   catalog.New(api, nil, bus, log, time.Hour),
		Backend:   api,
		Pricing:   &Pricing{Rates: currency.Fallback(), Selection: sel},
		Selection: sel,
	}
	return env
}

func (env *testEnv) signIn(userID uint) {
	env.T.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
	}).SignedString([]byte("test-secret"))
	require.NoError(env.T, err)
	env.Session.SetTokens(raw, "test-refresh")
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}
