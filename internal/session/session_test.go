package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitdesk/bitdesk/internal/api"
	"github.com/bitdesk/bitdesk/internal/credstore"
	"github.com/bitdesk/bitdesk/internal/services"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"userId": "u-1", "exp": exp.Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func openStore(t *testing.T) *credstore.Store {
	t.Helper()
	store, err := credstore.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

type backend struct {
	profileCalls atomic.Int32
	loginCalls   atomic.Int32
	token        string
}

func (b *backend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/auth/login":
			b.loginCalls.Add(1)
			w.Write([]byte(`{"token":"` + b.token + `","userId":"u-1"}`))
		case r.URL.Path == "/api/user/profile/u-1":
			b.profileCalls.Add(1)
			w.Write([]byte(`{"id":"u-1","username":"alice","btcBalance":100,"usdBalance":100000}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newManager(t *testing.T, b *backend, store *credstore.Store) (*Manager, *[]Route) {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	var routes []Route
	client := api.New(srv.URL)
	mgr := NewManager(services.NewAuthService(client), store, func(r Route) {
		routes = append(routes, r)
	})
	return mgr, &routes
}

func TestLoginAuthenticatesAndPersists(t *testing.T) {
	b := &backend{token: signedToken(t, time.Now().Add(time.Hour))}
	store := openStore(t)
	mgr, routes := newManager(t, b, store)

	err := mgr.Login(context.Background(), "alice")
	require.NoError(t, err)

	snap := mgr.Snapshot()
	assert.True(t, snap.Authenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "alice", snap.User.Username)
	assert.False(t, snap.Loading)
	assert.Equal(t, []Route{RouteDesk}, *routes)

	token, userID, ok, err := store.Credentials()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, b.token, token)
	assert.Equal(t, "u-1", userID)
}

func TestLoginFailureStoresMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"backend exploded"}`))
	}))
	t.Cleanup(srv.Close)

	store := openStore(t)
	mgr := NewManager(services.NewAuthService(api.New(srv.URL)), store, nil)

	err := mgr.Login(context.Background(), "alice")
	require.Error(t, err)

	snap := mgr.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.False(t, snap.Loading)
	assert.Equal(t, "backend exploded", snap.Err)
}

func TestRestoreWithValidToken(t *testing.T) {
	b := &backend{token: signedToken(t, time.Now().Add(time.Hour))}
	store := openStore(t)
	require.NoError(t, store.SetCredentials(b.token, "u-1"))

	mgr, routes := newManager(t, b, store)
	mgr.Restore(context.Background())

	snap := mgr.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.Equal(t, b.token, snap.Token)
	assert.Equal(t, []Route{RouteDesk}, *routes)
	assert.Equal(t, int32(1), b.profileCalls.Load())
}

func TestRestoreDiscardsExpiredTokenSilently(t *testing.T) {
	b := &backend{}
	store := openStore(t)
	expired := signedToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, store.SetCredentials(expired, "u-1"))

	mgr, routes := newManager(t, b, store)
	mgr.Restore(context.Background())

	snap := mgr.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.Empty(t, snap.Err)
	assert.Empty(t, *routes)
	// No profile fetch for a dead token.
	assert.Equal(t, int32(0), b.profileCalls.Load())

	_, _, ok, err := store.Credentials()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRestoreWithNoCredentialsIsNoop(t *testing.T) {
	b := &backend{}
	store := openStore(t)
	mgr, routes := newManager(t, b, store)

	mgr.Restore(context.Background())

	assert.False(t, mgr.Snapshot().Authenticated)
	assert.Empty(t, *routes)
}

func TestRestoreClearsCredentialsWhenProfileFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	store := openStore(t)
	require.NoError(t, store.SetCredentials(signedToken(t, time.Now().Add(time.Hour)), "u-1"))
	mgr := NewManager(services.NewAuthService(api.New(srv.URL)), store, nil)

	mgr.Restore(context.Background())

	assert.False(t, mgr.Snapshot().Authenticated)
	_, _, ok, err := store.Credentials()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogoutClearsEverything(t *testing.T) {
	b := &backend{token: signedToken(t, time.Now().Add(time.Hour))}
	store := openStore(t)
	mgr, routes := newManager(t, b, store)
	require.NoError(t, mgr.Login(context.Background(), "alice"))

	mgr.Logout()

	snap := mgr.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
	assert.Equal(t, []Route{RouteDesk, RouteLogin}, *routes)

	_, _, ok, err := store.Credentials()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRefreshUserProfileRefetches(t *testing.T) {
	b := &backend{token: signedToken(t, time.Now().Add(time.Hour))}
	store := openStore(t)
	mgr, _ := newManager(t, b, store)
	require.NoError(t, mgr.Login(context.Background(), "alice"))
	require.Equal(t, int32(1), b.profileCalls.Load())

	mgr.RefreshUserProfile(context.Background())

	snap := mgr.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.Equal(t, "u-1", snap.User.ID)
	assert.Equal(t, int32(2), b.profileCalls.Load())
}

func TestRefreshUserProfileSwallowsFailures(t *testing.T) {
	b := &backend{token: signedToken(t, time.Now().Add(time.Hour))}
	store := openStore(t)

	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)
	client := api.New(srv.URL)
	mgr := NewManager(services.NewAuthService(client), store, nil)
	require.NoError(t, mgr.Login(context.Background(), "alice"))

	// Kill the backend; the refresh must not touch auth state.
	srv.Close()
	mgr.RefreshUserProfile(context.Background())

	snap := mgr.Snapshot()
	assert.True(t, snap.Authenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "alice", snap.User.Username)
}

func TestTokenExpired(t *testing.T) {
	assert.False(t, tokenExpired(signedToken(t, time.Now().Add(time.Hour))))
	assert.True(t, tokenExpired(signedToken(t, time.Now().Add(-time.Minute))))
	assert.True(t, tokenExpired("not-a-jwt"))

	// A token with no exp claim cannot be trusted.
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": "u-1"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	assert.True(t, tokenExpired(noExp))
}
