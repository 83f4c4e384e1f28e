package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptonav/cryptonav/internal/clients/cryptonav"
	"github.com/cryptonav/cryptonav/internal/common"
)

// newStubBackend fakes the CryptoNav API auth endpoints. Only "alice" with
// "correct-pw" signs in; the issued token is "tok123".
func newStubBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/users/login", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("username") == "alice" && q.Get("password") == "correct-pw" {
			json.NewEncoder(w).Encode(map[string]string{
				"access_token": "tok123",
				"token_type":   "bearer",
			})
			return
		}
		if q.Get("username") == "bob" && q.Get("password") == "pw" {
			json.NewEncoder(w).Encode(map[string]string{
				"access_token": "tok-bob",
				"token_type":   "bearer",
			})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
	})

	mux.HandleFunc("/users/register", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("username") == "taken" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Username or email already registered"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 2, "username": q.Get("username"), "email": q.Get("email"),
		})
	})

	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer tok123":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id": 1, "username": "alice", "email": "alice@example.com",
			})
		case "Bearer tok-bob":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id": 2, "username": "bob", "email": "bob@x.com",
			})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestStore(t *testing.T, backend *httptest.Server) (*Store, *FileTokenStore) {
	t.Helper()
	client := cryptonav.NewClient(cryptonav.WithBaseURL(backend.URL))
	tokens := NewFileTokenStore(t.TempDir())
	return NewStore(client, tokens, common.NewSilentLogger()), tokens
}

func TestLogin_Success(t *testing.T) {
	backend := newStubBackend(t)
	store, tokens := newTestStore(t, backend)

	snapshot, err := store.Login(context.Background(), "alice", "correct-pw")
	require.NoError(t, err)

	assert.Equal(t, "tok123", snapshot.Token)
	require.NotNil(t, snapshot.User)
	assert.Equal(t, "alice", snapshot.User.Username)
	assert.Equal(t, 1, snapshot.User.ID)

	// Write-through: persisted slot matches in-memory token.
	persisted, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok123", persisted)

	assert.True(t, store.Authenticated())
	assert.Equal(t, "Bearer tok123", store.CurrentAuthHeader())
}

func TestLogin_FailureKeepsPriorState(t *testing.T) {
	backend := newStubBackend(t)
	store, tokens := newTestStore(t, backend)

	_, err := store.Login(context.Background(), "alice", "correct-pw")
	require.NoError(t, err)

	_, err = store.Login(context.Background(), "alice", "wrong-pw")
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Incorrect username or password", authErr.Message)

	// Prior session untouched, persisted slot untouched.
	assert.Equal(t, "tok123", store.Current().Token)
	persisted, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok123", persisted)
}

func TestLogin_FailureFromAnonymousStaysAnonymous(t *testing.T) {
	backend := newStubBackend(t)
	store, tokens := newTestStore(t, backend)

	_, err := store.Login(context.Background(), "alice", "wrong-pw")
	require.Error(t, err)

	assert.False(t, store.Authenticated())
	assert.Equal(t, "", store.CurrentAuthHeader())
	persisted, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "", persisted)
}

func TestLogin_SuccessReplacesToken(t *testing.T) {
	backend := newStubBackend(t)
	store, tokens := newTestStore(t, backend)

	_, err := store.Login(context.Background(), "alice", "correct-pw")
	require.NoError(t, err)
	_, err = store.Login(context.Background(), "bob", "pw")
	require.NoError(t, err)

	assert.Equal(t, "tok-bob", store.Current().Token)
	persisted, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-bob", persisted)
}

func TestSignOut(t *testing.T) {
	backend := newStubBackend(t)
	store, tokens := newTestStore(t, backend)

	_, err := store.Login(context.Background(), "alice", "correct-pw")
	require.NoError(t, err)

	store.SignOut()

	assert.False(t, store.Authenticated())
	assert.Nil(t, store.Current().User)
	persisted, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "", persisted)

	// Signing out while anonymous is a no-op.
	store.SignOut()
	assert.False(t, store.Authenticated())
}

func TestRegister_DoesNotAuthenticate(t *testing.T) {
	backend := newStubBackend(t)
	store, _ := newTestStore(t, backend)

	require.NoError(t, store.Register(context.Background(), "bob", "bob@x.com", "pw"))
	assert.False(t, store.Authenticated(), "register must not establish a session")

	// The explicit follow-up login authenticates.
	snapshot, err := store.Login(context.Background(), "bob", "pw")
	require.NoError(t, err)
	assert.True(t, snapshot.Authenticated())
	require.NotNil(t, snapshot.User)
	assert.Equal(t, "bob", snapshot.User.Username)
}

func TestRegister_Duplicate(t *testing.T) {
	backend := newStubBackend(t)
	store, _ := newTestStore(t, backend)

	err := store.Register(context.Background(), "taken", "taken@x.com", "pw")
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Username or email already registered", authErr.Message)
}

func TestStartup_PersistedTokenRestoresSession(t *testing.T) {
	backend := newStubBackend(t)
	client := cryptonav.NewClient(cryptonav.WithBaseURL(backend.URL))
	tokens := NewFileTokenStore(t.TempDir())
	require.NoError(t, tokens.Save("tok123"))

	store := NewStore(client, tokens, common.NewSilentLogger())

	assert.True(t, store.Authenticated())
	assert.Equal(t, "tok123", store.Current().Token)
}

func TestStartup_NoPersistedTokenIsAnonymous(t *testing.T) {
	backend := newStubBackend(t)
	store, _ := newTestStore(t, backend)

	assert.False(t, store.Authenticated())
	assert.Nil(t, store.Current().User)
}

func TestStartup_ExpiredJWTDiscarded(t *testing.T) {
	expired := signedJWT(t, "alice", time.Now().Add(-time.Hour))

	backend := newStubBackend(t)
	client := cryptonav.NewClient(cryptonav.WithBaseURL(backend.URL))
	tokens := NewFileTokenStore(t.TempDir())
	require.NoError(t, tokens.Save(expired))

	store := NewStore(client, tokens, common.NewSilentLogger())

	assert.False(t, store.Authenticated())
	persisted, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "", persisted, "expired token removed from the slot")
}

func TestStartup_ValidJWTKeptWithSubject(t *testing.T) {
	token := signedJWT(t, "alice", time.Now().Add(time.Hour))

	backend := newStubBackend(t)
	client := cryptonav.NewClient(cryptonav.WithBaseURL(backend.URL))
	tokens := NewFileTokenStore(t.TempDir())
	require.NoError(t, tokens.Save(token))

	store := NewStore(client, tokens, common.NewSilentLogger())

	require.True(t, store.Authenticated())
	require.NotNil(t, store.Current().User)
	assert.Equal(t, "alice", store.Current().User.Username)
}

func TestUnauthorizedHook_ForcesSignOut(t *testing.T) {
	backend := newStubBackend(t)
	client := cryptonav.NewClient(cryptonav.WithBaseURL(backend.URL))
	tokens := NewFileTokenStore(t.TempDir())
	require.NoError(t, tokens.Save("stale-token"))

	store := NewStore(client, tokens, common.NewSilentLogger())
	client.SetUnauthorizedHook(store.SignOut)

	require.True(t, store.Authenticated())

	// The backend rejects the stale token; the hook must clear the session.
	_, err := client.CurrentUser(context.Background(), "stale-token")
	require.Error(t, err)

	assert.False(t, store.Authenticated())
	persisted, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "", persisted)
}

func TestSubscribe_NotifiedOnTransitions(t *testing.T) {
	backend := newStubBackend(t)
	store, _ := newTestStore(t, backend)

	var states []bool
	store.Subscribe(func(s Session) {
		states = append(states, s.Authenticated())
	})

	_, err := store.Login(context.Background(), "alice", "correct-pw")
	require.NoError(t, err)
	store.SignOut()

	require.NotEmpty(t, states)
	assert.True(t, states[0], "first notification is the sign-in")
	assert.False(t, states[len(states)-1], "last notification is the sign-out")
}

// signedJWT builds an HS256 token with a sub and exp claim.
func signedJWT(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}
