// Package session owns the single authentication session of the running
// dashboard: the access token, the profile it belongs to, and the persisted
// token slot that mirrors the in-memory token.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cryptonav/cryptonav/internal/clients/cryptonav"
	"github.com/cryptonav/cryptonav/internal/common"
	"github.com/cryptonav/cryptonav/internal/models"
)

// Session is a snapshot of authentication state. Anonymous when Token is
// empty. User may be nil while Token is set (profile fetch pending or failed);
// the converse never holds.
type Session struct {
	Token string
	User  *models.User
}

// Authenticated reports whether the snapshot carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// APIClient is the slice of the CryptoNav client the store needs.
type APIClient interface {
	Login(ctx context.Context, username, password string) (*models.TokenResponse, error)
	Register(ctx context.Context, username, email, password string) (*models.RegisterResponse, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// Store is the single source of truth for "is the user authenticated, and as
// whom". All mutations commit under one mutex and write through to the token
// store, so the persisted slot and the in-memory token never diverge.
type Store struct {
	mu      sync.Mutex
	session Session
	subs    []func(Session)

	api    APIClient
	tokens TokenStore
	logger *common.Logger
}

// NewStore creates a session store, seeding state from the persisted token
// slot. A stored token is trusted without a server round-trip, with one
// exception: a well-formed JWT whose expiry has already elapsed is discarded,
// since it can only produce a forced sign-out on first use.
func NewStore(api APIClient, tokens TokenStore, logger *common.Logger) *Store {
	s := &Store{
		api:    api,
		tokens: tokens,
		logger: logger,
	}

	token, err := tokens.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load persisted session token")
		return s
	}
	if token == "" {
		return s
	}

	if expired(token) {
		logger.Info().Msg("Discarding expired persisted session token")
		if err := tokens.Clear(); err != nil {
			logger.Warn().Err(err).Msg("Failed to clear expired session token")
		}
		return s
	}

	s.session.Token = token
	if username := subjectOf(token); username != "" {
		s.session.User = &models.User{Username: username}
	}
	logger.Info().Msg("Restored persisted session")
	return s
}

// Current returns a snapshot of the session.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Authenticated reports whether a session token is held.
func (s *Store) Authenticated() bool {
	return s.Current().Authenticated()
}

// CurrentAuthHeader derives the Authorization header value for API calls, or
// "" when anonymous.
func (s *Store) CurrentAuthHeader() string {
	cur := s.Current()
	if !cur.Authenticated() {
		return ""
	}
	return "Bearer " + cur.Token
}

// Subscribe registers a callback invoked after every session transition.
func (s *Store) Subscribe(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify(snapshot Session) {
	s.mu.Lock()
	subs := make([]func(Session), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}

// Login authenticates against the backend and, on success, replaces the
// session token and persists it before the call returns. Overlapping calls
// run their network phase concurrently but commit serially under the store
// mutex; a failed call never writes, so the retained token is always that of
// the most recent successful commit and prior state survives every failure.
func (s *Store) Login(ctx context.Context, username, password string) (Session, error) {
	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		return s.Current(), loginError(err)
	}

	s.mu.Lock()
	if err := s.tokens.Save(resp.AccessToken); err != nil {
		s.mu.Unlock()
		s.logger.Error().Err(err).Msg("Failed to persist session token")
		return s.Current(), authErr("Sign-in succeeded but the session could not be saved", err)
	}
	s.session = Session{
		Token: resp.AccessToken,
		User:  &models.User{Username: username},
	}
	snapshot := s.session
	s.mu.Unlock()

	s.logger.Info().Str("username", username).Msg("Signed in")
	s.notify(snapshot)

	// Best-effort profile fetch; the session is already established and a
	// failure here only leaves User at the form-provided username.
	if user, err := s.api.CurrentUser(ctx, resp.AccessToken); err == nil {
		s.mu.Lock()
		// Another login may have replaced the token while we were fetching.
		if s.session.Token == resp.AccessToken {
			s.session.User = user
			snapshot = s.session
		}
		s.mu.Unlock()
	} else {
		s.logger.Warn().Err(err).Msg("Profile fetch after sign-in failed")
	}

	return snapshot, nil
}

// Register creates an account. It deliberately does not establish a session;
// the backend's contract requires a follow-up Login.
func (s *Store) Register(ctx context.Context, username, email, password string) error {
	if _, err := s.api.Register(ctx, username, email, password); err != nil {
		var apiErr *cryptonav.APIError
		if errors.As(err, &apiErr) {
			return authErr(apiErr.Message, err)
		}
		return authErr("Unable to reach the server", err)
	}
	s.logger.Info().Str("username", username).Msg("Account registered")
	return nil
}

// SignOut clears the session and removes the persisted token. It always
// succeeds: a failed file removal is logged, and the in-memory state clears
// regardless.
func (s *Store) SignOut() {
	s.mu.Lock()
	wasAuthenticated := s.session.Authenticated()
	s.session = Session{}
	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to remove persisted session token")
	}
	s.mu.Unlock()

	if wasAuthenticated {
		s.logger.Info().Msg("Signed out")
		s.notify(Session{})
	}
}

// loginError maps a client failure to a form-displayable AuthError.
func loginError(err error) *AuthError {
	var apiErr *cryptonav.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsUnauthorized() {
			return authErr("Incorrect username or password", err)
		}
		return authErr(apiErr.Message, err)
	}
	return authErr("Unable to reach the server", err)
}

// expired reports whether token is a well-formed JWT with an elapsed exp
// claim. Opaque tokens and JWTs without exp are never considered expired
// here; the backend remains the authority on their validity.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// subjectOf extracts the sub claim from a JWT for display purposes. The
// signature is not verified; nothing security-relevant hangs off this value.
func subjectOf(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

// EnsureUser returns the session's user profile, fetching it from the backend
// when only the token (or a claims-derived placeholder) is held. The fetched
// profile is committed to the session so later calls are free.
func (s *Store) EnsureUser(ctx context.Context) (*models.User, error) {
	cur := s.Current()
	if !cur.Authenticated() {
		return nil, authErr("Not signed in", nil)
	}
	if cur.User != nil && cur.User.ID > 0 {
		return cur.User, nil
	}

	user, err := s.api.CurrentUser(ctx, cur.Token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.session.Token == cur.Token {
		s.session.User = user
	}
	s.mu.Unlock()
	return user, nil
}
