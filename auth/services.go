package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pb40development/bim-portal-sub001/client"
	"github.com/pb40development/bim-portal-sub001/config"
	"github.com/rs/zerolog/log"
)

// Service manages the portal session: login, proactive refresh, one retry on
// rejected tokens, and logout. It is safe for concurrent use. The mutex stays
// held across the wire call on purpose, so a burst of callers with a stale
// session produces exactly one login instead of one per caller.
type Service struct {
	api      TokenAPI
	mail     string
	password string
	margin   time.Duration

	mu    sync.Mutex
	state tokenState
}

// NewService is the constructor for the session manager.
func NewService(api TokenAPI, cfg config.Config) *Service {
	return &Service{
		api:      api,
		mail:     cfg.Username,
		password: cfg.Password,
		margin:   config.TokenRefreshMargin,
	}
}

// HasCredentials reports whether a username and password are configured.
func (s *Service) HasCredentials() bool {
	return s.mail != "" && s.password != ""
}

// IsAuthenticated reports whether the service currently holds an access
// token. The token may still be rejected by the portal; this only inspects
// local state.
func (s *Service) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.accessToken != ""
}

// CurrentUserID returns the user id extracted from the access token claims,
// if the current session has one.
func (s *Service) CurrentUserID() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.userID, s.state.hasUserID
}

// InvalidateTokens drops the whole session state, forcing a full
// re-authentication on the next use.
func (s *Service) InvalidateTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = tokenState{}
}

// EnsureValidToken returns an access token that is not about to expire,
// logging in or refreshing first when needed.
func (s *Service) EnsureValidToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.validWithin(s.margin) {
		return s.state.accessToken, nil
	}
	if err := s.obtainLocked(ctx); err != nil {
		return "", err
	}
	return s.state.accessToken, nil
}

// obtainLocked acquires a fresh token pair. It prefers the cheap refresh
// call and falls back to a full login when no refresh token exists or the
// refresh is turned down. The caller must hold the mutex.
func (s *Service) obtainLocked(ctx context.Context) error {
	if s.state.refreshToken != "" {
		tokens, err := s.api.RefreshToken(ctx, s.state.refreshToken)
		if err == nil {
			s.state = newTokenState(tokens)
			log.Debug().Msg("Access token refreshed.")
			return nil
		}
		log.Debug().Err(err).Msg("Token refresh failed, falling back to login")
		if loginErr := s.loginLocked(ctx); loginErr != nil {
			var authErr *AuthenticationError
			if errors.As(loginErr, &authErr) && authErr.Reason == ReasonLoginRejected {
				return &AuthenticationError{Reason: ReasonReauthFailed, Err: authErr.Err}
			}
			return loginErr
		}
		return nil
	}
	return s.loginLocked(ctx)
}

// loginLocked performs a full login. The caller must hold the mutex.
func (s *Service) loginLocked(ctx context.Context) error {
	if !s.HasCredentials() {
		return &AuthenticationError{Reason: ReasonMissingCredentials}
	}
	tokens, err := s.api.Login(ctx, s.mail, s.password)
	if err != nil {
		log.Error().Err(err).Msg("Login request failed")
		return &AuthenticationError{Reason: ReasonLoginRejected, Err: err}
	}
	s.state = newTokenState(tokens)
	log.Info().Msg("Logged in to the portal.")
	return nil
}

// Do runs op with a valid access token. When the portal rejects the token
// mid-flight, the session is cleared and op retried exactly once with a
// freshly acquired token; a second rejection surfaces as an authentication
// error.
func (s *Service) Do(ctx context.Context, op func(ctx context.Context, token string) error) error {
	token, err := s.EnsureValidToken(ctx)
	if err != nil {
		return err
	}

	opErr := op(ctx, token)
	if !client.IsUnauthorized(opErr) {
		return opErr
	}

	log.Debug().Msg("Token was rejected by the portal, re-authenticating once")
	s.InvalidateTokens()
	token, err = s.EnsureValidToken(ctx)
	if err != nil {
		return err
	}

	opErr = op(ctx, token)
	if client.IsUnauthorized(opErr) {
		return &AuthenticationError{Reason: ReasonUnauthorized, Err: opErr}
	}
	return opErr
}

// Logout ends the session. Local state is always cleared; the remote call is
// best effort and a failure there only produces a warning. Calling Logout
// without a session is a no-op.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	token := s.state.accessToken
	s.state = tokenState{}
	s.mu.Unlock()

	if token == "" {
		return nil
	}
	if err := s.api.Logout(ctx, token); err != nil {
		log.Warn().Err(err).Msg("Remote logout failed; local session cleared anyway.")
	} else {
		log.Info().Msg("Logged out from the portal.")
	}
	return nil
}
