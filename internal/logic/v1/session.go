// Package v1 holds the business logic of the invoice frontend: the session
// lifecycle (login, logout, token refresh, current-user projection) and the
// invoice operations built on top of it.
//
// Every operation converts remote-call failures into a result envelope at
// the point of the call; nothing from this package throws past the handler
// boundary. Handlers and the session gate branch on Success/ShouldRedirect
// only.
package v1

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/invoicedesk/frontend/internal/core/domain"
)

// Generic user-facing fallback messages. Remote-provided messages take
// precedence when present.
const (
	msgLoginOK       = "Login successful"
	msgLoginFailed   = "Login failed"
	msgRegisterOK    = "Registration successful"
	msgRegisterFail  = "Registration failed"
	msgGenericError  = "Something went wrong"
	msgNoRefresh     = "No refresh token found"
	msgSessionDead   = "Session expired"
	msgRefreshFailed = "Failed to refresh token"
)

// ActionResult is the uniform outcome envelope for auth operations.
// ShouldRedirect tells the caller the session is conclusively dead and the
// user belongs on the login page.
type ActionResult struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ShouldRedirect bool   `json:"shouldRedirect,omitempty"`
}

// RefreshResult is the outcome of a refresh attempt. AccessToken is set
// only on success.
type RefreshResult struct {
	Success        bool
	Message        string
	ShouldRedirect bool
	AccessToken    string
}

// SessionService implements the session lifecycle. It owns every mutation
// of the token store outside the gate: login and refresh are the only
// writers of the access token, login the only writer of the refresh token.
type SessionService struct {
	auth domain.AuthAPI
}

// NewSessionService creates a SessionService backed by the given remote
// auth API.
func NewSessionService(auth domain.AuthAPI) *SessionService {
	return &SessionService{auth: auth}
}

// Login exchanges credentials for a token pair and, on success, persists
// both tokens with their fixed TTLs. On rejection the remote message is
// surfaced and the store is left untouched; a network-level failure is
// indistinguishable from a rejection to the caller.
func (s *SessionService) Login(ctx context.Context, store domain.TokenStore, username, password string) ActionResult {
	logger := zerolog.Ctx(ctx)

	resp, err := s.auth.Login(ctx, domain.LoginRequest{Username: username, Password: password})
	if err != nil {
		var remoteErr *domain.RemoteError
		if errors.As(err, &remoteErr) {
			msg := remoteErr.Message
			if msg == "" {
				msg = msgLoginFailed
			}
			logger.Warn().Int("status", remoteErr.StatusCode).Str("username", username).Msg("Login rejected")
			return ActionResult{Success: false, Message: msg}
		}
		logger.Error().Err(err).Msg("Login call failed")
		return ActionResult{Success: false, Message: msgGenericError}
	}

	store.Set(domain.AccessTokenCookie, resp.AccessToken, domain.AccessTokenTTL)
	store.Set(domain.RefreshTokenCookie, resp.RefreshToken, domain.RefreshTokenTTL)

	msg := resp.Message
	if msg == "" {
		msg = msgLoginOK
	}
	logger.Info().Str("username", username).Msg("Login successful")
	return ActionResult{Success: true, Message: msg}
}

// Register validates the password locally, then creates the account
// remotely. No tokens are touched; the caller sends the user to the login
// page on success.
func (s *SessionService) Register(ctx context.Context, username, password, confirmPassword string) ActionResult {
	logger := zerolog.Ctx(ctx)

	if msg := ValidatePassword(password); msg != "" {
		return ActionResult{Success: false, Message: msg}
	}
	if password != confirmPassword {
		return ActionResult{Success: false, Message: "Passwords do not match"}
	}

	resp, err := s.auth.Register(ctx, domain.RegisterRequest{Username: username, Password: password})
	if err != nil {
		var remoteErr *domain.RemoteError
		if errors.As(err, &remoteErr) {
			msg := remoteErr.Message
			if msg == "" {
				msg = msgRegisterFail
			}
			logger.Warn().Int("status", remoteErr.StatusCode).Str("username", username).Msg("Registration rejected")
			return ActionResult{Success: false, Message: msg}
		}
		logger.Error().Err(err).Msg("Register call failed")
		return ActionResult{Success: false, Message: msgGenericError}
	}

	msg := resp.Message
	if msg == "" {
		msg = msgRegisterOK
	}
	logger.Info().Str("username", username).Msg("Registration successful")
	return ActionResult{Success: true, Message: msg}
}

// Logout unconditionally clears both tokens. Clearing an already-empty
// store is not an error, so Logout always succeeds and is idempotent.
func (s *SessionService) Logout(store domain.TokenStore) ActionResult {
	store.Delete(domain.AccessTokenCookie)
	store.Delete(domain.RefreshTokenCookie)
	return ActionResult{Success: true, Message: "Logged out"}
}

// Refresh exchanges the stored refresh token for a new access token.
// Exactly one remote call is made per invocation; there is no retry loop
// and no coalescing of concurrent callers.
//
//   - No refresh token stored: failure, no network call.
//   - Remote 2xx: the new access token is stored (fixed 900s TTL) and
//     returned; the refresh token is left untouched.
//   - Remote 401/403: conclusive. Both tokens are deleted and
//     ShouldRedirect is set.
//   - Anything else (5xx, network failure, malformed body): transient.
//     The store is left exactly as it was.
func (s *SessionService) Refresh(ctx context.Context, store domain.TokenStore) RefreshResult {
	logger := zerolog.Ctx(ctx)

	refreshToken, ok := store.Get(domain.RefreshTokenCookie)
	if !ok {
		return RefreshResult{Success: false, Message: msgNoRefresh}
	}

	resp, err := s.auth.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			store.Delete(domain.AccessTokenCookie)
			store.Delete(domain.RefreshTokenCookie)
			logger.Info().Msg("Refresh token rejected, session cleared")
			return RefreshResult{Success: false, Message: msgSessionDead, ShouldRedirect: true}
		}
		logger.Warn().Err(err).Msg("Refresh failed transiently")
		return RefreshResult{Success: false, Message: msgRefreshFailed}
	}

	store.Set(domain.AccessTokenCookie, resp.AccessToken, domain.AccessTokenTTL)
	logger.Debug().Msg("Access token refreshed")
	return RefreshResult{Success: true, AccessToken: resp.AccessToken}
}

// accessTokenClaims is the payload shape the remote API embeds in access
// tokens. Only fields the UI displays are mapped.
type accessTokenClaims struct {
	jwt.RegisteredClaims
	UserID    json.Number `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	AvatarURL string      `json:"avatarUrl"`
}

// CurrentUser decodes the stored access token into a display-only user
// projection. The token signature is deliberately NOT verified here: the
// projection feeds greetings and avatars, never authorization. An absent
// or malformed token yields (nil, false) rather than an error.
func (s *SessionService) CurrentUser(store domain.TokenStore) (*domain.DecodedUser, bool) {
	raw, ok := store.Get(domain.AccessTokenCookie)
	if !ok {
		return nil, false
	}

	var claims accessTokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, false
	}

	return &domain.DecodedUser{
		ID:        claims.UserID.String(),
		Username:  claims.Username,
		Email:     claims.Email,
		AvatarURL: claims.AvatarURL,
	}, true
}
