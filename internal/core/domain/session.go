package domain

import "time"

// Cookie names under which the two session tokens are persisted in the
// browser's cookie jar.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Token lifetimes are fixed constants. The remote API reports its own expiry
// inside the tokens; the cookie TTLs deliberately do not track it.
const (
	AccessTokenTTL  = 900 * time.Second
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenStore is the contract for the per-client token storage backing a
// session. The production implementation writes HttpOnly cookies; tests
// inject an in-memory fake. Implementations live in internal/core (Core
// layer); the Logic layer depends on this interface only.
type TokenStore interface {
	// Set persists a value under name, expiring after ttl.
	Set(name, value string, ttl time.Duration)

	// Get returns the stored value and whether it was present.
	Get(name string) (string, bool)

	// Delete removes the value under name. Deleting an absent entry is a
	// no-op.
	Delete(name string)
}

// Session is the per-request view of the two tokens. It is reconstructed
// from the TokenStore on every request and never persisted as an object.
//
// A missing refresh token means the session is unauthenticated no matter
// what the access token says: the refresh token is the root of trust, the
// access token a cached convenience.
type Session struct {
	AccessToken  string
	RefreshToken string
}

// ReadSession snapshots the current tokens out of the store.
func ReadSession(store TokenStore) Session {
	var s Session
	s.AccessToken, _ = store.Get(AccessTokenCookie)
	s.RefreshToken, _ = store.Get(RefreshTokenCookie)
	return s
}

// Authenticated reports whether the session holds a refresh token.
func (s Session) Authenticated() bool {
	return s.RefreshToken != ""
}

// DecodedUser is the display projection decoded from the access token
// payload WITHOUT signature verification. It exists for UI purposes only
// (greeting, avatar); nothing that gates access may consume it.
type DecodedUser struct {
	ID        string
	Username  string
	Email     string
	AvatarURL string
}
