// Package cookie implements domain.TokenStore on top of the browser's
// cookie jar: reads come from the inbound request, writes go out as
// Set-Cookie headers on the response.
package cookie

import (
	"net/http"
	"time"

	"github.com/invoicedesk/frontend/internal/core/domain"
)

// Store implements domain.TokenStore for a single request/response pair.
// A fresh Store is built per request; it carries no state beyond the two
// HTTP messages it wraps.
//
// Writes within the same request shadow the inbound cookie so that a value
// set (or deleted) earlier in the request is what later reads observe,
// matching jar semantics without waiting for the browser round trip.
type Store struct {
	req    *http.Request
	w      http.ResponseWriter
	secure bool

	// local write-through overlay; nil value marks a deletion
	overlay map[string]*string
}

// NewStore wraps the given request/response pair. secure controls the
// Secure cookie attribute and should be true in production.
func NewStore(w http.ResponseWriter, req *http.Request, secure bool) *Store {
	return &Store{
		req:     req,
		w:       w,
		secure:  secure,
		overlay: make(map[string]*string),
	}
}

// Set persists value under name with the fixed hardening attributes:
// HttpOnly, SameSite=Strict, Path=/, Secure in production.
func (s *Store) Set(name, value string, ttl time.Duration) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	v := value
	s.overlay[name] = &v
}

// Get returns the value under name, preferring writes made during this
// request over the inbound cookie.
func (s *Store) Get(name string) (string, bool) {
	if v, ok := s.overlay[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	c, err := s.req.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Delete expires the cookie under name. Deleting an absent cookie is a
// no-op from the browser's point of view, so Delete never fails.
func (s *Store) Delete(name string) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	s.overlay[name] = nil
}

var _ domain.TokenStore = (*Store)(nil)
