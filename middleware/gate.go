package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/invoicedesk/frontend/internal/core/cookie"
	"github.com/invoicedesk/frontend/internal/core/domain"
	logicv1 "github.com/invoicedesk/frontend/internal/logic/v1"
)

// Entry points the gate redirects to.
const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

// storeContextKey is the gin context key under which the request's token
// store is shared between the gate and the page handlers.
const storeContextKey = "sessionTokenStore"

// skipSuffixes are image asset extensions the gate never inspects,
// regardless of path. Scripts and stylesheets are only exempt under
// /static/, so a protected path can never slip past the gate by its
// extension.
var skipSuffixes = []string{".svg", ".png", ".jpg", ".jpeg", ".gif", ".webp"}

// gateSkipsPath reports whether the gate ignores the path entirely:
// operational endpoints and static assets.
func gateSkipsPath(path string) bool {
	switch path {
	case "/health", "/ready", "/metrics", "/favicon.ico":
		return true
	}
	if strings.HasPrefix(path, "/static/") {
		return true
	}
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

func isAuthRoute(path string) bool {
	return path == "/login" || path == "/register"
}

func isPublicRoute(path string) bool {
	return isAuthRoute(path) || strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/static/")
}

func isProtectedRoute(path string) bool {
	return path == dashboardPath || strings.HasPrefix(path, dashboardPath+"/")
}

// RequestStore returns the token store bound to this request, creating
// and binding one on first use. The gate and the handlers must share one
// store per request: a token refreshed at the gate is only visible
// downstream through the store's write-through overlay, not through the
// request's cookie jar.
func RequestStore(c *gin.Context, secureCookies bool) domain.TokenStore {
	if v, ok := c.Get(storeContextKey); ok {
		if store, ok := v.(domain.TokenStore); ok {
			return store
		}
	}
	store := cookie.NewStore(c.Writer, c.Request, secureCookies)
	c.Set(storeContextKey, store)
	return store
}

// SessionGate enforces the session lifecycle on every page request, before
// the handler runs:
//
//   - auth routes with any token present redirect to the dashboard;
//   - public routes pass through;
//   - protected routes require a refresh token; when the access token is
//     missing, one inline refresh is attempted and any failure, transient
//     or not, clears both tokens and redirects to login;
//   - everything else passes through.
//
// The decision, including the inline refresh round trip, completes before
// the request is dispatched. secureCookies controls the Secure attribute
// on any cookie the gate writes.
func SessionGate(sessions *logicv1.SessionService, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if gateSkipsPath(path) {
			c.Next()
			return
		}

		store := RequestStore(c, secureCookies)
		sess := domain.ReadSession(store)
		logger := zerolog.Ctx(c.Request.Context())

		if isAuthRoute(path) && (sess.AccessToken != "" || sess.RefreshToken != "") {
			c.Redirect(http.StatusFound, dashboardPath)
			c.Abort()
			return
		}

		if isPublicRoute(path) {
			c.Next()
			return
		}

		if isProtectedRoute(path) {
			if !sess.Authenticated() {
				c.Redirect(http.StatusFound, loginPath)
				c.Abort()
				return
			}

			// Access token presence is trusted here; expiry surfaces as a
			// 401 from the remote API on the next call.
			if sess.AccessToken != "" {
				c.Next()
				return
			}

			res := sessions.Refresh(c.Request.Context(), store)
			if !res.Success {
				if res.ShouldRedirect {
					ObserveRefresh("expired")
				} else {
					ObserveRefresh("transient")
				}
				// At the gate every refresh failure is conclusive.
				store.Delete(domain.AccessTokenCookie)
				store.Delete(domain.RefreshTokenCookie)
				logger.Info().Str("path", path).Msg("Inline refresh failed, redirecting to login")
				c.Redirect(http.StatusFound, loginPath)
				c.Abort()
				return
			}

			ObserveRefresh("success")
			logger.Debug().Str("path", path).Msg("Access token refreshed at gate")
			c.Next()
			return
		}

		c.Next()
	}
}
