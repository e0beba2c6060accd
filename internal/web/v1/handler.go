// Package v1 exposes the browser-facing surface of the invoice frontend:
// the HTML pages and the JSON action API the pages call.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/invoicedesk/frontend/internal/core/domain"
	logicv1 "github.com/invoicedesk/frontend/internal/logic/v1"
	"github.com/invoicedesk/frontend/middleware"
)

// Handler groups the HTTP handlers of the invoice frontend. Dependencies
// are injected via the constructor; there is no package state.
type Handler struct {
	sessions      *logicv1.SessionService
	invoices      *logicv1.InvoiceService
	secureCookies bool
}

// NewHandler creates a Handler. secureCookies controls the Secure
// attribute on every cookie the handlers write.
func NewHandler(sessions *logicv1.SessionService, invoices *logicv1.InvoiceService, secureCookies bool) *Handler {
	return &Handler{sessions: sessions, invoices: invoices, secureCookies: secureCookies}
}

// RegisterRoutes registers the JSON action API on the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/logout", h.Logout)
	rg.GET("/auth/me", h.GetMe)
	rg.GET("/invoices", h.ListInvoices)
	rg.POST("/invoices", h.CreateInvoice)
}

// RegisterPages registers the HTML pages on the engine. The session gate
// has already classified these routes by the time a handler runs.
func (h *Handler) RegisterPages(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})
	r.GET("/login", h.LoginPage)
	r.GET("/register", h.RegisterPage)
	r.GET("/dashboard", h.DashboardPage)
}

// store returns the request's token store, shared with the session gate
// so that a token refreshed at the gate is visible to the handler.
func (h *Handler) store(c *gin.Context) domain.TokenStore {
	return middleware.RequestStore(c, h.secureCookies)
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "auth.login", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, logicv1.ActionResult{Success: false, Message: "Username and password are required"})
		return
	}

	res := h.sessions.Login(ctx, h.store(c), req.Username, req.Password)
	span.SetAttributes(attribute.Bool("auth.success", res.Success))
	c.JSON(http.StatusOK, res)
}

// Register handles POST /api/v1/auth/register.
func (h *Handler) Register(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "auth.register", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	var req struct {
		Username        string `json:"username" binding:"required"`
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, logicv1.ActionResult{Success: false, Message: "Username and password are required"})
		return
	}

	res := h.sessions.Register(ctx, req.Username, req.Password, req.ConfirmPassword)
	span.SetAttributes(attribute.Bool("registration.success", res.Success))
	c.JSON(http.StatusOK, res)
}

// Logout handles POST /api/v1/auth/logout. Always succeeds.
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessions.Logout(h.store(c)))
}

// GetMe handles GET /api/v1/auth/me. The user is a display projection
// decoded from the access token; "no user" is a normal answer, not an
// error.
func (h *Handler) GetMe(c *gin.Context) {
	user, ok := h.sessions.CurrentUser(h.store(c))
	if !ok {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"avatarUrl": user.AvatarURL,
	}})
}

// ListInvoices handles GET /api/v1/invoices.
func (h *Handler) ListInvoices(c *gin.Context) {
	res := h.invoices.List(c.Request.Context(), h.store(c))
	c.JSON(http.StatusOK, res)
}

// CreateInvoice handles POST /api/v1/invoices.
func (h *Handler) CreateInvoice(c *gin.Context) {
	var draft domain.InvoiceDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, logicv1.InvoiceCreateResult{Success: false, Message: "Invalid invoice payload"})
		return
	}
	res := h.invoices.Create(c.Request.Context(), h.store(c), draft)
	c.JSON(http.StatusOK, res)
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Registered": c.Query("registered") == "true",
	})
}

// RegisterPage renders the registration form.
func (h *Handler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", nil)
}

// DashboardPage renders the invoice dashboard. The gate guarantees a
// refresh token was present; the invoice fetch may still discover a stale
// access token, in which case the page sends the user back to login.
func (h *Handler) DashboardPage(c *gin.Context) {
	store := h.store(c)
	logger := zerolog.Ctx(c.Request.Context())

	res := h.invoices.List(c.Request.Context(), store)
	if !res.Success && res.ShouldRedirect {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	if !res.Success {
		logger.Warn().Str("reason", res.Message).Msg("Dashboard rendered without invoices")
	}

	user, _ := h.sessions.CurrentUser(store)
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":     user,
		"Invoices": res.Invoices,
		"Error":    errMessage(res),
	})
}

func errMessage(res logicv1.InvoiceListResult) string {
	if res.Success {
		return ""
	}
	return res.Message
}
