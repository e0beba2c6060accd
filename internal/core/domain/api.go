package domain

import "context"

// LoginRequest is the credentials payload for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the token pair issued by a successful login.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Message      string `json:"message"`
}

// RegisterRequest is the payload for POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse carries the remote confirmation message.
type RegisterResponse struct {
	Message string `json:"message"`
}

// RefreshResponse carries the freshly minted access token.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// APIUser is the authenticated-user echo returned alongside invoice
// listings. iat/exp come straight from the remote token claims.
type APIUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	IssuedAt int64  `json:"iat"`
	Expires  int64  `json:"exp"`
}

// InvoiceList is the response body of GET /invoices.
type InvoiceList struct {
	Message  string    `json:"message"`
	User     APIUser   `json:"user"`
	Invoices []Invoice `json:"invoices"`
}

// CreatedInvoice is the response body of POST /invoices.
type CreatedInvoice struct {
	Invoice Invoice `json:"invoice"`
	Message string  `json:"message"`
}

// AuthAPI is the data-access contract for the remote authentication
// endpoints. The HTTP implementation lives in internal/core/apiclient;
// the Logic layer depends on this interface only.
type AuthAPI interface {
	// Login exchanges credentials for a token pair. Rejected credentials
	// surface as *RemoteError carrying the remote message.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// Register creates an account. Rejections surface as *RemoteError.
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)

	// Refresh redeems a refresh token for a new access token. A 401/403
	// from the remote surfaces as ErrUnauthorized; everything else
	// non-2xx is transient.
	Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error)
}

// InvoiceAPI is the data-access contract for the remote invoice endpoints.
// All calls carry the access token as a bearer credential.
type InvoiceAPI interface {
	// ListInvoices fetches all invoices visible to the token's owner.
	ListInvoices(ctx context.Context, accessToken string) (*InvoiceList, error)

	// CreateInvoice submits a draft. Remote-side validation failures (400)
	// surface as *ValidationError carrying the remote message.
	CreateInvoice(ctx context.Context, accessToken string, draft InvoiceDraft) (*CreatedInvoice, error)
}
