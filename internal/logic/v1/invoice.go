package v1

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/invoicedesk/frontend/internal/core/domain"
)

// InvoiceListResult is the outcome envelope for listing invoices.
type InvoiceListResult struct {
	Success        bool             `json:"success"`
	Message        string           `json:"message,omitempty"`
	ShouldRedirect bool             `json:"shouldRedirect,omitempty"`
	Invoices       []domain.Invoice `json:"invoices,omitempty"`
	User           *domain.APIUser  `json:"user,omitempty"`
}

// InvoiceCreateResult is the outcome envelope for creating an invoice.
type InvoiceCreateResult struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message,omitempty"`
	ShouldRedirect bool            `json:"shouldRedirect,omitempty"`
	Invoice        *domain.Invoice `json:"invoice,omitempty"`
}

// InvoiceService proxies invoice operations to the remote API using the
// access token from the caller's token store. It never refreshes tokens
// itself: a 401/403 surfaces as ShouldRedirect and the session gate (or a
// fresh page load) handles recovery.
type InvoiceService struct {
	api domain.InvoiceAPI
}

// NewInvoiceService creates an InvoiceService backed by the given remote
// invoice API.
func NewInvoiceService(api domain.InvoiceAPI) *InvoiceService {
	return &InvoiceService{api: api}
}

// List fetches all invoices visible to the current session.
func (s *InvoiceService) List(ctx context.Context, store domain.TokenStore) InvoiceListResult {
	logger := zerolog.Ctx(ctx)

	accessToken, ok := store.Get(domain.AccessTokenCookie)
	if !ok {
		return InvoiceListResult{Success: false, Message: "No access token found", ShouldRedirect: true}
	}

	list, err := s.api.ListInvoices(ctx, accessToken)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return InvoiceListResult{Success: false, Message: "Token invalid or expired", ShouldRedirect: true}
		}
		logger.Error().Err(err).Msg("Invoice fetch failed")
		return InvoiceListResult{Success: false, Message: "Failed to fetch invoices"}
	}

	return InvoiceListResult{
		Success:  true,
		Invoices: list.Invoices,
		User:     &list.User,
	}
}

// Create validates the draft locally, then submits it. Local validation
// failures never reach the network.
func (s *InvoiceService) Create(ctx context.Context, store domain.TokenStore, draft domain.InvoiceDraft) InvoiceCreateResult {
	logger := zerolog.Ctx(ctx)

	if msg := validateDraft(draft); msg != "" {
		return InvoiceCreateResult{Success: false, Message: msg}
	}

	accessToken, ok := store.Get(domain.AccessTokenCookie)
	if !ok {
		return InvoiceCreateResult{Success: false, Message: "No access token found", ShouldRedirect: true}
	}

	created, err := s.api.CreateInvoice(ctx, accessToken, draft)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return InvoiceCreateResult{Success: false, Message: "Token invalid or expired", ShouldRedirect: true}
		}
		var valErr *domain.ValidationError
		if errors.As(err, &valErr) {
			return InvoiceCreateResult{Success: false, Message: valErr.Message}
		}
		logger.Error().Err(err).Msg("Invoice create failed")
		return InvoiceCreateResult{Success: false, Message: "Failed to create invoice"}
	}

	msg := created.Message
	if msg == "" {
		msg = "Invoice created"
	}
	return InvoiceCreateResult{Success: true, Invoice: &created.Invoice, Message: msg}
}

const draftDateLayout = "2006-01-02"

// validateDraft applies the same checks the create dialog enforces, so a
// bad draft is rejected before any network call. Returns an empty string
// when the draft is acceptable.
func validateDraft(draft domain.InvoiceDraft) string {
	if draft.Customer == "" || draft.Date == "" || draft.DueDate == "" {
		return "Customer, date, and due date are required"
	}

	date, err := time.Parse(draftDateLayout, draft.Date)
	if err != nil {
		return "Date must be in YYYY-MM-DD format"
	}
	due, err := time.Parse(draftDateLayout, draft.DueDate)
	if err != nil {
		return "Due date must be in YYYY-MM-DD format"
	}
	if due.Before(date) {
		return "Due date cannot be earlier than invoice date"
	}

	if len(draft.Items) == 0 {
		return "At least one item is required"
	}
	for _, item := range draft.Items {
		if item.Item == "" || item.Qty <= 0 || item.Price <= 0 {
			return "All items must have a name, quantity > 0, and price > 0"
		}
	}
	return ""
}
