// Package apiclient implements the remote invoice API contracts over HTTP.
// It is the only place that knows endpoint paths and wire shapes; callers
// see typed responses and classified errors.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/invoicedesk/frontend/internal/core/domain"
)

// Client implements domain.AuthAPI and domain.InvoiceAPI against the
// remote invoice API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API at baseURL. timeout bounds every round
// trip, including body read.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Login exchanges credentials for a token pair via POST /login.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	resp, err := c.postJSON(ctx, "/login", req, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteError(resp)
	}

	var out domain.LoginResponse
	if err := decodeBody(resp, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		return nil, fmt.Errorf("login response missing tokens")
	}
	return &out, nil
}

// Register creates an account via POST /register.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	resp, err := c.postJSON(ctx, "/register", req, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteError(resp)
	}

	var out domain.RegisterResponse
	if err := decodeBody(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh redeems the refresh token via POST /refresh. A 401/403 answer is
// conclusive and surfaces as domain.ErrUnauthorized; any other non-2xx is
// a plain error the caller treats as transient.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.RefreshResponse, error) {
	body := struct {
		RefreshToken string `json:"refreshToken"`
	}{RefreshToken: refreshToken}

	resp, err := c.postJSON(ctx, "/refresh", body, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("refresh rejected with %d: %w", resp.StatusCode, domain.ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("refresh returned status %d", resp.StatusCode)
	}

	var out domain.RefreshResponse
	if err := decodeBody(resp, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("refresh response missing access token")
	}
	return &out, nil
}

// ListInvoices fetches the caller's invoices via GET /invoices.
func (c *Client) ListInvoices(ctx context.Context, accessToken string) (*domain.InvoiceList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/invoices", nil)
	if err != nil {
		return nil, fmt.Errorf("build invoices request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch invoices: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("invoices rejected with %d: %w", resp.StatusCode, domain.ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("invoices returned status %d", resp.StatusCode)
	}

	var out domain.InvoiceList
	if err := decodeBody(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateInvoice submits a draft via POST /invoices. A 400 surfaces as
// *domain.ValidationError with the remote message verbatim.
func (c *Client) CreateInvoice(ctx context.Context, accessToken string, draft domain.InvoiceDraft) (*domain.CreatedInvoice, error) {
	resp, err := c.postJSON(ctx, "/invoices", draft, accessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("create invoice rejected with %d: %w", resp.StatusCode, domain.ErrUnauthorized)
	case resp.StatusCode == http.StatusBadRequest:
		return nil, &domain.ValidationError{Message: readMessage(resp, "Validation error")}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("create invoice returned status %d", resp.StatusCode)
	}

	var out domain.CreatedInvoice
	if err := decodeBody(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, accessToken string) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", path, err)
	}
	return resp, nil
}

// decodeBody parses a 2xx response body. A malformed body is reported as a
// plain error so callers classify it as transient, never as a rejection.
func decodeBody(resp *http.Response, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resp.Request.URL.Path, err)
	}
	return nil
}

// remoteError extracts the remote {message} from a non-2xx body. The
// message stays empty when the body is unreadable or has no message field.
func remoteError(resp *http.Response) error {
	return &domain.RemoteError{
		StatusCode: resp.StatusCode,
		Message:    readMessage(resp, ""),
	}
}

func readMessage(resp *http.Response, fallback string) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fallback
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		return fallback
	}
	return body.Message
}

var (
	_ domain.AuthAPI    = (*Client)(nil)
	_ domain.InvoiceAPI = (*Client)(nil)
)
