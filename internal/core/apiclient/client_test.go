package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/invoicedesk/frontend/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestLoginSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req domain.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Username != "alice" || req.Password != "Secret123!" {
			t.Errorf("credentials = %+v", req)
		}
		json.NewEncoder(w).Encode(domain.LoginResponse{
			AccessToken:  "A",
			RefreshToken: "B",
			Message:      "Login successful",
		})
	})

	resp, err := client.Login(context.Background(), domain.LoginRequest{Username: "alice", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken != "A" || resp.RefreshToken != "B" {
		t.Errorf("tokens = %q/%q, want A/B", resp.AccessToken, resp.RefreshToken)
	}
}

func TestLoginRejectedCarriesRemoteMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	})

	_, err := client.Login(context.Background(), domain.LoginRequest{Username: "alice", Password: "nope"})
	var remoteErr *domain.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("error = %v, want *domain.RemoteError", err)
	}
	if remoteErr.Message != "Invalid credentials" {
		t.Errorf("message = %q", remoteErr.Message)
	}
	if remoteErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d", remoteErr.StatusCode)
	}
}

func TestLoginMalformedBodyIsTransient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.Login(context.Background(), domain.LoginRequest{})
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	var remoteErr *domain.RemoteError
	if errors.As(err, &remoteErr) {
		t.Errorf("malformed body must not classify as remote rejection: %v", err)
	}
}

func TestRefreshSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/refresh" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.RefreshToken != "B" {
			t.Errorf("refreshToken = %q, want B", body.RefreshToken)
		}
		json.NewEncoder(w).Encode(domain.RefreshResponse{AccessToken: "A2"})
	})

	resp, err := client.Refresh(context.Background(), "B")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if resp.AccessToken != "A2" {
		t.Errorf("accessToken = %q, want A2", resp.AccessToken)
	}
}

func TestRefreshConclusiveRejection(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		_, err := client.Refresh(context.Background(), "stale")
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("status %d: error = %v, want ErrUnauthorized", status, err)
		}
	}
}

func TestRefreshServerErrorIsNotConclusive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Refresh(context.Background(), "B")
	if err == nil {
		t.Fatal("expected error for 500")
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("500 must not classify as conclusive rejection: %v", err)
	}
}

func TestListInvoicesSendsBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer A" {
			t.Errorf("Authorization = %q, want Bearer A", got)
		}
		json.NewEncoder(w).Encode(domain.InvoiceList{
			Message: "ok",
			User:    domain.APIUser{ID: 1, Username: "alice"},
			Invoices: []domain.Invoice{
				{ID: 7, InvoiceNumber: "INV-007", Customer: "ACME", Status: domain.StatusUnpaid},
			},
		})
	})

	list, err := client.ListInvoices(context.Background(), "A")
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(list.Invoices) != 1 || list.Invoices[0].InvoiceNumber != "INV-007" {
		t.Errorf("invoices = %+v", list.Invoices)
	}
	if list.User.Username != "alice" {
		t.Errorf("user = %+v", list.User)
	}
}

func TestListInvoicesUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.ListInvoices(context.Background(), "expired")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestCreateInvoiceValidationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "dueDate must not precede date"})
	})

	_, err := client.CreateInvoice(context.Background(), "A", domain.InvoiceDraft{})
	var valErr *domain.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("error = %v, want *domain.ValidationError", err)
	}
	if valErr.Message != "dueDate must not precede date" {
		t.Errorf("message = %q", valErr.Message)
	}
}

func TestCreateInvoiceSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var draft domain.InvoiceDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Fatalf("decode draft: %v", err)
		}
		if draft.Customer != "ACME" || len(draft.Items) != 1 {
			t.Errorf("draft = %+v", draft)
		}
		json.NewEncoder(w).Encode(domain.CreatedInvoice{
			Invoice: domain.Invoice{ID: 11, Customer: draft.Customer},
			Message: "Invoice created",
		})
	})

	created, err := client.CreateInvoice(context.Background(), "A", domain.InvoiceDraft{
		Customer: "ACME",
		Date:     "2026-08-01",
		DueDate:  "2026-08-15",
		Items:    []domain.InvoiceItem{{Item: "Widget", Qty: 2, Price: 9.5}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if created.Invoice.ID != 11 || created.Message != "Invoice created" {
		t.Errorf("created = %+v", created)
	}
}

func TestNetworkFailureIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	client := New(srv.URL, time.Second)

	_, err := client.Refresh(context.Background(), "B")
	if err == nil {
		t.Fatal("expected network error")
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("network failure must not classify as conclusive: %v", err)
	}
}
