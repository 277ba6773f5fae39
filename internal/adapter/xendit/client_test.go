package xendit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, "xnd_secret", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewClientValidates(t *testing.T) {
	if _, err := NewClient("://bad-url", "key", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewClient("/relative", "key", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
	if _, err := NewClient("https://api.xendit.co", "", testLogger()); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestCreateInvoice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/invoices" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "xnd_secret" || pass != "" {
			t.Errorf("expected secret key basic auth, got %q %q", user, pass)
		}
		if got := r.Header.Get("Idempotency-key"); got != "202406011234567" {
			t.Errorf("unexpected idempotency key %q", got)
		}
		var body createInvoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Amount != 144000 || body.InvoiceDuration != 86400 || body.Currency != "IDR" || len(body.Items) != 1 {
			t.Errorf("unexpected body %+v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"inv-1","external_id":"202406011234567","status":"PENDING","amount":144000,"invoice_url":"https://checkout.xendit.co/web/inv-1","expiry_date":"2024-06-02T10:00:00.000Z"}`)
	})

	invoice, err := client.CreateInvoice(context.Background(), model.InvoiceRequest{
		ExternalID: "202406011234567",
		Amount:     144000,
		PayerEmail: "siti@example.com",
		Items:      []model.InvoiceItem{{Name: "Kaos Polos", Quantity: 2, Price: 75000}},
		Duration:   24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoice.ID != "inv-1" || invoice.Amount != 144000 || invoice.Status != model.InvoiceStatusPending {
		t.Fatalf("unexpected invoice %+v", invoice)
	}
	if !invoice.ExpiresAt.Equal(time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected expiry %v", invoice.ExpiresAt)
	}
}

func TestGetInvoiceParsesChannel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v2/invoices/inv-1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"id":"inv-1","external_id":"202406011234567","status":"PAID","amount":144000.00,"paid_amount":"144000","payment_method":"BANK_TRANSFER","bank_code":"BCA","payment_destination":"8808123","paid_at":"2024-06-01T11:00:00Z"}`)
	})

	invoice, err := client.GetInvoice(context.Background(), "inv-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoice.Status != model.InvoiceStatusPaid || invoice.PaidAmount != 144000 || invoice.BankCode != "BCA" {
		t.Fatalf("unexpected invoice %+v", invoice)
	}
	if invoice.PaidAt == nil || invoice.PaidAt.Hour() != 11 {
		t.Fatalf("expected paid at, got %v", invoice.PaidAt)
	}
}

func TestExpireInvoice(t *testing.T) {
	called := make(chan bool, 1)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called <- r.Method == http.MethodPost && r.URL.Path == "/invoices/inv-1/expire!"
		_, _ = io.WriteString(w, `{"id":"inv-1","status":"EXPIRED"}`)
	})
	if err := client.ExpireInvoice(context.Background(), "inv-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !<-called {
		t.Fatal("expected expire endpoint to be called")
	}
}

func TestCreateRefund(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/refunds" || r.Header.Get("Idempotency-key") != "ref-1" {
			t.Errorf("unexpected request %s key=%q", r.URL.Path, r.Header.Get("Idempotency-key"))
		}
		var body createRefundRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.InvoiceID != "inv-1" || body.Amount != 144000 || body.Reason != refundReason || body.Metadata.Note != "barang rusak" {
			t.Errorf("unexpected body %+v", body)
		}
		_, _ = io.WriteString(w, `{"id":"rfd-1","status":"PENDING"}`)
	})

	receipt, err := client.CreateRefund(context.Background(), model.RefundRequest{
		ReferenceID: "ref-1",
		InvoiceID:   "inv-1",
		Amount:      144000,
		Reason:      "barang rusak",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.ID != "rfd-1" || receipt.Status != "PENDING" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
}

func TestClientErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header http.Header
		body   string
		check  func(t *testing.T, err error)
	}{
		{name: "not found", status: http.StatusNotFound, check: func(t *testing.T, err error) {
			if !errors.Is(err, domainErrors.ErrNotFound) {
				t.Fatalf("expected not found, got %v", err)
			}
		}},
		{name: "rate limited", status: http.StatusTooManyRequests, header: http.Header{"Retry-After": []string{"3"}}, check: func(t *testing.T, err error) {
			retry, ok := IsRateLimited(err)
			if !ok || retry != 3*time.Second {
				t.Fatalf("expected rate limit with 3s, got %v %v", retry, ok)
			}
		}},
		{name: "api error", status: http.StatusBadRequest, body: `{"error_code":"INVOICE_NOT_FOUND_ERROR","message":"gone"}`, check: func(t *testing.T, err error) {
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Status != http.StatusBadRequest || apiErr.Code != "INVOICE_NOT_FOUND_ERROR" {
				t.Fatalf("unexpected api error %+v", apiErr)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				for key, values := range tt.header {
					for _, v := range values {
						w.Header().Add(key, v)
					}
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := client.GetInvoice(context.Background(), "inv-1")
			tt.check(t, err)
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	httpTime := time.Now().Add(2 * time.Second).UTC().Format(http.TimeFormat)

	cases := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{name: "empty", header: "", want: 5 * time.Second},
		{name: "seconds", header: "7", want: 7 * time.Second},
		{name: "http date", header: httpTime, want: 2 * time.Second},
		{name: "fallback", header: "bad", want: 5 * time.Second},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseRetryAfter(tc.header)
			if tc.header == httpTime {
				if got <= 0 || got > 3*time.Second {
					t.Fatalf("unexpected retry duration %v", got)
				}
			} else if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
