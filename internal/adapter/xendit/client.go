package xendit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
)

const (
	currencyIDR       = "IDR"
	refundReason      = "REQUESTED_BY_CUSTOMER"
	idempotencyHeader = "Idempotency-key"
)

// TooManyRequestsError represents rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// APIError is a non-successful gateway reply.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("xendit error: status %d", e.Status)
	}
	return fmt.Sprintf("xendit error: status %d: %s: %s", e.Status, e.Code, e.Message)
}

// Client talks to the Xendit REST API using the secret key as basic auth user.
type Client struct {
	baseURL    *url.URL
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

type invoiceItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

type createInvoiceRequest struct {
	ExternalID      string        `json:"external_id"`
	Amount          int64         `json:"amount"`
	PayerEmail      string        `json:"payer_email,omitempty"`
	Description     string        `json:"description,omitempty"`
	InvoiceDuration int64         `json:"invoice_duration,omitempty"`
	Currency        string        `json:"currency"`
	Items           []invoiceItem `json:"items,omitempty"`
}

// InvoicePayload mirrors the invoice object returned by the API and posted
// to the invoice callback.
type InvoicePayload struct {
	ID                 string          `json:"id"`
	ExternalID         string          `json:"external_id"`
	Status             string          `json:"status"`
	Amount             decimal.Decimal `json:"amount"`
	PaidAmount         decimal.Decimal `json:"paid_amount"`
	InvoiceURL         string          `json:"invoice_url"`
	PaymentID          string          `json:"payment_id"`
	PaymentMethod      string          `json:"payment_method"`
	PaymentChannel     string          `json:"payment_channel"`
	BankCode           string          `json:"bank_code"`
	PaymentDestination string          `json:"payment_destination"`
	EwalletType        string          `json:"ewallet_type"`
	RetailOutletName   string          `json:"retail_outlet_name"`
	PaidAt             *time.Time      `json:"paid_at"`
	ExpiryDate         time.Time       `json:"expiry_date"`
}

// Invoice converts the payload into the domain view.
func (p InvoicePayload) Invoice() model.Invoice {
	return model.Invoice{
		ID:                 p.ID,
		ExternalID:         p.ExternalID,
		Status:             model.InvoiceStatus(p.Status),
		Amount:             p.Amount.Round(0).IntPart(),
		PaidAmount:         p.PaidAmount.Round(0).IntPart(),
		InvoiceURL:         p.InvoiceURL,
		PaymentID:          p.PaymentID,
		PaymentMethod:      p.PaymentMethod,
		PaymentChannel:     p.PaymentChannel,
		BankCode:           p.BankCode,
		PaymentDestination: p.PaymentDestination,
		EwalletType:        p.EwalletType,
		RetailOutletName:   p.RetailOutletName,
		PaidAt:             p.PaidAt,
		ExpiresAt:          p.ExpiryDate,
	}
}

type createRefundRequest struct {
	ReferenceID string `json:"reference_id"`
	InvoiceID   string `json:"invoice_id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Reason      string `json:"reason"`
	Metadata    struct {
		Note string `json:"note,omitempty"`
	} `json:"metadata"`
}

type refundResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// NewClient creates Xendit client with default timeout.
func NewClient(baseURL, secretKey string, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse xendit url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("xendit url must be absolute")
	}
	if secretKey == "" {
		return nil, fmt.Errorf("xendit secret key must be provided")
	}
	return &Client{
		baseURL:   parsed,
		secretKey: secretKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// CreateInvoice issues a hosted invoice. External id doubles as idempotency key.
func (c *Client) CreateInvoice(ctx context.Context, req model.InvoiceRequest) (*model.Invoice, error) {
	body := createInvoiceRequest{
		ExternalID:      req.ExternalID,
		Amount:          req.Amount,
		PayerEmail:      req.PayerEmail,
		Description:     req.Description,
		InvoiceDuration: int64(req.Duration / time.Second),
		Currency:        currencyIDR,
	}
	for _, item := range req.Items {
		body.Items = append(body.Items, invoiceItem{Name: item.Name, Quantity: item.Quantity, Price: item.Price})
	}

	var payload InvoicePayload
	if err := c.do(ctx, http.MethodPost, "/v2/invoices", req.ExternalID, body, &payload); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	invoice := payload.Invoice()
	return &invoice, nil
}

// GetInvoice reads invoice by gateway identifier.
func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (*model.Invoice, error) {
	var payload InvoicePayload
	if err := c.do(ctx, http.MethodGet, path.Join("/v2/invoices", invoiceID), "", nil, &payload); err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	invoice := payload.Invoice()
	return &invoice, nil
}

// ExpireInvoice closes an unpaid invoice.
func (c *Client) ExpireInvoice(ctx context.Context, invoiceID string) error {
	endpoint := path.Join("/invoices", invoiceID, "expire!")
	if err := c.do(ctx, http.MethodPost, endpoint, "", nil, nil); err != nil {
		return fmt.Errorf("expire invoice: %w", err)
	}
	return nil
}

// CreateRefund refunds a paid invoice. Reference id doubles as idempotency key.
func (c *Client) CreateRefund(ctx context.Context, req model.RefundRequest) (*model.RefundReceipt, error) {
	body := createRefundRequest{
		ReferenceID: req.ReferenceID,
		InvoiceID:   req.InvoiceID,
		Amount:      req.Amount,
		Currency:    currencyIDR,
		Reason:      refundReason,
	}
	body.Metadata.Note = req.Reason

	var resp refundResponse
	if err := c.do(ctx, http.MethodPost, "/refunds", req.ReferenceID, body, &resp); err != nil {
		return nil, fmt.Errorf("create refund: %w", err)
	}
	return &model.RefundReceipt{ID: resp.ID, Status: resp.Status}, nil
}

func (c *Client) do(ctx context.Context, method, endpointPath, idempotencyKey string, in, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)

	var reader io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.secretKey, "")
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set(idempotencyHeader, idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || len(body) == 0 {
			return nil
		}
		return json.Unmarshal(body, out)
	case resp.StatusCode == http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode == http.StatusNotFound:
		return domainErrors.ErrNotFound
	default:
		apiErr := &APIError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(body, apiErr); jsonErr != nil {
			apiErr.Message = string(body)
		}
		apiErr.Status = resp.StatusCode
		c.logger.Error("xendit request failed",
			slog.String("method", method),
			slog.String("path", endpointPath),
			slog.Int("status", resp.StatusCode),
			slog.String("code", apiErr.Code),
		)
		return apiErr
	}
}

// IsRateLimited reports whether err carries a gateway throttling signal.
func IsRateLimited(err error) (time.Duration, bool) {
	var tm TooManyRequestsError
	if errors.As(err, &tm) {
		return tm.RetryAfter, true
	}
	return 0, false
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
