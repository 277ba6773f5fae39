package model

import "time"

// PaymentStatus describes local payment state.
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusSettled  PaymentStatus = "settled"
	PaymentStatusExpired  PaymentStatus = "expired"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Processed reports whether a gateway outcome was already applied.
func (s PaymentStatus) Processed() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusSettled, PaymentStatusExpired, PaymentStatusRefunded:
		return true
	}
	return false
}

// Captured reports whether money was received.
func (s PaymentStatus) Captured() bool {
	return s == PaymentStatusPaid || s == PaymentStatusSettled
}

// Payment tracks the gateway invoice of an order.
type Payment struct {
	ID         int64
	OrderID    int64
	ExternalID string
	InvoiceID  string
	InvoiceURL string
	Amount     int64
	Status     PaymentStatus
	Method     string
	Reference  string
	PaidAt     *time.Time
	ExpiresAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceStatus is the status reported by the payment gateway.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusSettled InvoiceStatus = "SETTLED"
	InvoiceStatusExpired InvoiceStatus = "EXPIRED"
)

// Gateway payment methods.
const (
	MethodBankTransfer = "BANK_TRANSFER"
	MethodEwallet      = "EWALLET"
	MethodRetailOutlet = "RETAIL_OUTLET"
	MethodQRCode       = "QR_CODE"
	MethodCreditCard   = "CREDIT_CARD"
)

// Invoice is the gateway view of a payment, delivered by callback or fetched on demand.
type Invoice struct {
	ID                 string
	ExternalID         string
	Status             InvoiceStatus
	Amount             int64
	PaidAmount         int64
	InvoiceURL         string
	PaymentID          string
	PaymentMethod      string
	PaymentChannel     string
	BankCode           string
	PaymentDestination string
	EwalletType        string
	RetailOutletName   string
	PaidAt             *time.Time
	ExpiresAt          time.Time
}

// InvoiceItem is a line shown on the hosted invoice page.
type InvoiceItem struct {
	Name     string
	Quantity int
	Price    int64
}

// InvoiceRequest describes invoice creation.
type InvoiceRequest struct {
	ExternalID  string
	Amount      int64
	PayerEmail  string
	Description string
	Items       []InvoiceItem
	Duration    time.Duration
}

// PaymentSettlement is the mutation decided for a payment and its order.
type PaymentSettlement struct {
	PaymentStatus PaymentStatus
	OrderStatus   OrderStatus
	Method        string
	Reference     string
	PaidAt        *time.Time
	RestoreStock  bool
}
