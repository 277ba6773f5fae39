package model

import "time"

// RefundStatus describes refund lifecycle.
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusApproved  RefundStatus = "approved"
	RefundStatusSucceeded RefundStatus = "succeeded"
	RefundStatusFailed    RefundStatus = "failed"
	RefundStatusRejected  RefundStatus = "rejected"
)

// Active reports whether refund still awaits a final outcome.
func (s RefundStatus) Active() bool {
	return s == RefundStatusPending || s == RefundStatusApproved
}

// Refund returns a captured payment to the customer.
type Refund struct {
	ID            int64
	PaymentID     int64
	OrderID       int64
	OrderNumber   string
	Reference     string
	ExternalID    string
	Amount        int64
	Reason        string
	Status        RefundStatus
	FailureCode   string
	FailureReason string
	AdminNote     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RefundEventStatus is the status reported by refund callbacks.
type RefundEventStatus string

const (
	RefundEventSucceeded RefundEventStatus = "SUCCEEDED"
	RefundEventFailed    RefundEventStatus = "FAILED"
)

// RefundEvent is a refund callback from the gateway.
type RefundEvent struct {
	ID          string
	ReferenceID string
	InvoiceID   string
	Amount      int64
	Status      RefundEventStatus
	FailureCode string
}

// RefundRequest describes refund creation at the gateway.
type RefundRequest struct {
	ReferenceID string
	InvoiceID   string
	Amount      int64
	Reason      string
}

// RefundReceipt is the gateway acknowledgement of a refund request.
type RefundReceipt struct {
	ID     string
	Status string
}

// RefundSettlement is the mutation decided for a refund callback.
type RefundSettlement struct {
	RefundStatus  RefundStatus
	FailureCode   string
	FailureReason string
	PaymentStatus *PaymentStatus
	OrderStatus   *OrderStatus
	RestoreStock  bool
}
