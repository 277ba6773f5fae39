package dto

import "time"

// AddressRequest is the delivery destination entered at checkout.
type AddressRequest struct {
	RecipientName string `json:"recipient_name" validate:"required,max=100"`
	Phone         string `json:"phone" validate:"required,min=8,max=20"`
	Address       string `json:"address" validate:"required,max=500"`
	City          string `json:"city" validate:"required,max=100"`
	PostalCode    string `json:"postal_code" validate:"required,numeric,len=5"`
}

// CheckoutRequest places an order from the current cart.
type CheckoutRequest struct {
	Courier string         `json:"courier" validate:"required"`
	Address AddressRequest `json:"address"`
	Note    string         `json:"note" validate:"max=500"`
}

// QuoteResponse is the priced cart for a courier.
type QuoteResponse struct {
	Cart         CartResponse `json:"cart"`
	Courier      string       `json:"courier"`
	ShippingCost int64        `json:"shipping_cost"`
	GrandTotal   int64        `json:"grand_total"`
}

// AddressResponse describes the delivery destination of an order.
type AddressResponse struct {
	RecipientName string `json:"recipient_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
}

// OrderDetailResponse describes an order line.
type OrderDetailResponse struct {
	ProductID   int64  `json:"product_id"`
	VariantID   *int64 `json:"variant_id,omitempty"`
	ProductName string `json:"product_name"`
	VariantName string `json:"variant_name,omitempty"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}

// PaymentResponse describes the payment of an order.
type PaymentResponse struct {
	Status     string     `json:"status"`
	Amount     int64      `json:"amount"`
	InvoiceURL string     `json:"invoice_url,omitempty"`
	Method     string     `json:"method,omitempty"`
	Reference  string     `json:"reference,omitempty"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	ExpiresAt  time.Time  `json:"expires_at"`
}

// OrderResponse describes a placed order.
type OrderResponse struct {
	Number         string                `json:"number"`
	Status         string                `json:"status"`
	Subtotal       int64                 `json:"subtotal"`
	DiscountAmount int64                 `json:"discount_amount"`
	ShippingCost   int64                 `json:"shipping_cost"`
	Total          int64                 `json:"total"`
	TotalWeight    int                   `json:"total_weight"`
	Courier        string                `json:"courier"`
	TrackingNumber string                `json:"tracking_number,omitempty"`
	Address        AddressResponse       `json:"address"`
	Note           string                `json:"note,omitempty"`
	Details        []OrderDetailResponse `json:"details,omitempty"`
	Payment        *PaymentResponse      `json:"payment,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

// RefundRequest asks for money back on a paid order.
type RefundRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// RefundResponse describes a refund.
type RefundResponse struct {
	ID            int64     `json:"id"`
	OrderNumber   string    `json:"order_number"`
	Amount        int64     `json:"amount"`
	Reason        string    `json:"reason"`
	Status        string    `json:"status"`
	FailureReason string    `json:"failure_reason,omitempty"`
	AdminNote     string    `json:"admin_note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
