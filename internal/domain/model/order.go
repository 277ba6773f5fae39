package model

import "time"

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusWaitingPayment  OrderStatus = "waiting_payment"
	OrderStatusPaymentReceived OrderStatus = "payment_received"
	OrderStatusProcessing      OrderStatus = "processing"
	OrderStatusShipping        OrderStatus = "shipping"
	OrderStatusCompleted       OrderStatus = "completed"
	OrderStatusFailed          OrderStatus = "failed"
	OrderStatusCanceled        OrderStatus = "canceled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusWaitingPayment:  {OrderStatusPaymentReceived, OrderStatusFailed, OrderStatusCanceled},
	OrderStatusPaymentReceived: {OrderStatusProcessing, OrderStatusCanceled},
	OrderStatusProcessing:      {OrderStatusShipping, OrderStatusCanceled},
	OrderStatusShipping:        {OrderStatusCompleted},
}

// Valid reports whether status is known.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusWaitingPayment, OrderStatusPaymentReceived, OrderStatusProcessing,
		OrderStatusShipping, OrderStatusCompleted, OrderStatusFailed, OrderStatusCanceled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Refundable reports whether a paid order may still be refunded.
func (s OrderStatus) Refundable() bool {
	return s == OrderStatusPaymentReceived || s == OrderStatusProcessing
}

// ShippingAddress is the delivery destination captured at checkout.
type ShippingAddress struct {
	RecipientName string
	Phone         string
	Address       string
	City          string
	PostalCode    string
}

// Order is a placed purchase. Amounts are in rupiah, weight in grams.
type Order struct {
	ID             int64
	Number         string
	UserID         int64
	Status         OrderStatus
	Subtotal       int64
	DiscountID     *int64
	DiscountAmount int64
	ShippingCost   int64
	Total          int64
	TotalWeight    int
	Courier        string
	TrackingNumber string
	Address        ShippingAddress
	Note           string
	Details        []OrderDetail
	Payment        *Payment
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderDetail snapshots a cart line at checkout.
type OrderDetail struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	VariantID   *int64
	ProductName string
	VariantName string
	Price       int64
	Quantity    int
	Weight      int
	Subtotal    int64
}

// OrderDraft carries everything persisted atomically when an order is placed.
type OrderDraft struct {
	Order   Order
	Payment Payment
	CartID  int64
}

// OrderStats summarizes orders for the admin dashboard.
type OrderStats struct {
	TotalOrders int
	ByStatus    map[OrderStatus]int
	Revenue     int64
}

// CheckoutRequest holds customer input submitted at checkout.
type CheckoutRequest struct {
	Courier string
	Address ShippingAddress
	Note    string
}

// CheckoutQuote is a priced cart for a chosen courier.
type CheckoutQuote struct {
	Summary      CartSummary
	Courier      string
	ShippingCost int64
	GrandTotal   int64
}
