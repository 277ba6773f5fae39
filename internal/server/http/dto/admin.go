package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountRequest creates or updates a voucher. Value accepts a JSON number or
// a decimal string such as "12.5".
type DiscountRequest struct {
	Code              string          `json:"code" validate:"required,max=50"`
	Type              string          `json:"type" validate:"required,oneof=fixed percentage"`
	Value             decimal.Decimal `json:"value"`
	MaxDiscountAmount *int64          `json:"max_discount_amount" validate:"omitempty,gt=0"`
	MinimumPurchase   int64           `json:"minimum_purchase" validate:"gte=0"`
	UsageLimit        *int            `json:"usage_limit" validate:"omitempty,gt=0"`
	StartsAt          *time.Time      `json:"starts_at"`
	EndsAt            *time.Time      `json:"ends_at"`
	IsActive          *bool           `json:"is_active"`
}

// DiscountResponse describes a voucher.
type DiscountResponse struct {
	ID                int64      `json:"id"`
	Code              string     `json:"code"`
	Type              string     `json:"type"`
	Value             float64    `json:"value"`
	MaxDiscountAmount *int64     `json:"max_discount_amount,omitempty"`
	MinimumPurchase   int64      `json:"minimum_purchase"`
	UsageLimit        *int       `json:"usage_limit,omitempty"`
	UsageCount        int        `json:"usage_count"`
	StartsAt          *time.Time `json:"starts_at,omitempty"`
	EndsAt            *time.Time `json:"ends_at,omitempty"`
	IsActive          bool       `json:"is_active"`
}

// RoleRequest changes account role.
type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer admin"`
}

// OrderStatusRequest advances fulfilment status.
type OrderStatusRequest struct {
	Status         string `json:"status" validate:"required,oneof=processing shipping completed"`
	TrackingNumber string `json:"tracking_number" validate:"required_if=Status shipping,max=100"`
}

// RefundDecisionRequest carries the admin note for approve and reject.
type RefundDecisionRequest struct {
	Note string `json:"note" validate:"max=500"`
}

// DashboardResponse summarizes orders for the back office.
type DashboardResponse struct {
	TotalOrders int            `json:"total_orders"`
	ByStatus    map[string]int `json:"by_status"`
	Revenue     int64          `json:"revenue"`
}

// MessageResponse is the generic reply for actions and failures.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
