package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType describes how discount value is applied.
type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// Discount is a voucher code applicable to a cart.
type Discount struct {
	ID                int64
	Code              string
	Type              DiscountType
	Value             decimal.Decimal
	MaxDiscountAmount *int64
	MinimumPurchase   int64
	UsageLimit        *int
	UsageCount        int
	StartsAt          *time.Time
	EndsAt            *time.Time
	IsActive          bool
	CreatedAt         time.Time
}

// Available reports whether discount can be applied at the given moment.
func (d Discount) Available(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartsAt != nil && now.Before(*d.StartsAt) {
		return false
	}
	if d.EndsAt != nil && now.After(*d.EndsAt) {
		return false
	}
	if d.UsageLimit != nil && d.UsageCount >= *d.UsageLimit {
		return false
	}
	return true
}
