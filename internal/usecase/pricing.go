package usecase

import (
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
)

// DefaultMaxCartWeight is the heaviest cart accepted at checkout, in grams.
const DefaultMaxCartWeight = 30000

const gramsPerKilogram = 1000

var hundred = decimal.NewFromInt(100)

// CalculateDiscount returns the amount discount takes off total. The caller
// is responsible for checking the minimum purchase.
func CalculateDiscount(discount model.Discount, total int64) int64 {
	if total <= 0 || !discount.Value.IsPositive() {
		return 0
	}

	value := discount.Value
	var amount int64
	switch discount.Type {
	case model.DiscountFixed:
		amount = value.Floor().IntPart()
	case model.DiscountPercentage:
		amount = decimal.NewFromInt(total).Mul(value).Div(hundred).Floor().IntPart()
		if discount.MaxDiscountAmount != nil && amount > *discount.MaxDiscountAmount {
			amount = *discount.MaxDiscountAmount
		}
	default:
		return 0
	}

	if amount > total {
		amount = total
	}
	if amount < 0 {
		return 0
	}
	return amount
}

// Summarize aggregates cart lines and applies discount when its minimum
// purchase is met. The discount stays attached otherwise so the checkout
// gate can report it.
func Summarize(cart model.Cart, discount *model.Discount) model.CartSummary {
	summary := model.CartSummary{
		CartID:   cart.ID,
		Items:    cart.Items,
		Discount: discount,
	}
	for _, item := range cart.Items {
		summary.Subtotal += item.Subtotal()
		summary.TotalWeight += item.TotalWeight()
	}
	if discount != nil && summary.Subtotal >= discount.MinimumPurchase {
		summary.DiscountAmount = CalculateDiscount(*discount, summary.Subtotal)
	}
	summary.Total = summary.Subtotal - summary.DiscountAmount
	return summary
}

// CheckEligibility runs the checkout gate: empty cart, weight limit, then
// discount minimum purchase, then stock of every line.
func CheckEligibility(summary model.CartSummary, maxWeight int) error {
	if maxWeight <= 0 {
		maxWeight = DefaultMaxCartWeight
	}
	if len(summary.Items) == 0 {
		return domainErrors.ErrCartEmpty
	}
	if summary.TotalWeight >= maxWeight {
		return domainErrors.ErrCartTooHeavy
	}
	if summary.Discount != nil && summary.Discount.MinimumPurchase > summary.Subtotal {
		return domainErrors.ErrDiscountMinimumNotMet
	}
	for _, item := range summary.Items {
		if item.Quantity > item.Stock {
			return domainErrors.ErrInsufficientStock
		}
	}
	return nil
}

// ShippingCost charges ratePerKg for every started kilogram, at least one.
func ShippingCost(weight int, ratePerKg int64) int64 {
	kilograms := (weight + gramsPerKilogram - 1) / gramsPerKilogram
	if kilograms < 1 {
		kilograms = 1
	}
	return int64(kilograms) * ratePerKg
}
