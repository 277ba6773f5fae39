package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidOrderNumber = errors.New("invalid order number")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInactiveProduct    = errors.New("product is not available")
	ErrInvalidDiscount    = errors.New("invalid discount")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInUse              = errors.New("resource is referenced")
)

// Checkout gate.
var (
	ErrCartEmpty             = errors.New("cart is empty")
	ErrCartTooHeavy          = errors.New("cart weight exceeds limit")
	ErrDiscountMinimumNotMet = errors.New("discount minimum purchase not met")
	ErrDiscountUnavailable   = errors.New("discount is not available")
	ErrDiscountAlreadyUsed   = errors.New("discount already used")
	ErrUnknownCourier        = errors.New("unknown courier")
)

// Order lifecycle and payment reconciliation.
var (
	ErrInvalidStatusTransition  = errors.New("invalid order status transition")
	ErrTrackingNumberRequired   = errors.New("tracking number required")
	ErrOrderNotCancelable       = errors.New("order cannot be canceled")
	ErrPaymentAlreadyProcessed  = errors.New("payment already processed")
	ErrUnsupportedPaymentStatus = errors.New("unsupported payment status")
	ErrRefundNotAllowed         = errors.New("refund not allowed")
	ErrRefundInProgress         = errors.New("refund already in progress")
	ErrRefundNotApproved        = errors.New("refund not approved")
)
