package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/domain/repository"
)

// CartUseCase manages the customer basket.
type CartUseCase struct {
	carts     repository.CartRepository
	products  repository.ProductRepository
	discounts repository.DiscountRepository
	now       func() time.Time
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository, discounts repository.DiscountRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products, discounts: discounts, now: time.Now}
}

// Summary returns the cart aggregated with its applied discount.
func (u *CartUseCase) Summary(ctx context.Context, userID int64) (*model.CartSummary, error) {
	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	discount, err := u.appliedDiscount(ctx, userID, cart)
	if err != nil {
		return nil, err
	}

	summary := Summarize(*cart, discount)
	return &summary, nil
}

// appliedDiscount loads the cart discount and detaches it once it became
// unavailable or was already spent by the user.
func (u *CartUseCase) appliedDiscount(ctx context.Context, userID int64, cart *model.Cart) (*model.Discount, error) {
	if cart.DiscountID == nil {
		return nil, nil
	}

	discount, err := u.discounts.GetByID(ctx, *cart.DiscountID)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	usable := err == nil && discount.Available(u.now())
	if usable {
		used, err := u.discounts.HasUsed(ctx, discount.ID, userID)
		if err != nil {
			return nil, err
		}
		usable = !used
	}
	if !usable {
		if err := u.carts.SetDiscount(ctx, userID, nil); err != nil {
			return nil, err
		}
		cart.DiscountID = nil
		return nil, nil
	}
	return discount, nil
}

func (u *CartUseCase) unitOf(ctx context.Context, productID int64, variantID *int64) (price int64, stock int, err error) {
	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return 0, 0, err
	}
	if !product.IsActive {
		return 0, 0, domainErrors.ErrInactiveProduct
	}
	if variantID == nil {
		return product.Price, product.Stock, nil
	}
	variant, ok := product.Variant(*variantID)
	if !ok {
		return 0, 0, domainErrors.ErrNotFound
	}
	return variant.Price, variant.Stock, nil
}

func findLine(cart *model.Cart, productID int64, variantID *int64) *model.CartItem {
	for i := range cart.Items {
		item := &cart.Items[i]
		if item.ProductID != productID {
			continue
		}
		if (item.VariantID == nil) != (variantID == nil) {
			continue
		}
		if variantID == nil || *item.VariantID == *variantID {
			return item
		}
	}
	return nil
}

// AddItem puts product into the cart at its current price.
func (u *CartUseCase) AddItem(ctx context.Context, userID, productID int64, variantID *int64, quantity int) error {
	if quantity < 1 {
		return domainErrors.ErrInvalidQuantity
	}

	price, stock, err := u.unitOf(ctx, productID, variantID)
	if err != nil {
		return err
	}

	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return err
	}
	total := quantity
	if line := findLine(cart, productID, variantID); line != nil {
		total += line.Quantity
	}
	if total > stock {
		return domainErrors.ErrInsufficientStock
	}

	return u.carts.AddItem(ctx, userID, productID, variantID, price, quantity)
}

func findItem(cart *model.Cart, itemID int64) *model.CartItem {
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			return &cart.Items[i]
		}
	}
	return nil
}

// UpdateItem sets quantity of a cart line.
func (u *CartUseCase) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) error {
	if quantity < 1 {
		return domainErrors.ErrInvalidQuantity
	}
	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return err
	}
	item := findItem(cart, itemID)
	if item == nil {
		return domainErrors.ErrNotFound
	}
	if quantity > item.Stock {
		return domainErrors.ErrInsufficientStock
	}
	return u.carts.UpdateItemQuantity(ctx, userID, itemID, quantity)
}

// RemoveItem deletes a cart line.
func (u *CartUseCase) RemoveItem(ctx context.Context, userID, itemID int64) error {
	return u.carts.RemoveItem(ctx, userID, itemID)
}

// ApplyDiscount attaches voucher code to the cart.
func (u *CartUseCase) ApplyDiscount(ctx context.Context, userID int64, code string) (*model.CartSummary, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domainErrors.ErrDiscountUnavailable
	}

	discount, err := u.discounts.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrDiscountUnavailable
		}
		return nil, err
	}
	if !discount.Available(u.now()) {
		return nil, domainErrors.ErrDiscountUnavailable
	}

	used, err := u.discounts.HasUsed(ctx, discount.ID, userID)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, domainErrors.ErrDiscountAlreadyUsed
	}

	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := Summarize(*cart, discount)
	if discount.MinimumPurchase > summary.Subtotal {
		return nil, domainErrors.ErrDiscountMinimumNotMet
	}

	if err := u.carts.SetDiscount(ctx, userID, &discount.ID); err != nil {
		return nil, err
	}
	return &summary, nil
}

// RemoveDiscount detaches voucher code from the cart.
func (u *CartUseCase) RemoveDiscount(ctx context.Context, userID int64) error {
	return u.carts.SetDiscount(ctx, userID, nil)
}
