package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/server/http/dto"
)

// CheckoutHandler prices the cart and places orders.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Couriers handles GET /api/checkout/couriers.
func (h *CheckoutHandler) Couriers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"couriers": h.facade.Couriers()})
}

// Preview handles GET /api/checkout?courier=.
func (h *CheckoutHandler) Preview(c *gin.Context) {
	quote, err := h.facade.PreviewCheckout(c.Request.Context(), CurrentUserID(c), c.Query("courier"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponse(*quote))
}

// PlaceOrder handles POST /api/checkout.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.facade.Checkout(c.Request.Context(), CurrentUserID(c), model.CheckoutRequest{
		Courier: req.Courier,
		Address: model.ShippingAddress{
			RecipientName: req.Address.RecipientName,
			Phone:         req.Address.Phone,
			Address:       req.Address.Address,
			City:          req.Address.City,
			PostalCode:    req.Address.PostalCode,
		},
		Note: req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}
